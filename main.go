package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"hsn_validator/internal/app"
	"hsn_validator/internal/assist"
	"hsn_validator/internal/hsn"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// exampleQueries are run by the examples command.
var exampleQueries = []string{
	"Validate HSN 0101",
	"Check HSN codes 02021000 and 99987 and 0303",
	"Is XYZ99 an HSN code?",
	"01011010",
	"Validate HSN codes 01, 0202, 03031300",
	"85171211",
}

var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:   "hsn-validator",
	Short: "Validate HSN codes against a Google Sheet of master data",
	Long: `Validate HSN (tariff) codes against master data kept in a Google Sheet.

Configuration comes from the environment (or a .env file):
  SPREADSHEET_ID, HSN_SHEET_NAME, SERVICE_ACCOUNT_FILE_PATH  Google Sheets source
  HSN_WORKBOOK_PATH                                        local .xlsx source instead
  EXPECTED_HSN_COLUMN_IN_SHEET, EXPECTED_DESC_COLUMN_IN_SHEET  exact header overrides
  ASSIST_MODE (direct|model|auto), GOOGLE_API_KEY, GEMINI_MODEL_ID

Without a subcommand the example interactions are run.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupEnvironment()
	},
	RunE: runExamples,
}

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Run the example queries through the configured answerer",
	Args:  cobra.NoArgs,
	RunE:  runExamples,
}

var validateCmd = &cobra.Command{
	Use:   "validate CODE...",
	Short: "Validate one or more HSN codes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

var askCmd = &cobra.Command{
	Use:   "ask QUERY...",
	Short: "Answer a free-text question about HSN codes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Show the sheet headers and the resolved code/description columns",
	Args:  cobra.NoArgs,
	RunE:  runColumns,
}

func init() {
	validateCmd.Flags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	askCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the answer as JSON")

	rootCmd.AddCommand(examplesCmd, validateCmd, askCmd, columnsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSession reads configuration, fetches the master data and resolves its columns.
func loadSession(ctx context.Context) (app.Config, *app.Session, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return cfg, nil, err
	}

	log.Info().
		Str("spreadsheet_id", cfg.SpreadsheetID).
		Str("sheet", cfg.SheetName).
		Str("workbook", cfg.WorkbookPath).
		Str("expected_code_column", cfg.Columns.Code).
		Str("expected_description_column", cfg.Columns.Description).
		Str("assist_mode", cfg.AssistMode).
		Msg("Loaded configuration")

	fetcher, err := app.NewFetcher(ctx, cfg)
	if err != nil {
		return cfg, nil, err
	}

	session, err := app.LoadSession(ctx, fetcher, cfg.Columns)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, session, nil
}

func runExamples(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, session, err := loadSession(ctx)
	if err != nil {
		return err
	}

	answerer, err := app.NewAnswerer(ctx, cfg, session)
	if err != nil {
		return err
	}

	var all []hsn.ValidationResult
	out := cmd.OutOrStdout()
	for _, query := range exampleQueries {
		answer, err := answerer.Answer(ctx, query)
		if err != nil {
			log.Error().Err(err).Str("query", query).Msg("Error answering query")
			continue
		}
		printAnswer(out, answer)
		all = append(all, answer.Results...)
	}

	notifySummary(ctx, cfg, all)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, session, err := loadSession(ctx)
	if err != nil {
		return err
	}

	results := session.Validator.ValidateCodes(args)
	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := writeJSON(out, results); err != nil {
			return err
		}
	} else {
		fmt.Fprint(out, assist.FormatResults(results))
	}

	notifySummary(ctx, cfg, results)
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, session, err := loadSession(ctx)
	if err != nil {
		return err
	}

	answerer, err := app.NewAnswerer(ctx, cfg, session)
	if err != nil {
		return err
	}

	answer, err := answerer.Answer(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), answer)
	}
	printAnswer(cmd.OutOrStdout(), answer)
	return nil
}

func runColumns(cmd *cobra.Command, args []string) error {
	_, session, err := loadSession(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Headers: %s\n", strings.Join(session.Header, " | "))
	fmt.Fprintf(out, "HSN code column: %s\n", describeColumn(session.Header, session.Columns.Code))
	fmt.Fprintf(out, "Description column: %s\n", describeColumn(session.Header, session.Columns.Description))
	fmt.Fprintf(out, "Data rows: %d\n", session.Validator.Len())
	if !session.Columns.Resolved() {
		return &hsn.ConfigurationError{
			Reason: "missing " + strings.Join(session.Columns.Missing(), ", "),
			Err:    hsn.ErrColumnsNotResolved,
		}
	}
	return nil
}

func describeColumn(header []string, index int) string {
	if index == hsn.Unresolved {
		return "(unresolved)"
	}
	return fmt.Sprintf("%q (index %d)", header[index], index)
}

func printAnswer(w io.Writer, answer assist.Answer) {
	fmt.Fprintf(w, ">>> %s\n", answer.Query)
	fmt.Fprint(w, answer.Text)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func notifySummary(ctx context.Context, cfg app.Config, results []hsn.ValidationResult) {
	client := app.NewNotificationClient(cfg)
	if !client.Enabled() {
		return
	}
	if err := client.NotifyValidationSummary(ctx, results); err != nil {
		log.Warn().Err(err).Msg("Failed to send validation summary")
	}
}
