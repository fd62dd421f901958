package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hsn_validator/internal/assist"
	"hsn_validator/internal/config"
	"hsn_validator/internal/hsn"
	"hsn_validator/internal/notifications"
	"hsn_validator/internal/sheets"

	"github.com/rs/zerolog/log"
)

// Config is read from the environment once, at startup.
type Config struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
	WorkbookPath    string

	Columns hsn.ColumnNames

	AssistMode   string
	GoogleAPIKey string
	ModelID      string

	Notify NotifyConfig
}

type NotifyConfig struct {
	Enabled  bool
	URL      string
	Topic    string
	Priority string
}

// LoadConfig builds a Config from the environment and validates it.
func LoadConfig() (Config, error) {
	cfg := Config{
		SpreadsheetID:   strings.TrimSpace(os.Getenv("SPREADSHEET_ID")),
		SheetName:       os.Getenv("HSN_SHEET_NAME"),
		CredentialsFile: os.Getenv("SERVICE_ACCOUNT_FILE_PATH"),
		WorkbookPath:    os.Getenv("HSN_WORKBOOK_PATH"),
		Columns: hsn.ColumnNames{
			Code:        os.Getenv("EXPECTED_HSN_COLUMN_IN_SHEET"),
			Description: os.Getenv("EXPECTED_DESC_COLUMN_IN_SHEET"),
		},
		AssistMode:   strings.ToLower(GetEnvWithDefault("ASSIST_MODE", assist.ModeAuto)),
		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		ModelID:      GetEnvWithDefault("GEMINI_MODEL_ID", assist.DefaultModel),
		Notify: NotifyConfig{
			Enabled:  GetEnvWithDefault("NTFY_ENABLED", "false") == "true",
			URL:      GetEnvWithDefault("NTFY_URL", "https://ntfy.sh"),
			Topic:    GetEnvWithDefault("NTFY_TOPIC", "hsn-validator"),
			Priority: os.Getenv("NTFY_PRIORITY"),
		},
	}

	if cfg.CredentialsFile != "" && !filepath.IsAbs(cfg.CredentialsFile) {
		abs, err := filepath.Abs(cfg.CredentialsFile)
		if err != nil {
			return cfg, fmt.Errorf("resolve SERVICE_ACCOUNT_FILE_PATH: %w", err)
		}
		cfg.CredentialsFile = abs
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that a master data source is configured.
func (c Config) Validate() error {
	if c.WorkbookPath != "" {
		return nil
	}

	var missing []string
	if c.SpreadsheetID == "" {
		missing = append(missing, "SPREADSHEET_ID")
	}
	if c.SheetName == "" {
		missing = append(missing, "HSN_SHEET_NAME")
	}
	if c.CredentialsFile == "" {
		missing = append(missing, "SERVICE_ACCOUNT_FILE_PATH")
	}
	if len(missing) > 0 {
		return &hsn.ConfigurationError{
			Reason: "set " + strings.Join(missing, ", ") + " or HSN_WORKBOOK_PATH",
			Err:    hsn.ErrMissingCredentials,
		}
	}

	if _, err := os.Stat(c.CredentialsFile); err != nil {
		return &hsn.ConfigurationError{
			Reason: fmt.Sprintf("service account file %s", c.CredentialsFile),
			Err:    fmt.Errorf("%w: %v", hsn.ErrMissingCredentials, err),
		}
	}
	return nil
}

// GetEnvWithDefault fetches an environment variable with a default fallback.
func GetEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// Fetcher reads the master table from its source.
type Fetcher interface {
	FetchTable(ctx context.Context) (hsn.Table, error)
}

// NewFetcher returns the workbook fetcher when HSN_WORKBOOK_PATH is set and
// the Google Sheets fetcher otherwise.
func NewFetcher(ctx context.Context, cfg Config) (Fetcher, error) {
	if cfg.WorkbookPath != "" {
		log.Debug().Str("path", cfg.WorkbookPath).Msg("Using local workbook as HSN source")
		return sheets.NewWorkbookFetcher(cfg.WorkbookPath, cfg.SheetName), nil
	}

	log.Debug().Msg("Initializing sheets client")
	client, err := sheets.NewClient(ctx, cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}
	return sheets.NewSheetFetcher(client, cfg.SpreadsheetID, cfg.SheetName, config.DefaultResilienceConfig.SheetRead), nil
}

// NewAnswerer builds the answer strategy selected by cfg.AssistMode.
func NewAnswerer(ctx context.Context, cfg Config, session *Session) (assist.Answerer, error) {
	var generator assist.Generator
	if cfg.GoogleAPIKey != "" && cfg.AssistMode != assist.ModeDirect {
		gen, err := assist.NewGenAIGenerator(ctx, cfg.GoogleAPIKey, cfg.ModelID)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("generator", gen.Name()).Msg("Model assist available")
		generator = gen
	} else if cfg.AssistMode != assist.ModeDirect {
		log.Warn().Msg("GOOGLE_API_KEY not set; model assist disabled")
	}

	return assist.NewAnswerer(cfg.AssistMode, session.Validator, generator, config.DefaultResilienceConfig.ModelRequest)
}

// NewNotificationClient creates the ntfy client for run summaries.
func NewNotificationClient(cfg Config) *notifications.Client {
	log.Debug().
		Bool("enabled", cfg.Notify.Enabled).
		Str("base_url", cfg.Notify.URL).
		Str("topic", cfg.Notify.Topic).
		Msg("Initializing notification client")

	client := notifications.NewClient(cfg.Notify.URL, cfg.Notify.Topic, cfg.Notify.Enabled, cfg.Notify.Priority, config.DefaultResilienceConfig.Notification)
	if cfg.Notify.Enabled {
		log.Info().Str("topic", cfg.Notify.Topic).Msg("Notifications enabled")
	}
	return client
}
