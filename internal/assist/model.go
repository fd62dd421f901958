package assist

import (
	"context"
	"fmt"
	"strings"

	"hsn_validator/internal/retry"

	"github.com/rs/zerolog/log"
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelAssisted answers from the master data first and asks the model only
// when the lookup did not settle the query.
type ModelAssisted struct {
	direct    *DirectLookup
	generator Generator
	retry     retry.Config
}

func NewModelAssisted(direct *DirectLookup, generator Generator, retryConfig retry.Config) *ModelAssisted {
	return &ModelAssisted{
		direct:    direct,
		generator: generator,
		retry:     retryConfig,
	}
}

func (m *ModelAssisted) Answer(ctx context.Context, query string) (Answer, error) {
	answer, err := m.direct.Answer(ctx, query)
	if err != nil {
		return Answer{}, err
	}
	if answer.Settled() {
		return answer, nil
	}

	prompt := buildPrompt(answer)
	text, err := retry.WithRetry(ctx, m.retry, func(ctx context.Context) (string, error) {
		return m.generator.Generate(ctx, prompt)
	})
	if err != nil {
		// the lookup result still stands
		log.Warn().Err(err).Str("query", query).Msg("Model request failed, returning lookup result")
		return answer, nil
	}

	answer.Text = answer.Text + "\n" + strings.TrimSpace(text) + "\n"
	answer.Source = SourceModel
	return answer, nil
}

func buildPrompt(a Answer) string {
	var sb strings.Builder
	sb.WriteString("You help users check Indian HSN (Harmonized System of Nomenclature) tariff codes.\n")
	sb.WriteString("The codes below were checked against the company's HSN master sheet. ")
	sb.WriteString("Treat the master sheet as authoritative: never claim a code is in it unless it is marked valid.\n\n")
	sb.WriteString(fmt.Sprintf("User query: %q\n", a.Query))
	if len(a.Codes) == 0 {
		sb.WriteString("No HSN codes could be extracted from the query.\n")
	} else {
		sb.WriteString("Master sheet results:\n")
		sb.WriteString(FormatResults(a.Results))
	}
	sb.WriteString("\nBriefly explain the result. For codes not found, suggest what the user should check ")
	sb.WriteString("(digit count, chapter heading) without inventing descriptions.")
	return sb.String()
}
