// Package assist answers free-text HSN questions, either by looking codes up
// directly or by handing unresolved questions to a hosted language model.
package assist

import (
	"context"
	"fmt"
	"strings"

	"hsn_validator/internal/hsn"
	"hsn_validator/internal/retry"
)

const (
	ModeDirect = "direct"
	ModeModel  = "model"
	ModeAuto   = "auto"

	SourceLookup = "lookup"
	SourceModel  = "model"
)

// Answer is the response to one query.
type Answer struct {
	Query   string                 `json:"query"`
	Codes   []string               `json:"codes"`
	Results []hsn.ValidationResult `json:"results"`
	Text    string                 `json:"text"`
	Source  string                 `json:"source"`
}

// Answerer is implemented by each answer strategy.
type Answerer interface {
	Answer(ctx context.Context, query string) (Answer, error)
}

// Settled reports whether every extracted code validated, in which case no
// model call is needed.
func (a Answer) Settled() bool {
	if len(a.Codes) == 0 {
		return false
	}
	for _, r := range a.Results {
		if !r.Valid() {
			return false
		}
	}
	return true
}

// FormatResults renders results one per line.
func FormatResults(results []hsn.ValidationResult) string {
	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("  HSN: %s, Status: %s, Message: %s\n", r.Code, r.Status, r.Message))
	}
	return sb.String()
}

// NewAnswerer picks the strategy for mode. ModeAuto uses the model when a
// generator is available.
func NewAnswerer(mode string, validator *hsn.Validator, generator Generator, retryConfig retry.Config) (Answerer, error) {
	direct := NewDirectLookup(validator)
	switch mode {
	case ModeDirect:
		return direct, nil
	case ModeModel:
		if generator == nil {
			return nil, &hsn.ConfigurationError{
				Reason: "assist mode \"model\" needs GOOGLE_API_KEY",
				Err:    hsn.ErrMissingCredentials,
			}
		}
		return NewModelAssisted(direct, generator, retryConfig), nil
	case ModeAuto, "":
		if generator == nil {
			return direct, nil
		}
		return NewModelAssisted(direct, generator, retryConfig), nil
	}
	return nil, &hsn.ConfigurationError{
		Reason: fmt.Sprintf("unknown assist mode %q", mode),
		Err:    fmt.Errorf("expected one of %s, %s, %s", ModeDirect, ModeModel, ModeAuto),
	}
}
