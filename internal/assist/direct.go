package assist

import (
	"context"

	"hsn_validator/internal/hsn"

	"github.com/rs/zerolog/log"
)

// DirectLookup answers from the master data alone.
type DirectLookup struct {
	validator *hsn.Validator
}

func NewDirectLookup(validator *hsn.Validator) *DirectLookup {
	return &DirectLookup{validator: validator}
}

func (d *DirectLookup) Answer(ctx context.Context, query string) (Answer, error) {
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}

	codes := ExtractCodes(query)
	input := codes
	if len(codes) == 0 {
		log.Warn().Str("query", query).Msg("Could not extract HSN codes from query, validating it as given")
		input = []string{query}
	}
	log.Debug().Strs("codes", input).Msg("Validating extracted HSN codes")

	results := d.validator.ValidateCodes(input)
	return Answer{
		Query:   query,
		Codes:   codes,
		Results: results,
		Text:    FormatResults(results),
		Source:  SourceLookup,
	}, nil
}
