// Package remarks extracts project remarks from submitted documents with a
// generative model.
package remarks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/holywrit/ideas/pkg/datauri"
	"github.com/holywrit/ideas/pkg/formatting"
	"github.com/holywrit/ideas/pkg/gemini"
	"github.com/holywrit/ideas/pkg/validation"
)

// Generator produces text for a prompt with an optional inline document.
type Generator interface {
	Generate(ctx context.Context, req gemini.Request) (string, error)
}

// System defines the public contract for remarks extraction.
type System interface {
	Handler() *Handler

	// Extract returns the remarks found in document, an encoded data URI.
	// The text may be empty when the model finds nothing.
	Extract(ctx context.Context, document, label string) (string, error)
}

type response struct {
	ExtractedData string `json:"extracted_data"`
}

type extractor struct {
	gen       Generator
	validator *validation.Validator
	logger    *slog.Logger
}

// New creates a remarks System backed by gen.
func New(gen Generator, validator *validation.Validator, logger *slog.Logger) System {
	return &extractor{
		gen:       gen,
		validator: validator,
		logger:    logger.With("system", "remarks"),
	}
}

func (e *extractor) Handler() *Handler {
	return NewHandler(e, e.validator, e.logger)
}

func (e *extractor) Extract(ctx context.Context, document, label string) (string, error) {
	doc, err := datauri.Parse(document)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if len(doc.Data) == 0 {
		return "", fmt.Errorf("%w: empty payload", ErrInvalidDocument)
	}

	text, err := e.gen.Generate(ctx, gemini.Request{
		Instructions: instructions,
		Prompt:       ComposePrompt(label),
		MIMEType:     doc.MediaType,
		Data:         doc.Data,
		JSON:         true,
	})
	if err != nil {
		if errors.Is(err, gemini.ErrNotConfigured) {
			return "", fmt.Errorf("%w: %v", ErrNotConfigured, err)
		}
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	parsed, err := formatting.Parse[response](text)
	if err != nil {
		e.logger.WarnContext(ctx, "model response was not json, using raw text", "label", label)
		return strings.TrimSpace(text), nil
	}

	remarks := strings.TrimSpace(parsed.ExtractedData)
	e.logger.InfoContext(
		ctx, "remarks extracted",
		"label", label,
		"media_type", doc.MediaType,
		"length", len(remarks),
	)
	return remarks, nil
}
