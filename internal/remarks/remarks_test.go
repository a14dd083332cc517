package remarks_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/holywrit/ideas/internal/remarks"
	"github.com/holywrit/ideas/pkg/gemini"
	"github.com/holywrit/ideas/pkg/routes"
	"github.com/holywrit/ideas/pkg/validation"
)

const pdfDoc = "data:application/pdf;base64,AAAA"

type mockGenerator struct {
	generateFn func(ctx context.Context, req gemini.Request) (string, error)
	calls      int
	last       gemini.Request
}

func (m *mockGenerator) Generate(ctx context.Context, req gemini.Request) (string, error) {
	m.calls++
	m.last = req
	return m.generateFn(ctx, req)
}

func reply(text string, err error) *mockGenerator {
	return &mockGenerator{
		generateFn: func(context.Context, gemini.Request) (string, error) { return text, err },
	}
}

func newSystem(gen remarks.Generator) remarks.System {
	return remarks.New(gen, validation.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"json", `{"extracted_data":"Build a solar charger."}`, "Build a solar charger."},
		{"fenced json", "```json\n{\"extracted_data\":\" Build a robot. \"}\n```", "Build a robot."},
		{"raw text fallback", "  Plant a school garden.\n", "Plant a school garden."},
		{"empty remarks", `{"extracted_data":""}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := reply(tt.text, nil)
			got, err := newSystem(gen).Extract(context.Background(), pdfDoc, "Class VI")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractSendsDocument(t *testing.T) {
	gen := reply(`{"extracted_data":"x"}`, nil)
	if _, err := newSystem(gen).Extract(context.Background(), pdfDoc, "Class IX"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gen.last.MIMEType != "application/pdf" {
		t.Errorf("mime type: got %s", gen.last.MIMEType)
	}
	if len(gen.last.Data) != 3 {
		t.Errorf("data: got %d bytes, want 3", len(gen.last.Data))
	}
	if !gen.last.JSON {
		t.Error("request should ask for json output")
	}
	if !strings.Contains(gen.last.Prompt, "Class Name: Class IX") {
		t.Errorf("prompt: got %q", gen.last.Prompt)
	}
	if gen.last.Instructions != remarks.Instructions() {
		t.Error("instructions not sent")
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		gen       *mockGenerator
		wantErr   error
		wantCalls int
	}{
		{"not a data uri", "hello", reply("", nil), remarks.ErrInvalidDocument, 0},
		{"empty payload", "data:application/pdf;base64,", reply("", nil), remarks.ErrInvalidDocument, 0},
		{"not configured", pdfDoc, reply("", gemini.ErrNotConfigured), remarks.ErrNotConfigured, 1},
		{"model failure", pdfDoc, reply("", gemini.ErrGenerate), remarks.ErrExtraction, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newSystem(tt.gen).Extract(context.Background(), tt.document, "Class VI")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
			if tt.gen.calls != tt.wantCalls {
				t.Errorf("generator calls: got %d, want %d", tt.gen.calls, tt.wantCalls)
			}
		})
	}
}

func TestComposePrompt(t *testing.T) {
	if got := remarks.ComposePrompt("  "); !strings.Contains(got, "Class Name: Unspecified") {
		t.Errorf("blank label: got %q", got)
	}
}

func TestHandlerExtract(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		gen      *mockGenerator
		want     int
		contains string
	}{
		{"extracted", `{"document":"` + pdfDoc + `","class_name":"Class VI"}`, reply(`{"extracted_data":"Solar"}`, nil), http.StatusOK, `"extracted_data":"Solar"`},
		{"nothing found", `{"document":"` + pdfDoc + `"}`, reply(`{"extracted_data":""}`, nil), http.StatusOK, `"extracted_data":null`},
		{"missing document", `{"class_name":"Class VI"}`, reply("", nil), http.StatusBadRequest, "document is required"},
		{"bad json", `{`, reply("", nil), http.StatusBadRequest, "invalid document"},
		{"not configured", `{"document":"` + pdfDoc + `"}`, reply("", gemini.ErrNotConfigured), http.StatusServiceUnavailable, "not configured"},
		{"model failure", `{"document":"` + pdfDoc + `"}`, reply("", gemini.ErrGenerate), http.StatusBadGateway, "extraction failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			routes.Register(mux, newSystem(tt.gen).Handler().Routes())

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("POST", "/remarks/extract", strings.NewReader(tt.body)))

			if rec.Code != tt.want {
				t.Fatalf("status: got %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body %s missing %s", rec.Body.String(), tt.contains)
			}
		})
	}
}
