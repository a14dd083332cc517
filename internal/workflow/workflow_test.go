package workflow_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/holywrit/ideas/internal/notifications"
	"github.com/holywrit/ideas/internal/workflow"
	"github.com/holywrit/ideas/pkg/validation"
)

const pdfDoc = "data:application/pdf;base64,JVBERi0xLjQK"

type mockExtractor struct {
	extractFn func(ctx context.Context, document, label string) (string, error)
	calls     atomic.Int32
}

func (m *mockExtractor) Extract(ctx context.Context, document, label string) (string, error) {
	m.calls.Add(1)
	return m.extractFn(ctx, document, label)
}

type mockNotifier struct {
	notifyFn func(ctx context.Context, document, body, filename string) notifications.Delivery
	calls    atomic.Int32

	mu       sync.Mutex
	body     string
	filename string
}

func (m *mockNotifier) Notify(ctx context.Context, document, body, filename string) notifications.Delivery {
	m.calls.Add(1)
	m.mu.Lock()
	m.body, m.filename = body, filename
	m.mu.Unlock()
	return m.notifyFn(ctx, document, body, filename)
}

func extracts(text string, err error) *mockExtractor {
	return &mockExtractor{
		extractFn: func(context.Context, string, string) (string, error) { return text, err },
	}
}

func delivers(d notifications.Delivery) *mockNotifier {
	return &mockNotifier{
		notifyFn: func(context.Context, string, string, string) notifications.Delivery { return d },
	}
}

func newRuntime(e workflow.Extractor, n workflow.Notifier) *workflow.Runtime {
	return &workflow.Runtime{
		Extractor: e,
		Notifier:  n,
		Validator: validation.New(),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func validRequest() workflow.Request {
	return workflow.Request{
		Document:       pdfDoc,
		ClassName:      "Class X",
		TeamName:       "Sun Seekers",
		TeamLeaderName: "Asha",
		TeamMembers:    "Asha\nRavi",
	}
}

func TestExecuteRejectsInvalidDocument(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{"empty", ""},
		{"image", "data:image/png;base64,AAAA"},
		{"plain text", "hello"},
		{"not base64", "data:application/pdf;base64,@@@"},
		{"empty payload", "data:application/pdf;base64,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := extracts("x", nil)
			ntf := delivers(notifications.Delivery{Delivered: true})

			req := validRequest()
			req.Document = tt.document
			got := workflow.Execute(context.Background(), newRuntime(ext, ntf), req)

			if got.State != workflow.StateRejected {
				t.Errorf("state: got %s, want rejected", got.State)
			}
			if got.Success {
				t.Error("expected success=false")
			}
			if got.Message != workflow.MessageInvalidDocument {
				t.Errorf("message: got %q", got.Message)
			}
			if got.ExtractedData != nil {
				t.Error("expected no extracted data")
			}
			if ext.calls.Load() != 0 || ntf.calls.Load() != 0 {
				t.Errorf("collaborators called: extract=%d notify=%d", ext.calls.Load(), ntf.calls.Load())
			}
		})
	}
}

func TestExecuteRejectsMissingClass(t *testing.T) {
	ext := extracts("x", nil)
	ntf := delivers(notifications.Delivery{Delivered: true})

	req := validRequest()
	req.ClassName = ""
	got := workflow.Execute(context.Background(), newRuntime(ext, ntf), req)

	if got.State != workflow.StateRejected {
		t.Fatalf("state: got %s, want rejected", got.State)
	}
	if !strings.Contains(got.Message, "class_name is required") {
		t.Errorf("message: got %q", got.Message)
	}
	if ext.calls.Load() != 0 || ntf.calls.Load() != 0 {
		t.Error("collaborators should not be called")
	}
}

func TestExecuteSucceeds(t *testing.T) {
	ext := extracts("Build a solar charger.", nil)
	ntf := delivers(notifications.Delivery{Delivered: true, Message: "Email sent"})

	got := workflow.Execute(context.Background(), newRuntime(ext, ntf), validRequest())

	if got.State != workflow.StateSucceeded || !got.Success {
		t.Fatalf("got state %s success %v", got.State, got.Success)
	}
	if got.Message != workflow.MessageSucceeded {
		t.Errorf("message: got %q", got.Message)
	}
	if got.ExtractedData == nil || *got.ExtractedData != "Build a solar charger." {
		t.Errorf("extracted data: got %v", got.ExtractedData)
	}
	if got.ID.String() == "" {
		t.Error("expected an id")
	}
	if ext.calls.Load() != 1 || ntf.calls.Load() != 1 {
		t.Errorf("calls: extract=%d notify=%d", ext.calls.Load(), ntf.calls.Load())
	}
	if !strings.Contains(ntf.body, "Class: Class X") {
		t.Errorf("body missing class: %q", ntf.body)
	}
	if ntf.filename != "submission.pdf" {
		t.Errorf("filename: got %q", ntf.filename)
	}
}

func TestExecuteExtractionFailureIsNotFatal(t *testing.T) {
	tests := []struct {
		name string
		ext  *mockExtractor
	}{
		{"error", extracts("", errors.New("model unavailable"))},
		{"empty", extracts("", nil)},
		{"whitespace", extracts("  \n", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ntf := delivers(notifications.Delivery{Delivered: true})
			got := workflow.Execute(context.Background(), newRuntime(tt.ext, ntf), validRequest())

			if !got.Success || got.State != workflow.StateSucceeded {
				t.Fatalf("got state %s success %v", got.State, got.Success)
			}
			if got.ExtractedData != nil {
				t.Errorf("expected nil extracted data, got %q", *got.ExtractedData)
			}
		})
	}
}

func TestExecuteNotificationFailure(t *testing.T) {
	ext := extracts("Build a solar charger.", nil)
	ntf := delivers(notifications.Delivery{Delivered: false, Message: "SMTP timeout"})

	got := workflow.Execute(context.Background(), newRuntime(ext, ntf), validRequest())

	if got.Success || got.State != workflow.StateFailed {
		t.Fatalf("got state %s success %v", got.State, got.Success)
	}
	if got.Message != "SMTP timeout" {
		t.Errorf("message: got %q", got.Message)
	}
	if got.ExtractedData == nil || *got.ExtractedData != "Build a solar charger." {
		t.Errorf("extracted data should still be surfaced, got %v", got.ExtractedData)
	}
}

func TestExecuteRunsCollaboratorsInParallel(t *testing.T) {
	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(2)

	ext := &mockExtractor{extractFn: func(context.Context, string, string) (string, error) {
		started.Done()
		<-release
		return "ok", nil
	}}
	ntf := &mockNotifier{notifyFn: func(context.Context, string, string, string) notifications.Delivery {
		started.Done()
		<-release
		return notifications.Delivery{Delivered: true}
	}}

	done := make(chan workflow.Result, 1)
	go func() {
		done <- workflow.Execute(context.Background(), newRuntime(ext, ntf), validRequest())
	}()

	waited := make(chan struct{})
	go func() {
		started.Wait()
		close(waited)
	}()

	select {
	case <-waited:
	case <-time.After(2 * time.Second):
		t.Fatal("collaborators did not run concurrently")
	}
	close(release)

	if got := <-done; !got.Success {
		t.Errorf("expected success, got %q", got.Message)
	}
}

func TestExecuteRepeatedSubmissionCallsTwice(t *testing.T) {
	ext := extracts("Build a solar charger.", nil)
	ntf := delivers(notifications.Delivery{Delivered: true})
	rt := newRuntime(ext, ntf)

	first := workflow.Execute(context.Background(), rt, validRequest())
	second := workflow.Execute(context.Background(), rt, validRequest())

	if ext.calls.Load() != 2 {
		t.Errorf("extract calls: got %d, want 2", ext.calls.Load())
	}
	if ntf.calls.Load() != 2 {
		t.Errorf("notify calls: got %d, want 2", ntf.calls.Load())
	}
	if first.ID == second.ID {
		t.Error("expected distinct submission ids")
	}
}

func TestExecuteRecoversPanics(t *testing.T) {
	t.Run("notifier", func(t *testing.T) {
		ext := extracts("Build a solar charger.", nil)
		ntf := &mockNotifier{notifyFn: func(context.Context, string, string, string) notifications.Delivery {
			panic("mail transport exploded")
		}}

		got := workflow.Execute(context.Background(), newRuntime(ext, ntf), validRequest())

		if got.Success || got.State != workflow.StateFailed {
			t.Fatalf("got state %s success %v", got.State, got.Success)
		}
		if got.Message != "Failed to process document: mail transport exploded" {
			t.Errorf("message: got %q", got.Message)
		}
		if got.ExtractedData == nil {
			t.Error("expected extracted data to be surfaced")
		}
	})

	t.Run("extractor", func(t *testing.T) {
		ext := &mockExtractor{extractFn: func(context.Context, string, string) (string, error) {
			panic("nil model")
		}}
		ntf := delivers(notifications.Delivery{Delivered: true})

		got := workflow.Execute(context.Background(), newRuntime(ext, ntf), validRequest())

		if got.Success || got.State != workflow.StateFailed {
			t.Fatalf("got state %s success %v", got.State, got.Success)
		}
		if !strings.HasPrefix(got.Message, workflow.MessageFailedPrefix) {
			t.Errorf("message: got %q", got.Message)
		}
		if ntf.calls.Load() != 1 {
			t.Errorf("notify calls: got %d, want 1", ntf.calls.Load())
		}
	})
}

func TestStateTerminal(t *testing.T) {
	for _, s := range []workflow.State{workflow.StateRejected, workflow.StateSucceeded, workflow.StateFailed} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []workflow.State{workflow.StateValidating, workflow.StateDispatching, workflow.StateReconciling} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestExecuteIgnoresCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ext := &mockExtractor{
		extractFn: func(ctx context.Context, _, _ string) (string, error) {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			return "Build a solar charger.", nil
		},
	}
	ntf := &mockNotifier{
		notifyFn: func(ctx context.Context, _, _, _ string) notifications.Delivery {
			if err := ctx.Err(); err != nil {
				return notifications.Delivery{Message: err.Error()}
			}
			return notifications.Delivery{Delivered: true, Message: "Email sent"}
		},
	}

	got := workflow.Execute(ctx, newRuntime(ext, ntf), validRequest())

	if got.State != workflow.StateSucceeded || !got.Success {
		t.Fatalf("got state %s message %q", got.State, got.Message)
	}
	if got.ExtractedData == nil {
		t.Error("extraction should run despite a cancelled caller context")
	}
}
