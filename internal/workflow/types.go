package workflow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/holywrit/ideas/internal/notifications"
	"github.com/holywrit/ideas/pkg/validation"
)

// User-facing result messages.
const (
	MessageInvalidDocument = "Invalid file format. Please upload a valid document."
	MessageSucceeded       = "Submission successful! The document has been processed and sent."
	MessageFailedPrefix    = "Failed to process document: "
)

// DocumentPrefix is the required start of every submitted document.
const DocumentPrefix = "data:application/"

// State is a step of a single workflow invocation.
type State string

const (
	StateValidating  State = "validating"
	StateDispatching State = "dispatching"
	StateReconciling State = "reconciling"
	StateRejected    State = "rejected"
	StateSucceeded   State = "succeeded"
	StateFailed      State = "failed"
)

// Terminal reports whether s ends an invocation.
func (s State) Terminal() bool {
	return s == StateRejected || s == StateSucceeded || s == StateFailed
}

// Request is one submission. Team fields and StudentInfo are alternative
// forms of the submitter metadata; either or both may be given.
type Request struct {
	Document       string `json:"document" validate:"required"`
	ClassName      string `json:"class_name" validate:"required,max=100"`
	TeamName       string `json:"team_name" validate:"max=200"`
	TeamLeaderName string `json:"team_leader_name" validate:"max=200"`
	TeamMembers    string `json:"team_members" validate:"max=2000"`
	StudentInfo    string `json:"student_info" validate:"max=2000"`
	Filename       string `json:"filename" validate:"max=255"`
}

// Result is the reconciled outcome of a submission. ExtractedData is nil
// when extraction failed or found nothing.
type Result struct {
	ID            uuid.UUID `json:"id"`
	State         State     `json:"state"`
	Success       bool      `json:"success"`
	Message       string    `json:"message"`
	ExtractedData *string   `json:"extracted_data"`
}

// Extractor pulls project remarks out of an encoded document.
type Extractor interface {
	Extract(ctx context.Context, document, label string) (string, error)
}

// Notifier delivers an encoded document with a text body.
type Notifier interface {
	Notify(ctx context.Context, document, body, filename string) notifications.Delivery
}

// Runtime bundles the dependencies a workflow invocation requires.
type Runtime struct {
	Extractor Extractor
	Notifier  Notifier
	Validator *validation.Validator
	Logger    *slog.Logger
}
