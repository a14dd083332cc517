// Package workflow runs a project-idea submission: it validates the
// document, dispatches notification and remarks extraction in parallel,
// and reconciles both outcomes into a single Result.
package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrInvalidDocument = errors.New("invalid document")
	ErrInvalidRequest  = errors.New("invalid submission")
	ErrUnexpected      = errors.New("unexpected collaborator failure")
)
