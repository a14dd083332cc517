package api

import (
	"github.com/holywrit/ideas/internal/notifications"
	"github.com/holywrit/ideas/internal/remarks"
	"github.com/holywrit/ideas/internal/roster"
	"github.com/holywrit/ideas/internal/submissions"
	"github.com/holywrit/ideas/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Roster        roster.System
	Remarks       remarks.System
	Notifications notifications.System
	Submissions   submissions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	rosterSystem := roster.New(
		runtime.Roster,
		runtime.Validator,
		runtime.Logger,
	)

	remarksSystem := remarks.New(
		runtime.Gemini,
		runtime.Validator,
		runtime.Logger,
	)

	notificationsSystem := notifications.New(
		runtime.Mail,
		runtime.Logger,
	)

	submissionsSystem := submissions.New(&workflow.Runtime{
		Extractor: remarksSystem,
		Notifier:  notificationsSystem,
		Validator: runtime.Validator,
		Logger:    runtime.Logger.With("system", "workflow"),
	})

	return &Domain{
		Roster:        rosterSystem,
		Remarks:       remarksSystem,
		Notifications: notificationsSystem,
		Submissions:   submissionsSystem,
	}
}
