// Package submissions exposes the submission workflow over HTTP, accepting
// either a JSON body with an encoded document or a multipart file upload.
package submissions

import (
	"context"

	"github.com/holywrit/ideas/internal/workflow"
)

// System defines the submission entry point.
type System interface {
	Handler(maxUploadSize int64) *Handler
	Submit(ctx context.Context, req workflow.Request) workflow.Result
}

type submitter struct {
	rt *workflow.Runtime
}

// New creates a submission System backed by the given workflow runtime.
func New(rt *workflow.Runtime) System {
	return &submitter{rt: rt}
}

func (s *submitter) Handler(maxUploadSize int64) *Handler {
	return NewHandler(s, s.rt.Logger, maxUploadSize)
}

func (s *submitter) Submit(ctx context.Context, req workflow.Request) workflow.Result {
	return workflow.Execute(ctx, s.rt, req)
}
