package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/holywrit/ideas/internal/notifications"
	"github.com/holywrit/ideas/pkg/datauri"
)

// Execute runs one submission through validation, parallel dispatch, and
// reconciliation. It never returns an error: every failure, including a
// panic inside a collaborator, is reported through the Result.
func Execute(ctx context.Context, rt *Runtime, req Request) (result Result) {
	result.ID = uuid.New()
	logger := rt.Logger.With("submission_id", result.ID)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("submission panicked", "panic", r)
			result.State = StateFailed
			result.Success = false
			result.Message = MessageFailedPrefix + fmt.Sprint(r)
		}
	}()

	logger.Debug("state", "state", StateValidating)
	doc, err := validate(rt, req)
	if err != nil {
		logger.Info("submission rejected", "error", err)
		result.State = StateRejected
		if errors.Is(err, ErrInvalidDocument) {
			result.Message = MessageInvalidDocument
		} else {
			result.Message = rejectionMessage(err)
		}
		return result
	}

	filename := AttachmentName(req.Filename, doc.MediaType)
	body := ComposeBody(req, doc, filename)

	logger.Debug("state", "state", StateDispatching, "filename", filename)
	text, textErr, delivery, err := dispatch(ctx, rt, req, body, filename)

	logger.Debug("state", "state", StateReconciling)
	result.ExtractedData = reconcileExtraction(logger, text, textErr)

	switch {
	case err != nil:
		logger.Error("submission failed", "error", err)
		result.State = StateFailed
		result.Message = MessageFailedPrefix + unwrapCause(err)
	case !delivery.Delivered:
		logger.Warn("notification failed", "message", delivery.Message)
		result.State = StateFailed
		result.Message = delivery.Message
	default:
		result.State = StateSucceeded
		result.Success = true
		result.Message = MessageSucceeded
	}

	logger.Info("submission completed",
		"state", result.State,
		"extracted", result.ExtractedData != nil,
	)
	return result
}

func validate(rt *Runtime, req Request) (*datauri.URI, error) {
	if req.Document == "" || !strings.HasPrefix(req.Document, DocumentPrefix) {
		return nil, ErrInvalidDocument
	}

	doc, err := datauri.Parse(req.Document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if len(doc.Data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidDocument)
	}

	if rt.Validator != nil {
		if err := rt.Validator.Struct(req); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}
	return doc, nil
}

// dispatch calls both collaborators exactly once and waits for both. An
// extraction error is returned separately so it never cancels or fails
// the notification. err is non-nil only for collaborator panics.
//
// Calls run detached from ctx cancellation: a client that disconnects
// mid-submission must not abort the email. The collaborators' own
// timeouts still bound each call.
func dispatch(ctx context.Context, rt *Runtime, req Request, body, filename string) (
	text string, textErr error, delivery notifications.Delivery, err error,
) {
	ctx = context.WithoutCancel(ctx)
	var g errgroup.Group

	g.Go(func() (err error) {
		defer recoverInto(&err)
		text, textErr = rt.Extractor.Extract(ctx, req.Document, req.ClassName)
		return nil
	})

	g.Go(func() (err error) {
		defer recoverInto(&err)
		delivery = rt.Notifier.Notify(ctx, req.Document, body, filename)
		return nil
	})

	err = g.Wait()
	return text, textErr, delivery, err
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrUnexpected, r)
	}
}

func reconcileExtraction(logger *slog.Logger, text string, err error) *string {
	if err != nil {
		logger.Warn("remarks extraction failed", "error", err)
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		logger.Warn("remarks extraction returned no data")
		return nil
	}
	return &text
}

func unwrapCause(err error) string {
	return strings.TrimPrefix(err.Error(), ErrUnexpected.Error()+": ")
}

func rejectionMessage(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalidRequest.Error()+": ")
}
