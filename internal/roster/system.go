package roster

import (
	"io"
	"log/slog"

	"github.com/holywrit/ideas/pkg/validation"
)

// System defines the public contract for roster operations.
type System interface {
	Handler() *Handler

	ListClasses() []Class
	FindClass(id string) (Class, error)
	RecordRemarks(classID string, studentID int, text string) (Student, error)
	Export(w io.Writer) error
}

type system struct {
	store     *Store
	logger    *slog.Logger
	validator *validation.Validator
}

// New creates a roster System over store.
func New(store *Store, validator *validation.Validator, logger *slog.Logger) System {
	return &system{
		store:     store,
		logger:    logger.With("system", "roster"),
		validator: validator,
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.validator, s.logger)
}

func (s *system) ListClasses() []Class {
	return s.store.ListClasses()
}

func (s *system) FindClass(id string) (Class, error) {
	return s.store.FindClass(id)
}

func (s *system) RecordRemarks(classID string, studentID int, text string) (Student, error) {
	st, err := s.store.RecordRemarks(classID, studentID, text)
	if err != nil {
		return Student{}, err
	}
	s.logger.Info(
		"remarks recorded",
		"class_id", classID,
		"student_id", studentID,
		"length", len(text),
	)
	return st, nil
}

func (s *system) Export(w io.Writer) error {
	return Export(w, s.store.ListClasses())
}
