package roster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/holywrit/ideas/pkg/handlers"
	"github.com/holywrit/ideas/pkg/routes"
	"github.com/holywrit/ideas/pkg/validation"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RemarksRequest is the body of a remarks update.
type RemarksRequest struct {
	Remarks string `json:"remarks" validate:"max=10000"`
}

// Handler provides HTTP endpoints for roster operations.
type Handler struct {
	sys       System
	validator *validation.Validator
	logger    *slog.Logger
}

// NewHandler creates a Handler for sys.
func NewHandler(sys System, validator *validation.Validator, logger *slog.Logger) *Handler {
	return &Handler{
		sys:       sys,
		validator: validator,
		logger:    logger.With("handler", "roster"),
	}
}

// Routes returns the route group definition for roster endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/classes",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/export", Handler: h.Export},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "PUT", Pattern: "/{classId}/students/{studentId}/remarks", Handler: h.RecordRemarks},
		},
	}
}

// List returns every class in roster order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.ListClasses())
}

// Find returns a single class by its id path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	c, err := h.sys.FindClass(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, c)
}

// RecordRemarks replaces the remarks of one student.
func (h *Handler) RecordRemarks(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.Atoi(r.PathValue("studentId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: student id", ErrInvalidRequest))
		return
	}

	var req RemarksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	st, err := h.sys.RecordRemarks(r.PathValue("classId"), studentID, req.Remarks)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, st)
}

// Export downloads the roster as an XLSX workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.sys.Export(&buf); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("roster-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
