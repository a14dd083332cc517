package remarks

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/holywrit/ideas/pkg/handlers"
	"github.com/holywrit/ideas/pkg/routes"
	"github.com/holywrit/ideas/pkg/validation"
)

// ExtractRequest previews extraction for a document without notifying anyone.
type ExtractRequest struct {
	Document  string `json:"document" validate:"required,base64datauri"`
	ClassName string `json:"class_name" validate:"max=100"`
}

// ExtractResponse carries the extracted remarks, null when none were found.
type ExtractResponse struct {
	ExtractedData *string `json:"extracted_data"`
}

// Handler provides HTTP endpoints for remarks extraction.
type Handler struct {
	sys       System
	validator *validation.Validator
	logger    *slog.Logger
}

func NewHandler(sys System, validator *validation.Validator, logger *slog.Logger) *Handler {
	return &Handler{
		sys:       sys,
		validator: validator,
		logger:    logger.With("handler", "remarks"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/remarks",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/extract", Handler: h.Extract},
		},
	}
}

func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidDocument, err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	text, err := h.sys.Extract(r.Context(), req.Document, req.ClassName)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var resp ExtractResponse
	if text != "" {
		resp.ExtractedData = &text
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}
