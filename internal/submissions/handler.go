package submissions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/holywrit/ideas/internal/workflow"
	"github.com/holywrit/ideas/pkg/datauri"
	"github.com/holywrit/ideas/pkg/handlers"
	"github.com/holywrit/ideas/pkg/routes"
)

// Handler provides HTTP endpoints for idea submissions.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "submissions"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for submission endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/submissions",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Submit},
			{Method: "POST", Pattern: "/upload", Handler: h.Upload},
		},
	}
}

// Submit runs the workflow for a JSON request carrying a data URI document.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, encodedLimit(h.maxUploadSize))

	var req workflow.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, bodyError(err, ErrInvalidBody))
		return
	}

	h.respond(w, r, req)
}

// Upload runs the workflow for a multipart form with a file part and the
// submission metadata as form values.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.fail(w, bodyError(err, ErrInvalidFile))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.fail(w, fmt.Errorf("%w: %v", ErrInvalidFile, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.fail(w, bodyError(err, ErrInvalidFile))
		return
	}
	if int64(len(data)) > h.maxUploadSize {
		h.fail(w, ErrFileTooLarge)
		return
	}

	contentType := detectContentType(header.Header.Get("Content-Type"), data)

	req := workflow.Request{
		Document:       datauri.Encode(contentType, data),
		ClassName:      r.FormValue("class_name"),
		TeamName:       r.FormValue("team_name"),
		TeamLeaderName: r.FormValue("team_leader_name"),
		TeamMembers:    r.FormValue("team_members"),
		StudentInfo:    r.FormValue("student_info"),
		Filename:       header.Filename,
	}

	h.respond(w, r, req)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}

// bodyError reports a body that hit the size cap as ErrFileTooLarge and
// anything else as fallback.
func bodyError(err, fallback error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
		return ErrFileTooLarge
	}
	return fmt.Errorf("%w: %v", fallback, err)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, req workflow.Request) {
	result := h.sys.Submit(r.Context(), req)
	handlers.RespondJSON(w, StateHTTPStatus(result.State), result)
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		if i := strings.IndexByte(header, ';'); i >= 0 {
			header = strings.TrimSpace(header[:i])
		}
		return header
	}
	detected := http.DetectContentType(data)
	if i := strings.IndexByte(detected, ';'); i >= 0 {
		detected = detected[:i]
	}
	return detected
}

// encodedLimit bounds a JSON body holding a base64 document of up to n bytes
// plus a margin for the metadata fields.
func encodedLimit(n int64) int64 {
	return n/3*4 + 4 + (1 << 16)
}
