package roster_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/holywrit/ideas/internal/roster"
	"github.com/holywrit/ideas/pkg/routes"
	"github.com/holywrit/ideas/pkg/validation"
)

func setupMux(t *testing.T) *http.ServeMux {
	t.Helper()
	sys := roster.New(seeded(t), validation.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	return mux
}

func TestHandlerList(t *testing.T) {
	mux := setupMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/classes", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var classes []roster.Class
	if err := json.Unmarshal(rec.Body.Bytes(), &classes); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(classes) != 5 {
		t.Errorf("classes: got %d, want 5", len(classes))
	}
	if !strings.Contains(rec.Body.String(), `"roll_no":"11"`) {
		t.Error("students should serialize roll_no")
	}
}

func TestHandlerFind(t *testing.T) {
	mux := setupMux(t)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"found", "/classes/class-ix", http.StatusOK},
		{"not found", "/classes/class-xii", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandlerRecordRemarks(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"recorded", "/classes/class-vi/students/2/remarks", `{"remarks":"Smart irrigation"}`, http.StatusOK},
		{"bad student id", "/classes/class-vi/students/abc/remarks", `{"remarks":"x"}`, http.StatusBadRequest},
		{"bad body", "/classes/class-vi/students/2/remarks", `{`, http.StatusBadRequest},
		{"unknown class", "/classes/class-xi/students/2/remarks", `{"remarks":"x"}`, http.StatusNotFound},
		{"unknown student", "/classes/class-vi/students/20/remarks", `{"remarks":"x"}`, http.StatusNotFound},
		{"too long", "/classes/class-vi/students/2/remarks", `{"remarks":"` + strings.Repeat("a", 10001) + `"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := setupMux(t)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("PUT", tt.path, strings.NewReader(tt.body))
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status: got %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want != http.StatusOK {
				return
			}

			var st roster.Student
			if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if st.Name != "Maneet" || st.Remarks != "Smart irrigation" {
				t.Errorf("student: got %+v", st)
			}
		})
	}
}

func TestHandlerExport(t *testing.T) {
	mux := setupMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/classes/export", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content-type: got %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, ".xlsx") {
		t.Errorf("content-disposition: got %s", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if n := len(f.GetSheetList()); n != 5 {
		t.Errorf("sheets: got %d, want 5", n)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{roster.ErrClassNotFound, http.StatusNotFound},
		{roster.ErrStudentNotFound, http.StatusNotFound},
		{roster.ErrDuplicateClass, http.StatusConflict},
		{roster.ErrInvalidRequest, http.StatusBadRequest},
		{io.EOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := roster.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
