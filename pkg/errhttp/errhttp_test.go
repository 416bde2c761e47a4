package errhttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/glossary/pkg/logger"
	glossarydomain "github.com/ghuser/glossary/services/glossary/domain"
)

// captureLogger records ErrorContext calls. The embedded nil Logger makes any
// other method call panic, which would flag an unexpected logging path.
type captureLogger struct {
	logger.Logger
	entries []captureEntry
}

type captureEntry struct {
	msg  string
	args []any
}

func (l *captureLogger) ErrorContext(_ context.Context, msg string, args ...any) {
	l.entries = append(l.entries, captureEntry{msg: msg, args: args})
}

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrTermNotFound", glossarydomain.ErrTermNotFound, http.StatusNotFound},
		{"ErrTermAlreadyExists", glossarydomain.ErrTermAlreadyExists, http.StatusConflict},
		{"ErrInvalidTerm", glossarydomain.ErrInvalidTerm, http.StatusUnprocessableEntity},
		{"ErrStorageUnavailable", glossarydomain.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{"wrapped ErrTermNotFound", fmt.Errorf("get term: %w", glossarydomain.ErrTermNotFound), http.StatusNotFound},
		{"wrapped ErrInvalidTerm", fmt.Errorf("%w: name too long", glossarydomain.ErrInvalidTerm), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(context.Background(), nil, w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, glossarydomain.ErrTermNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("response body missing 'error' key")
	}
}

func TestWriteError_InternalErrorsRedactedAndLogged(t *testing.T) {
	log := &captureLogger{}
	w := httptest.NewRecorder()
	WriteError(context.Background(), log, w, errors.New("password for db is hunter2"))

	if strings.Contains(w.Body.String(), "hunter2") {
		t.Fatalf("internal error details leaked into response: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), http.StatusText(http.StatusInternalServerError)) {
		t.Errorf("expected generic message in body, got: %s", w.Body.String())
	}
	if len(log.entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(log.entries))
	}
	if got := fmt.Sprint(log.entries[0].args...); !strings.Contains(got, "hunter2") {
		t.Errorf("log entry missing the error detail: %s", got)
	}
}

func TestWriteError_StorageUnavailableLogged(t *testing.T) {
	log := &captureLogger{}
	w := httptest.NewRecorder()
	WriteError(context.Background(), log, w, fmt.Errorf("find terms: %w", glossarydomain.ErrStorageUnavailable))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}
	if len(log.entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(log.entries))
	}
}

func TestWriteError_ClientErrorsNotLogged(t *testing.T) {
	for _, err := range []error{
		glossarydomain.ErrTermNotFound,
		glossarydomain.ErrTermAlreadyExists,
		glossarydomain.ErrInvalidTerm,
	} {
		log := &captureLogger{}
		w := httptest.NewRecorder()
		WriteError(context.Background(), log, w, err)

		if len(log.entries) != 0 {
			t.Errorf("%v: expected no log entries, got %d", err, len(log.entries))
		}
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, glossarydomain.ErrTermNotFound)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
