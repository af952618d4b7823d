package apiserver

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackmaster/trackmaster/pkg/apierrors"
	"github.com/trackmaster/trackmaster/pkg/db"
	"github.com/trackmaster/trackmaster/pkg/validate"
)

func TestChain_StopsAtFirstError(t *testing.T) {
	var ran []string
	record := func(name string, err error) step {
		return func(r *http.Request) (*http.Request, error) {
			ran = append(ran, name)
			return r, err
		}
	}
	handled := false
	h := chain(func(w http.ResponseWriter, r *http.Request) error {
		handled = true
		return nil
	}, record("first", nil), record("second", apierrors.Unauthorized("nope")), record("third", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "second"}, ran)
	assert.False(t, handled)
	requireError(t, rec, http.StatusUnauthorized, "nope")
}

func TestChain_UnknownErrorIsInternal(t *testing.T) {
	h := chain(func(w http.ResponseWriter, r *http.Request) error {
		return errors.New("database exploded")
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	requireError(t, rec, http.StatusInternalServerError, "An unknown error occurred")
	assert.NotContains(t, rec.Body.String(), "exploded")
}

func TestValidateBody_ReplacesBodyWithSanitizedValues(t *testing.T) {
	var got string
	h := chain(func(w http.ResponseWriter, r *http.Request) error {
		raw, err := io.ReadAll(r.Body)
		got = string(raw)
		return err
	}, validateBody(validate.Field("name").Trim().NotEmpty()))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"  bob  ","age":42}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"bob","age":42}`, got)
}

func TestWriteError_RemovesUploadedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.png")
	require.NoError(t, os.WriteFile(path, []byte("image"), 0o600))

	saveUpload := func(r *http.Request) (*http.Request, error) {
		return withUploadedFile(r, path), nil
	}
	h := chain(func(w http.ResponseWriter, r *http.Request) error {
		return apierrors.Validation("bad upload")
	}, saveUpload)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	requireError(t, rec, http.StatusUnprocessableEntity, "bad upload")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteError_KeepsUploadOnSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.png")
	require.NoError(t, os.WriteFile(path, []byte("image"), 0o600))

	h := chain(func(w http.ResponseWriter, r *http.Request) error {
		writeCreated(w, map[string]string{"file": path})
		return nil
	}, func(r *http.Request) (*http.Request, error) {
		return withUploadedFile(r, path), nil
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteError_ResponseAlreadyStarted(t *testing.T) {
	rec := httptest.NewRecorder()
	w := wrapResponseWriter(rec)
	writeSuccess(w, map[string]string{"ok": "yes"})

	writeError(w, httptest.NewRequest(http.MethodGet, "/", nil), apierrors.Internal("too late", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":"yes"}`, rec.Body.String())
}

func TestLoggingMiddleware_RecoversPanics(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := loggingMiddleware(logrus.NewEntry(log))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/domains", nil))

	requireError(t, rec, http.StatusInternalServerError, "An unknown error occurred")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestLoggingMiddleware_KeepsRequestID(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := loggingMiddleware(logrus.NewEntry(log))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "remote address", want: "192.0.2.1"},
		{name: "forwarded for", headers: map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, want: "203.0.113.5"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "198.51.100.7"}, want: "198.51.100.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, realIP(req))
		})
	}
}

func TestPageFromQuery(t *testing.T) {
	tests := []struct {
		query string
		want  db.Page
	}{
		{query: "", want: db.Page{}},
		{query: "page=1", want: db.Page{Limit: 20}},
		{query: "page=3", want: db.Page{Limit: 20, Offset: 40}},
		{query: "page=0", want: db.Page{Limit: 20}},
		{query: "page=-4", want: db.Page{Limit: 20}},
		{query: "page=two", want: db.Page{Limit: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/data?"+tt.query, nil)
			assert.Equal(t, tt.want, pageFromQuery(req))
		})
	}
}

func TestRemoteHost_IgnoresProxyHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "6.6.6.6")
	req.Header.Set("X-Real-IP", "6.6.6.7")

	assert.Equal(t, "192.0.2.1", remoteHost(req))
	assert.Equal(t, "192.0.2.1", (&handler{}).clientIP(req))
	assert.Equal(t, "6.6.6.6", (&handler{trustProxy: true}).clientIP(req))
}
