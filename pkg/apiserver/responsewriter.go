package apiserver

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/trackmaster/trackmaster/pkg/apierrors"
	"github.com/trackmaster/trackmaster/pkg/model"
)

// writeError is the single place a failed request ends. It removes any file
// uploaded with the request, leaves responses that were already started alone
// and otherwise writes {message, code}.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := apierrors.From(err)
	log := logrus.WithField("status", apiErr.Code)
	if r != nil {
		log = log.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.EscapedPath()})
		removeUploadedFile(r)
	}

	if apiErr.Code >= http.StatusInternalServerError {
		log.WithError(apiErr.Unwrap()).Errorf("request failed: %s", apiErr.Message)
	} else {
		log.Debugf("request rejected: %s", apiErr.Message)
	}

	if started(w) {
		logrus.Warnf("response already started, dropping error: %v", err)
		return
	}

	writeJSON(w, apiErr.Code, model.ErrorResponse{
		Message: apiErr.Message,
		Code:    apiErr.Code,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	res, err := json.Marshal(data)
	if err != nil {
		logrus.Errorf("failed to encode response: %v", err)
		res = []byte(`{"message":"An unknown error occurred","code":500}`)
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

func writeCreated(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, data)
}

func started(w http.ResponseWriter) bool {
	s, ok := w.(interface{ Started() bool })
	return ok && s.Started()
}

type uploadKey struct{}

// withUploadedFile records a file saved for r so it is removed if the request fails.
func withUploadedFile(r *http.Request, path string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), uploadKey{}, path))
}

func removeUploadedFile(r *http.Request) {
	path, ok := r.Context().Value(uploadKey{}).(string)
	if !ok || path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logrus.Errorf("failed to remove uploaded file %s: %v", path, err)
	}
}
