package apiserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/trackmaster/trackmaster/pkg/apierrors"
	"github.com/trackmaster/trackmaster/pkg/validate"
)

const (
	maxBodyBytes  = 1 << 20
	invalidInputs = "Invalid inputs passed, please check your data"
)

// step runs before a handler. It either returns the request to continue with
// or an error that ends the chain.
type step func(r *http.Request) (*http.Request, error)

// handlerFunc is an http.HandlerFunc that reports failure by returning it.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// chain runs steps in order, then h. The first error is written by writeError
// and nothing after it runs.
func chain(h handlerFunc, steps ...step) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, s := range steps {
			next, err := s(r)
			if err != nil {
				writeError(w, r, err)
				return
			}
			r = next
		}

		if err := h(w, r); err != nil {
			writeError(w, r, err)
		}
	})
}

// validateBody checks the request body against rules. Sanitized values
// replace the original body, which is always re-encoded as JSON.
func validateBody(rules ...*validate.Chain) step {
	return func(r *http.Request) (*http.Request, error) {
		body, err := readBody(r)
		if err != nil {
			return nil, err
		}

		if errs := validate.Check(body, rules...); errs != nil {
			msg := invalidInputs
			if v, ok := validate.First(errs); ok && v.Message != "" {
				msg = v.Message
			}
			return nil, apierrors.Validation(msg)
		}

		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, apierrors.Internal(invalidInputs, err)
		}

		next := r.Clone(r.Context())
		next.Body = io.NopCloser(bytes.NewReader(encoded))
		next.ContentLength = int64(len(encoded))
		next.Header.Set("Content-Type", "application/json")
		return next, nil
	}
}

// readBody decodes a JSON object or a url-encoded form into a map.
func readBody(r *http.Request) (map[string]interface{}, error) {
	body := map[string]interface{}{}
	if r.Body == nil {
		return body, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return nil, apierrors.Validation(invalidInputs)
		}
		for k, v := range r.PostForm {
			if len(v) > 0 {
				body[k] = v[0]
			}
		}
		return body, nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, apierrors.Validation(invalidInputs)
	}
	if len(raw) > maxBodyBytes {
		return nil, apierrors.Validation("Request body is too large.")
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return body, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&body); err != nil {
		return nil, apierrors.Validation(invalidInputs)
	}
	if body == nil {
		body = map[string]interface{}{}
	}
	return body, nil
}

// decodeBody decodes the (already validated) JSON body into v.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return apierrors.Validation(invalidInputs)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return apierrors.Validation(invalidInputs)
	}
	return nil
}
