package apiserver

import (
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/trackmaster/trackmaster/pkg/apierrors"
)

const requestIDHeader = "X-Request-ID"

// remoteHost is the address of the connection the request came in on.
func remoteHost(req *http.Request) string {
	if host, _, err := net.SplitHostPort(req.RemoteAddr); err == nil {
		return host
	}
	return req.RemoteAddr
}

// realIP get the real IP from http request, trusting proxy headers. Only use
// it for logging unless the server sits behind a trusted proxy.
func realIP(req *http.Request) string {
	ra := req.RemoteAddr
	if ip := req.Header.Get("X-Forwarded-For"); ip != "" {
		ra = strings.TrimSpace(strings.Split(ip, ",")[0])
	} else if ip := req.Header.Get("X-Real-IP"); ip != "" {
		ra = ip
	} else if host, _, err := net.SplitHostPort(ra); err == nil {
		ra = host
	}
	return ra
}

// responseWriter is a minimal wrapper for http.ResponseWriter that allows the
// written HTTP status code to be captured for logging.
type responseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func wrapResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

func (rw *responseWriter) Status() int {
	return rw.status
}

// Started reports whether the status line has been sent.
func (rw *responseWriter) Started() bool {
	return rw.wroteHeader
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}

	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
	rw.wroteHeader = true
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// loggingMiddleware logs the incoming HTTP request & its duration.
func loggingMiddleware(logger *logrus.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)

			log := logger.WithField("requestID", requestID)
			if remoteAddr := realIP(r); remoteAddr != "" {
				log = log.WithField("remoteAddr", remoteAddr)
			}

			start := time.Now()
			wrapped := wrapResponseWriter(w)

			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.WithError(err).WithField("status", http.StatusInternalServerError).Error("recovered error")
					log.Errorf("Stack %s", debug.Stack())
					writeError(wrapped, r, apierrors.Internal("An unknown error occurred", err))
				}
			}()

			next.ServeHTTP(wrapped, r)

			if !strings.Contains(r.URL.EscapedPath(), "healthz") {
				requestLogger := log.WithFields(logrus.Fields{
					"status":   wrapped.status,
					"method":   r.Method,
					"path":     r.URL.EscapedPath(),
					"duration": time.Since(start),
				})

				msg := fmt.Sprintf("handled: %d", wrapped.status)
				if wrapped.status >= 400 {
					requestLogger.Error(msg)
				} else {
					requestLogger.Debug(msg)
				}
			}
		}

		return http.HandlerFunc(fn)
	}
}
