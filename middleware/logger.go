package middleware

import (
	"lyrical-api/logcolors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// ResponseRecorder wraps http.ResponseWriter to capture status code and body size
type ResponseRecorder struct {
	http.ResponseWriter
	StatusCode int
	BodySize   int
}

// NewResponseRecorder returns a recorder that reports 200 until told otherwise
func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{ResponseWriter: w, StatusCode: http.StatusOK}
}

func (rec *ResponseRecorder) WriteHeader(statusCode int) {
	rec.StatusCode = statusCode
	rec.ResponseWriter.WriteHeader(statusCode)
}

func (rec *ResponseRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.BodySize += n
	return n, err
}

func getStatusColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return logcolors.Green
	case statusCode >= 300 && statusCode < 400:
		return logcolors.Cyan
	case statusCode >= 400 && statusCode < 500:
		return logcolors.Yellow
	case statusCode >= 500:
		return logcolors.Red
	default:
		return logcolors.Reset
	}
}

// LoggingMiddleware logs method, path, status, response size and duration of every request
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := NewResponseRecorder(w)

		next.ServeHTTP(rec, r)

		statusColor := getStatusColor(rec.StatusCode)
		log.Infof("%s %s %s %s%d%s %dB %v",
			logcolors.LogRequest,
			r.Method,
			r.URL.Path,
			statusColor, rec.StatusCode, logcolors.Reset,
			rec.BodySize,
			time.Since(start),
		)
	})
}
