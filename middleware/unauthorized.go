package middleware

import (
	"net/http"
)

const notFoundBody = "Not found"

// unauthorizedWriter holds back a 401 from the wrapped handler so its body can be replaced
type unauthorizedWriter struct {
	http.ResponseWriter
	intercepted bool
}

func (u *unauthorizedWriter) WriteHeader(statusCode int) {
	if statusCode != http.StatusUnauthorized {
		u.ResponseWriter.WriteHeader(statusCode)
		return
	}

	u.intercepted = true
	h := u.ResponseWriter.Header()
	h.Del("Content-Length")
	h.Set("Content-Type", "text/plain; charset=utf-8")
	u.ResponseWriter.WriteHeader(statusCode)
	u.ResponseWriter.Write([]byte(notFoundBody))
}

func (u *unauthorizedWriter) Write(b []byte) (int, error) {
	if u.intercepted {
		// body from the wrapped handler is dropped
		return len(b), nil
	}
	return u.ResponseWriter.Write(b)
}

// UnauthorizedHandler answers every 401 raised below it with the plain-text body "Not found".
// The status code is left at 401.
func UnauthorizedHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&unauthorizedWriter{ResponseWriter: w}, r)
	})
}
