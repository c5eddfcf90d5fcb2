package middleware

import (
	"log"
	"net/http"
	"time"
)

// RequestLogging logs request outcomes. PDF bodies can be large, so only
// method, path, status, size and latency are recorded.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &sizeRecorder{ResponseWriter: w, statusCode: 200}
		next.ServeHTTP(wrapped, r)

		log.Printf("[HTTP] %s %s %d %dB %s",
			r.Method, r.URL.Path, wrapped.statusCode, wrapped.bytesWritten, time.Since(start))
	})
}

type sizeRecorder struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *sizeRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *sizeRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}
