package middlewares

import (
	"net/http"
)

const (
	publicCache  = "public, max-age=3600, stale-while-revalidate=86400"
	privateCache = "private, max-age=3600"
)

// Cache marks successful responses as cacheable by anyone for an hour. Check-in QR codes never change for an event.
func Cache(handler http.Handler) http.Handler {
	return cache(publicCache, handler)
}

// PrivateCache marks successful responses as cacheable by the browser only.
func PrivateCache(handler http.Handler) http.Handler {
	return cache(privateCache, handler)
}

func cache(value string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(&cacheWriter{
			ResponseWriter: w,
			value:          value,
		}, r)
	})
}

// cacheWriter sets the Cache-Control header once the status is known. Errors are never cached.
type cacheWriter struct {
	http.ResponseWriter
	value       string
	wroteHeader bool
}

func (w *cacheWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		if status == http.StatusOK {
			w.Header().Set("Cache-Control", w.value)
		} else {
			w.Header().Set("Cache-Control", "no-store")
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *cacheWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *cacheWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
