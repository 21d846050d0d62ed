package middleware

import (
	"net/http"
	"strings"
)

// OperatorAuth gates control endpoints behind a shared operator token,
// accepted as a Bearer header or a token query parameter. An empty
// configured token leaves the surface open for local development.
func OperatorAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" || authorized(r, token) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
		})
	}
}

func authorized(r *http.Request, token string) bool {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") && strings.TrimPrefix(header, "Bearer ") == token {
		return true
	}
	return r.URL.Query().Get("token") == token && token != ""
}
