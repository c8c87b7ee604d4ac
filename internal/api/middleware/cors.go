package middleware

import "net/http"

// corsAllowedHeaders mirrors what the dashboard client sends.
const corsAllowedHeaders = "authorization, x-client-info, apikey, content-type"

// CORS applies a permissive cross-origin policy and short-circuits
// preflight requests. Applied only to routes the browser dashboard calls
// directly.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
