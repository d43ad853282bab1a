package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// CORS answers preflight requests and marks allowed origins. allowed is the comma
// separated http_server.allowed_origins value; "*" admits any origin.
func CORS(allowed string) func(http.Handler) http.Handler {
	var origins []string
	for _, o := range strings.Split(allowed, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	}).Handler
}
