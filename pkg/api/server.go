// Package api odsdb REST API
//
// @title           odsdb REST API
// @version         1.0.0
// @description     REST API for decoding, encoding and storing ODS outline/sitemap buffers.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"

	"github.com/ssargent/odsdb/pkg/logging"
)

const swaggerUI = `<!DOCTYPE html>
<html>
<head>
	 <title>odsdb API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/swagger.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`

// NewRouter builds the HTTP handler with all routes configured
func NewRouter(server *Server, metrics *Metrics) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.Middleware)
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(server.config.APIKey)))

		r.Get("/health", server.handleHealth)

		// Stateless codec operations
		r.Post("/decode", server.handleDecode)
		r.Post("/encode", server.handleEncode)

		// Stored outlines
		r.Route("/outlines", func(r chi.Router) {
			r.Post("/", server.handleCreateOutline)
			r.Get("/", server.handleListOutlines)
			r.Get("/{id}", server.handleGetOutline)
			r.Put("/{id}", server.handleUpdateOutline)
			r.Delete("/{id}", server.handleDeleteOutline)
			r.Get("/{id}/raw", server.handleGetOutlineRaw)
			r.Get("/{id}/diff/{other}", server.handleDiffOutlines)
		})
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/swagger/", "/swagger/index.html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(swaggerUI))
		case "/swagger/swagger.json":
			doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
			if err != nil {
				logging.Error("api: swagger doc: %v", err)
				http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(doc))
		default:
			http.NotFound(w, r)
		}
	})

	return r
}

// StartServer starts the HTTP server and blocks until it fails
func StartServer(store IOutlineStore, c IOutlineCodec, config ServerConfig, metrics *Metrics) error {
	SwaggerInfo.Host = fmt.Sprintf("localhost:%d", config.Port)

	server := NewServer(store, c, config, metrics)
	if infos, err := store.List(); err == nil {
		metrics.UpdateStoredOutlines(len(infos))
	}

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	logging.Info("Starting odsdb REST API server on %s", addr)
	logging.Info("Metrics available at: http://%s/metrics", addr)
	return http.ListenAndServe(addr, NewRouter(server, metrics))
}
