package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Init builds the router of the REST API.
//
// JSON routes are gzip-aware and bounded by the request timeout; attachment
// upload and download stream their bodies and are only bounded by the body
// size cap.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Content-Encoding", traceIDHeader},
		ExposedHeaders:   []string{"Authorization", traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if h.cfg.MaxBodyBytes > 0 {
		router.Use(middleware.RequestSize(h.cfg.MaxBodyBytes))
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		r.Route("/auth", func(r chi.Router) {
			r.Use(withGZip, h.withRequestTimeout)

			r.Post("/signup", h.signup)
			r.Post("/login", h.login)
			r.Get("/verify", h.verify)
			r.With(h.auth).Get("/dashboard", h.dashboard)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Use(h.auth)

			r.Group(func(r chi.Router) {
				r.Use(withGZip, h.withRequestTimeout)

				r.Post("/", h.createNote)
				r.Get("/", h.listNotes)
				r.Put("/{id}", h.updateNote)
				r.Patch("/{id}/favourite", h.setFavourite)
				r.Delete("/{id}", h.deleteNote)
				r.Delete("/{id}/images/{imageId}", h.removeImage)
			})

			r.Post("/upload/{kind}", h.uploadFile)
			r.Get("/file/{id}", h.getFile)
		})
	})

	router.NotFound(routeNotFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// withRequestTimeout bounds the handling time of a request when a timeout
// is configured.
func (h *Handler) withRequestTimeout(next http.Handler) http.Handler {
	if h.cfg.RequestTimeout <= 0 {
		return next
	}
	return middleware.Timeout(h.cfg.RequestTimeout)(next)
}
