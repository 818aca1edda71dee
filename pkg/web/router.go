package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter はブラウザ向けの画面とダウンロードのルーティングを構成します。
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, requestLogger)

	r.Get("/healthz", s.Health)

	r.Get("/", s.Index)
	r.Post("/upload", s.Upload)
	r.Post("/generate", s.Generate)
	r.Post("/reset", s.Reset)
	r.Get("/download", s.Download)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.State)
	})

	return r
}
