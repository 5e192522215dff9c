package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// RegisterRoutes mounts the API. processPerMinute limits uploads per client
// IP; zero disables the limit.
func RegisterRoutes(r chi.Router, h *NotesHandler, processPerMinute int) {
	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api", func(ar chi.Router) {
		ar.Use(httputil.RecoverMiddleware)

		if processPerMinute > 0 {
			ar.With(httprate.LimitByIP(processPerMinute, time.Minute)).Post("/process", h.Process)
		} else {
			ar.Post("/process", h.Process)
		}
		ar.Get("/download", h.Download)
	})
}
