package httpserver

import (
	"net/http"

	"futures-bot/internal/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterDeps struct {
	Handler     *Handler
	WSHandler   http.Handler
	AuthService *auth.Service // nil disables bearer auth
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	// A panicking handler answers 500 instead of killing the process.
	r.Use(middleware.Recoverer)

	// CORS middleware so any frontend origin can talk to this server
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				origin = "*"
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Use(SecurityHeaders)

	r.Get("/", d.Handler.Health)
	r.Get("/logs", d.Handler.Logs)
	if d.WSHandler != nil {
		r.Get("/logs/ws", d.WSHandler.ServeHTTP)
	}
	r.Group(func(r chi.Router) {
		if d.AuthService != nil {
			r.Use(WithAuth(d.AuthService))
		}
		r.Get("/balance", d.Handler.Balance)
		r.Post("/order", d.Handler.PlaceOrder)
	})
	return r
}
