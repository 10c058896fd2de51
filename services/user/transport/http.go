package transport

import (
	"net/http"

	"radar/pkg/auth"
	"radar/pkg/models"
	mw "radar/pkg/middleware"
	"radar/services/user/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

type Handlers struct {
	User     *handler.UserHandler
	Interest *handler.InterestHandler
	Health   *handler.HealthHandler
}

func NewRouter(h Handlers, verifier mw.TokenVerifier, revocations auth.RevocationStore, logger zerolog.Logger) http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(mw.RequestLogger(logger))
	mux.Use(middleware.Recoverer)

	// CORS 설정
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mux.Get("/health", h.Health.Health)

	mux.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(verifier, revocations))
		adminOnly := mw.RequireRoles(models.RoleAdmin)

		r.Route("/users", func(r chi.Router) {
			// nearby는 {id} 보다 먼저 등록
			r.Get("/nearby", h.User.FindNearby)
			r.With(adminOnly).Get("/", h.User.FindUserList)

			r.Route("/{id:[0-9]+}", func(r chi.Router) {
				r.Get("/", h.User.FindUser)
				r.Patch("/", h.User.UpdateUser)
				r.With(adminOnly).Delete("/", h.User.DeleteUser)

				r.Patch("/preferences", h.User.UpdatePreferences)
				r.Patch("/password", h.User.UpdatePassword)
				r.Put("/interests", h.User.ReplaceInterests)
			})
		})

		r.Route("/interests", func(r chi.Router) {
			r.Get("/", h.Interest.FindInterestList)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", h.Interest.CreateInterest)
				r.Patch("/{id}", h.Interest.UpdateInterest)
				r.Delete("/{id}", h.Interest.DeleteInterest)
			})
		})
	})

	return mux
}
