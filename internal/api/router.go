package api

import (
	"net/http"
	"time"

	"campus_connect/internal/api/handler"
	"campus_connect/internal/api/middleware"
	"campus_connect/internal/app/service"
	"campus_connect/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	auth *middleware.Auth,
	authService *service.AuthService,
	userService *service.UserService,
	postService *service.PostService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the bearer token and puts claims in context; per-route
	// Authenticator decides whether a valid token is required.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		userHandler := handler.NewUserHandler(userService, auth)
		v1.Route("/users", userHandler.RegisterRoutes)
		v1.Route("/alumni", userHandler.RegisterAlumniRoutes)

		postHandler := handler.NewPostHandler(postService, auth)
		v1.Route("/posts", postHandler.RegisterRoutes)
	})

	return r
}
