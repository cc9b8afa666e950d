package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-todo-api/internal/config"
	"go-todo-api/internal/handler"
	"go-todo-api/internal/middleware"
	"go-todo-api/web"
)

type Handlers struct {
	Auth *handler.AuthHandler
	Todo *handler.TodoHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, handlers Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", handlers.Auth.Register)
			auth.Post("/login", handlers.Auth.Login)
			auth.Post("/refresh-token", handlers.Auth.Refresh)
			auth.With(authMiddleware.RequireAuth).Post("/logout", handlers.Auth.Logout)
			auth.With(authMiddleware.RequireAuth).Get("/user-info", handlers.Auth.UserInfo)
		})

		api.Route("/todos", func(todos chi.Router) {
			todos.Use(authMiddleware.RequireAuth)
			todos.Get("/", handlers.Todo.List)
			todos.Post("/", handlers.Todo.Create)
			todos.Put("/{id}", handlers.Todo.Update)
			todos.Delete("/{id}", handlers.Todo.Delete)
		})
	})

	staticFS, err := fs.Sub(web.Static, "static")
	if err == nil {
		r.Handle("/*", http.FileServer(http.FS(staticFS)))
	}

	return r
}
