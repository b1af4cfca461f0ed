package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rcoelho/marketplace-api/internal/api/handlers"
	"github.com/rcoelho/marketplace-api/internal/api/middleware"
	"github.com/rcoelho/marketplace-api/internal/service"
	"github.com/rcoelho/marketplace-api/internal/storage"
)

func NewRouter(services *service.Services, store *storage.DiskStore) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(services.Auth)
	productHandler := handlers.NewProductHandler(services.Product, store)
	categoryHandler := handlers.NewCategoryHandler(services.Category)

	// Public routes
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	// Uploaded images are served without auth so product pages can embed them.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(store.Dir()))))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(services.Auth))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", productHandler.Create)
			r.Get("/", productHandler.List)
			r.Get("/{id}", productHandler.Get)
			r.Put("/{id}", productHandler.Update)
			r.Delete("/{id}", productHandler.Delete)
		})

		r.Get("/categories", categoryHandler.List)
	})

	return r
}
