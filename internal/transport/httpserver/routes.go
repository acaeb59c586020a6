package httpserver

import (
	"net/http"

	"foodgram-go/internal/config"
	"foodgram-go/internal/transport/httpserver/handler"
	authmw "foodgram-go/internal/transport/httpserver/middleware"
	"foodgram-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(authmw.RequestLogger(log))
	r.Use(chimw.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}
	r.Use(authmw.NewCORS(cfg.CORS))

	auth := authmw.NewJWTAuth(cfg.Auth, profiles, log)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Group(func(r chi.Router) {
			r.Use(auth.Optional)

			r.Get("/tags", handlers.ListTags)
			r.Get("/tags/{id}", handlers.GetTag)

			r.Get("/ingredients", handlers.ListIngredients)
			r.Get("/ingredients/{id}", handlers.GetIngredient)

			r.Get("/recipes", handlers.ListRecipes)
			r.Get("/recipes/{id}", handlers.GetRecipe)

			r.Get("/users", handlers.ListUsers)
			r.Get("/users/{id}", handlers.GetUser)
			r.Get("/users/{id}/subscribers", handlers.ListSubscribers)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Required)

			r.Post("/tags", handlers.CreateTag)
			r.Patch("/tags/{id}", handlers.UpdateTag)
			r.Delete("/tags/{id}", handlers.DeleteTag)

			r.Post("/ingredients", handlers.CreateIngredient)

			r.Get("/recipes/download_shopping_cart", handlers.DownloadShoppingCart)
			r.Post("/recipes", handlers.CreateRecipe)
			r.Patch("/recipes/{id}", handlers.UpdateRecipe)
			r.Delete("/recipes/{id}", handlers.DeleteRecipe)
			r.Post("/recipes/{id}/favorite", handlers.AddFavorite)
			r.Delete("/recipes/{id}/favorite", handlers.RemoveFavorite)
			r.Post("/recipes/{id}/shopping_cart", handlers.AddToCart)
			r.Delete("/recipes/{id}/shopping_cart", handlers.RemoveFromCart)

			r.Get("/users/me", handlers.Me)
			r.Get("/users/subscriptions", handlers.ListSubscriptions)
			r.Post("/users/{id}/subscribe", handlers.Subscribe)
			r.Delete("/users/{id}/subscribe", handlers.Unsubscribe)
		})
	})

	return r
}
