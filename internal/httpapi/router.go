package httpapi

import (
	"net/http"
	"time"

	"github.com/Abusayem99133/kacha-bazaar/internal/app"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter mounts the render surface over the composed app state.
func NewRouter(a *app.App, requestTimeout time.Duration) http.Handler {
	authHandler := NewAuthHandler(a.Session)
	catalogHandler := NewCatalogHandler(a.Catalog, a.Products)
	cartHandler := NewCartHandler(a.Cart, a.Catalog, a.Products)
	checkoutHandler := NewCheckoutHandler(a.Checkout, a.Orders, a.Session)
	adminHandler := NewAdminHandler(a.Admin)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/sign-in", authHandler.SignIn)
			r.Post("/sign-up", authHandler.SignUp)
			r.Post("/sign-out", authHandler.SignOut)
			r.Get("/session", authHandler.GetSession)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", catalogHandler.Get)
			r.Post("/refresh", catalogHandler.Refresh)
			r.Put("/criteria", catalogHandler.SetCriteria)
			r.Post("/load-more", catalogHandler.LoadMore)
		})
		r.Get("/products/{id}", catalogHandler.GetProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{item_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{item_id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.ClearCart)
		})

		r.Post("/checkout", checkoutHandler.PlaceOrder)
		r.Get("/orders", checkoutHandler.ListOrders)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/stats", adminHandler.GetStats)
			r.Get("/products/recent", adminHandler.RecentProducts)
			r.Get("/orders/recent", adminHandler.RecentOrders)
			r.Post("/products", adminHandler.CreateProduct)
			r.Put("/products/{id}", adminHandler.UpdateProduct)
			r.Delete("/products/{id}", adminHandler.DeleteProduct)
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
