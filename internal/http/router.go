package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taller-baterias/inventario/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.With(LoginRateLimit).Post("/login", handlers.LoginHandler)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Get("/products", handlers.GetProductsHandler)
		r.Put("/products/{code}", handlers.UpsertProductHandler)
		r.Delete("/products/{code}", handlers.DeleteProductHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)
		r.Get("/products/export", handlers.ExportProductsHandler)

		r.Get("/alerts", handlers.GetAlertsHandler)
		r.Get("/alerts/export", handlers.ExportAlertsHandler)

		r.Get("/dashboard", handlers.GetDashboardHandler)

		r.Get("/settings", handlers.GetSettingsHandler)
		r.Put("/settings", handlers.UpdateSettingsHandler)

		r.Get("/history", handlers.GetHistoryHandler)

		r.Group(func(r chi.Router) {
			r.Use(AdminOnly)

			r.Get("/users", handlers.GetUsersHandler)
			r.Post("/users", handlers.CreateUserHandler)
			r.Delete("/users/{username}", handlers.DeleteUserHandler)
			r.Put("/users/{username}/password", handlers.ChangePasswordHandler)

			r.Delete("/history", handlers.ClearHistoryHandler)
		})
	})

	return r
}
