package routers

import (
	"rehab-service/internal/app/delivery/http/controllers"
	"rehab-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAdminRoutes(router chi.Router, middlewares *middlewares.Middlewares, loginLimiter *middlewares.RateLimiter, adminController *controllers.AdminController) {
	router.With(loginLimiter.Limit).Post("/login", adminController.Login)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Post("/logout", adminController.Logout)
		r.Get("/bookings", adminController.ListBookings)
		r.Get("/bookings/{id}/receipt", adminController.GetReceipt)
		r.Post("/resend-email/{id}", adminController.ResendEmail)
	})
}
