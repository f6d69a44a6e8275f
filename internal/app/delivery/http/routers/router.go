package routers

import (
	"rehab-service/internal/app/config"
	"rehab-service/internal/app/delivery/http/controllers"
	"rehab-service/internal/app/delivery/http/middlewares"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	loginLimiter *middlewares.RateLimiter,
	slotController *controllers.SlotController,
	bookingController *controllers.BookingController,
	adminController *controllers.AdminController,
	healthController *controllers.HealthController,
) {
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	if internalConfig.App.MaxRequests > 0 {
		router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Duration(max(internalConfig.App.MaxTimeRequestsPerSeconds, 1))*time.Second))
	}
	router.Use(middlewares.BodyLimit)

	router.Get("/healthz", healthController.Healthz)

	attachSlotRoutes(router, slotController)
	attachBookingRoutes(router, bookingController)

	router.Route("/admin", func(r chi.Router) {
		attachAdminRoutes(r, middlewares, loginLimiter, adminController)
	})
}
