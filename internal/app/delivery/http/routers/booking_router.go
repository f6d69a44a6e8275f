package routers

import (
	"rehab-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(router chi.Router, bookingController *controllers.BookingController) {
	router.Post("/create-order", bookingController.CreateOrder)
	router.Post("/verify-payment", bookingController.VerifyPayment)
}
