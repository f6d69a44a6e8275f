package routers

import (
	"rehab-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachSlotRoutes(router chi.Router, slotController *controllers.SlotController) {
	router.Get("/slots", slotController.GetSlots)
	router.Get("/next-availability", slotController.GetNextAvailability)
}
