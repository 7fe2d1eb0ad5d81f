package routers

import (
	"carerouter-service/internal/app/delivery/http/controllers"
	"carerouter-service/internal/pkg/constvars"
	"fmt"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(router chi.Router, bookingController *controllers.BookingController) {
	router.Route("/locations", func(r chi.Router) {
		r.Get("/", bookingController.Locations)
		r.Get(fmt.Sprintf("/{%s}/availability", constvars.URLParamLocationID), bookingController.Availability)
	})

	router.Get("/resources", bookingController.Nearby)

	router.Route("/bookings", func(r chi.Router) {
		r.Post("/", bookingController.Finalize)
		r.Get("/", bookingController.History)
		r.Get("/confirmation", bookingController.Confirmation)
	})
}
