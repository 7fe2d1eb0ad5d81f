package routers

import (
	"carerouter-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachProfileRoutes(router chi.Router, profileController *controllers.ProfileController) {
	router.Get("/profile", profileController.Profile)
	router.Put("/profile", profileController.UpdateProfile)
	router.Get("/assessments", profileController.History)
}
