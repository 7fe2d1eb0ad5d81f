package routers

import (
	"carerouter-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachResultsRoutes(router chi.Router, resultsController *controllers.ResultsController) {
	router.Get("/", resultsController.Load)
	router.Post("/export", resultsController.Export)
}
