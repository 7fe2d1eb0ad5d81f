package routers

import (
	"carerouter-service/internal/app/delivery/http/controllers"
	"carerouter-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAssessmentRoutes(router chi.Router, answerLimiter *middlewares.RateLimiter, assessmentController *controllers.AssessmentController) {
	router.Post("/", assessmentController.Start)
	router.Get("/", assessmentController.Snapshot)
	router.Delete("/", assessmentController.Abandon)

	router.Group(func(r chi.Router) {
		if answerLimiter != nil {
			r.Use(answerLimiter.Limit)
		}
		r.Post("/answers", assessmentController.Answer)
		r.Post("/skip", assessmentController.Skip)
	})
}
