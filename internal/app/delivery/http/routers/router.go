package routers

import (
	"carerouter-service/internal/app/config"
	"carerouter-service/internal/app/delivery/http/controllers"
	"carerouter-service/internal/app/delivery/http/middlewares"
	"carerouter-service/internal/pkg/constvars"
	"fmt"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	answerLimiter *middlewares.RateLimiter,
	authController *controllers.AuthController,
	assessmentController *controllers.AssessmentController,
	resultsController *controllers.ResultsController,
	bookingController *controllers.BookingController,
	profileController *controllers.ProfileController,
) {
	corsOptions := cors.Options{
		AllowedOrigins: internalConfig.App.CorsAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			constvars.HeaderAccept,
			constvars.HeaderAuthorization,
			constvars.HeaderContentType,
			constvars.HeaderXRequestID,
			constvars.HeaderXClientID,
			constvars.HeaderXClientLat,
			constvars.HeaderXClientLng,
		},
		ExposedHeaders:   []string{constvars.HeaderXRequestID, constvars.HeaderXClientID, constvars.HeaderRetryAfter},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.ClientIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)
	router.Use(middlewares.GlobalRateLimit())

	endpointPrefix := fmt.Sprintf("/%s", strings.Trim(internalConfig.App.EndpointPrefix, "/"))
	versionPrefix := fmt.Sprintf("/%s", strings.Trim(internalConfig.App.Version, "/"))

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, authController)
			})

			r.Get("/questions", assessmentController.Questions)
			r.Route("/assessment", func(r chi.Router) {
				attachAssessmentRoutes(r, answerLimiter, assessmentController)
			})

			r.Route("/results", func(r chi.Router) {
				attachResultsRoutes(r, resultsController)
			})

			attachBookingRoutes(r, bookingController)

			r.Route("/me", func(r chi.Router) {
				attachProfileRoutes(r, profileController)
			})
		})
	})
}
