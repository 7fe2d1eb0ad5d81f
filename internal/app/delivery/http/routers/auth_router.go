package routers

import (
	"carerouter-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, authController *controllers.AuthController) {
	router.Post("/login", authController.Login)
	router.Post("/signup", authController.Signup)
	router.Post("/logout", authController.Logout)
	router.Get("/status", authController.Status)
}
