package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/weatherapp/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(
	app *fiber.App,
	weatherSvc *service.WeatherService,
	authSvc *service.AuthService,
	searches *service.RecentSearchStore,
	repo service.UserRepository,
) {
	handler := NewHandler(weatherSvc, authSvc, searches, repo)

	// Health check
	app.Get("/health", handler.HealthCheck)

	api := app.Group("/api")
	{
		// Public auth endpoints
		auth := api.Group("/auth")
		auth.Post("/register", handler.Register)
		auth.Post("/login", handler.Login)

		// Authenticated weather endpoints
		weather := api.Group("/weather", RequireAuth(authSvc))
		weather.Get("/weather-data", handler.GetWeatherData)
		weather.Get("/weatherdata", handler.GetWeatherData)
		weather.Get("/suggestions", handler.GetSuggestions)
	}
}

// ErrorHandler renders every error as a JSON body with a message
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
