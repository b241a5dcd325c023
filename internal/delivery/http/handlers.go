package http

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/weatherapp/backend/internal/domain"
	"github.com/weatherapp/backend/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	weatherSvc *service.WeatherService
	authSvc    *service.AuthService
	searches   *service.RecentSearchStore
	repo       service.UserRepository
}

// NewHandler creates a new handler
func NewHandler(
	weatherSvc *service.WeatherService,
	authSvc *service.AuthService,
	searches *service.RecentSearchStore,
	repo service.UserRepository,
) *Handler {
	return &Handler{
		weatherSvc: weatherSvc,
		authSvc:    authSvc,
		searches:   searches,
		repo:       repo,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	if err := h.repo.Health(c.UserContext()); err != nil {
		log.Printf("Health check: %v", err)
		status = "degraded"
	}

	return c.JSON(fiber.Map{
		"status":  status,
		"service": "weather-backend",
		"version": "1.0.0",
	})
}

// Register creates an account and returns a token
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	user, token, err := h.authSvc.Register(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		var dup *domain.DuplicateFieldError
		switch {
		case errors.As(err, &dup):
			return fiber.NewError(fiber.StatusBadRequest, dup.Error())
		case errors.Is(err, domain.ErrMissingParameter):
			return fiber.NewError(fiber.StatusBadRequest, "Username, email and password are required")
		case errors.Is(err, domain.ErrPasswordTooLong):
			return fiber.NewError(fiber.StatusBadRequest, "Password must be at most 72 bytes")
		default:
			log.Printf("Registration failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Registration failed")
		}
	}

	log.Printf("User registered: %s", user.Username)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"token":   token,
	})
}

// Login exchanges credentials for a token
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	_, token, err := h.authSvc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusUnauthorized, "Incorrect email or password")
		}
		log.Printf("Login failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Login failed")
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// GetWeatherData returns aggregated weather for ?location= and records the search
func (h *Handler) GetWeatherData(c *fiber.Ctx) error {
	// Query values alias the request buffer, which fasthttp reuses once the handler returns
	location := utils.CopyString(c.Query("location"))
	user := currentUser(c)
	log.Printf("Received weather data request for location: %q", location)

	data, err := h.weatherSvc.Lookup(c.UserContext(), user.ID, location)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingParameter):
			return fiber.NewError(fiber.StatusBadRequest, "Location is required")
		case errors.Is(err, domain.ErrLocationNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Location not found")
		default:
			log.Printf("Error fetching weather data: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Error fetching weather data")
		}
	}

	return c.JSON(data)
}

// GetSuggestions returns the caller's recent searches, most recent first
func (h *Handler) GetSuggestions(c *fiber.Ctx) error {
	user := currentUser(c)

	suggestions, err := h.searches.Suggestions(c.UserContext(), user.ID)
	if err != nil {
		log.Printf("Failed to load suggestions: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Error fetching suggestions")
	}

	return c.JSON(fiber.Map{
		"suggestions": suggestions,
	})
}
