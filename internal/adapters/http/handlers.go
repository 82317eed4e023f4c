package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campusnav/core/internal/application/services"
	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/ports"
)

const claimsKey = "claims"

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, userService *services.UserService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		logger:      logger,
	}
}

// Signup godoc
// @Summary Create an account
// @Description Create an account. Consent to data processing is required; role defaults to visitor.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.SignupRequest true "Signup data"
// @Success 201 {object} ports.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req ports.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	response, err := h.authService.Signup(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response)
}

// Login godoc
// @Summary Log in
// @Description Exchange username and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.LoginRequest true "Credentials"
// @Success 200 {object} ports.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.LogSecurityEvent("login_failed", req.Username, c.RealIP(), map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	return c.JSON(http.StatusOK, response)
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} entities.User
// @Security BearerAuth
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims := ClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing credentials")
	}

	user, err := h.userService.Get(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// SetClaims stores the authenticated caller on the request context
func SetClaims(c echo.Context, claims *ports.Claims) {
	c.Set(claimsKey, claims)
}

// ClaimsFromContext returns the authenticated caller, or nil
func ClaimsFromContext(c echo.Context) *ports.Claims {
	claims, _ := c.Get(claimsKey).(*ports.Claims)
	return claims
}

func parseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

// listFilter reads q as the search query and every other query parameter
// as a boolean flag filter
func listFilter(c echo.Context) (ports.ListFilter, error) {
	filter := ports.ListFilter{Query: c.QueryParam("q")}

	for name, values := range c.QueryParams() {
		if name == "q" || len(values) == 0 {
			continue
		}
		value, err := strconv.ParseBool(values[0])
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid value for filter "+name)
		}
		if filter.Flags == nil {
			filter.Flags = make(map[string]bool)
		}
		filter.Flags[name] = value
	}

	return filter, nil
}

// Request/Response types
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string                `json:"message"`
	Details []entities.FieldError `json:"details,omitempty"`
}

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}
