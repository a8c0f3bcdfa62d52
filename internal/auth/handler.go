package auth

import (
	"errors"
	"net/http"

	"SDRAdmin/pkg/response"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	service *AdminService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *AdminService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register creates an admin account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "Invalid request")
	}

	admin, err := h.service.Register(c.Request().Context(), req)
	if errors.Is(err, ErrEmailTaken) {
		return response.Fail(c, http.StatusConflict, err.Error())
	}
	if err != nil {
		return response.Error(c, err, "Failed to register admin")
	}
	return response.Success(c, http.StatusCreated, "Admin registered successfully", response.Payload{"admin": admin})
}

// Login exchanges credentials for a JWT.
func (h *AuthHandler) Login(c echo.Context) error {
	var cred Credential
	if err := c.Bind(&cred); err != nil {
		return response.Fail(c, http.StatusBadRequest, "Invalid request")
	}

	token, admin, err := h.service.Authenticate(c.Request().Context(), cred)
	if errors.Is(err, ErrInvalidCredentials) {
		return response.Fail(c, http.StatusUnauthorized, err.Error())
	}
	if err != nil {
		return response.Error(c, err, "Login failed")
	}
	return response.Success(c, http.StatusOK, "Login successful", response.Payload{"token": token, "admin": admin})
}

// Profile returns the calling admin.
func (h *AuthHandler) Profile(c echo.Context) error {
	adminID, err := AdminIDFrom(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "Invalid or missing token")
	}

	admin, err := h.service.Profile(c.Request().Context(), adminID)
	if err != nil {
		return response.Error(c, err, "Failed to load profile")
	}
	return response.Success(c, http.StatusOK, "Authenticated admin", response.Payload{"admin": admin})
}
