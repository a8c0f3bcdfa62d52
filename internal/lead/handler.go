package lead

import (
	"net/http"

	"SDRAdmin/internal/apperror"
	"SDRAdmin/pkg/response"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeadHandler struct {
	service *LeadService
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(service *LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

// Create registers a new lead.
func (h *LeadHandler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "Invalid request")
	}
	l, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err, "Failed to create lead")
	}
	return response.Success(c, http.StatusCreated, "Lead created successfully", response.Payload{"lead": l})
}

// List returns the newest leads first.
func (h *LeadHandler) List(c echo.Context) error {
	leads, err := h.service.List(c.Request().Context())
	if err != nil {
		return response.Error(c, err, "Failed to fetch leads")
	}
	return response.Success(c, http.StatusOK, "", response.Payload{"leads": leads})
}

// Get returns a lead by id.
func (h *LeadHandler) Get(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return response.Error(c, apperror.Validation("Invalid lead id"), "")
	}
	l, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err, "Failed to fetch lead")
	}
	return response.Success(c, http.StatusOK, "", response.Payload{"lead": l})
}
