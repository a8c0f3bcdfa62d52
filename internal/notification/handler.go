package notification

import (
	"net/http"

	"SDRAdmin/internal/apperror"
	"SDRAdmin/internal/auth"
	"SDRAdmin/pkg/response"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationHandler struct {
	service *NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service *NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List returns the admin's latest notifications.
func (h *NotificationHandler) List(c echo.Context) error {
	adminID, err := auth.AdminIDFrom(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "Invalid or missing token")
	}
	notifications, err := h.service.List(c.Request().Context(), adminID)
	if err != nil {
		return response.Error(c, err, "Internal server error")
	}
	return response.Success(c, http.StatusOK, "Notifications fetched successfully", response.Payload{"notifications": notifications})
}

// Create adds a notification for the calling admin.
func (h *NotificationHandler) Create(c echo.Context) error {
	adminID, err := auth.AdminIDFrom(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "Invalid or missing token")
	}
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "Invalid request")
	}
	n, err := h.service.Create(c.Request().Context(), adminID, req)
	if err != nil {
		return response.Error(c, err, "Internal server error")
	}
	return response.Success(c, http.StatusCreated, "Notification created successfully", response.Payload{"notification": n})
}

// MarkRead flags one notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	adminID, id, ok, err := h.ids(c)
	if !ok {
		return err
	}
	n, err := h.service.MarkRead(c.Request().Context(), id, adminID)
	if err != nil {
		return response.Error(c, err, "Internal server error")
	}
	return response.Success(c, http.StatusOK, "Notification marked as read", response.Payload{"notification": n})
}

// MarkAllRead flags every unread notification of the admin as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	adminID, err := auth.AdminIDFrom(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "Invalid or missing token")
	}
	count, err := h.service.MarkAllRead(c.Request().Context(), adminID)
	if err != nil {
		return response.Error(c, err, "Internal server error")
	}
	return response.Success(c, http.StatusOK, "All notifications marked as read", response.Payload{"updatedCount": count})
}

// Delete removes one notification.
func (h *NotificationHandler) Delete(c echo.Context) error {
	adminID, id, ok, err := h.ids(c)
	if !ok {
		return err
	}
	n, err := h.service.Delete(c.Request().Context(), id, adminID)
	if err != nil {
		return response.Error(c, err, "Internal server error")
	}
	return response.Success(c, http.StatusOK, "Notification deleted successfully", response.Payload{"notification": n})
}

// ids resolves the caller and the :id path param. When ok is false the
// failure response has already been written.
func (h *NotificationHandler) ids(c echo.Context) (adminID, id primitive.ObjectID, ok bool, err error) {
	adminID, err = auth.AdminIDFrom(c)
	if err != nil {
		return adminID, id, false, response.Fail(c, http.StatusUnauthorized, "Invalid or missing token")
	}
	id, err = primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return adminID, id, false, response.Error(c, apperror.Validation("Notification ID is required"), "")
	}
	return adminID, id, true, nil
}
