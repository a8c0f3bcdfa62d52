package meeting

import (
	"net/http"
	"strconv"

	"SDRAdmin/internal/apperror"
	"SDRAdmin/internal/auth"
	"SDRAdmin/pkg/middleware"
	"SDRAdmin/pkg/response"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const maxPageSize = 100

type MeetingHandler struct {
	coordinator *Coordinator
	logger      *zap.Logger
}

// NewMeetingHandler creates a new MeetingHandler.
func NewMeetingHandler(coordinator *Coordinator, logger *zap.Logger) *MeetingHandler {
	return &MeetingHandler{coordinator: coordinator, logger: logger}
}

// Schedule books a meeting with a lead for the calling admin.
func (h *MeetingHandler) Schedule(c echo.Context) error {
	adminID, ok, err := h.admin(c)
	if !ok {
		return err
	}
	var req ScheduleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, apperror.Validation("Invalid request"), "")
	}

	m, err := h.coordinator.Schedule(c.Request().Context(), adminID, req)
	if err != nil {
		return h.fail(c, "schedule", err, "Failed to schedule meeting")
	}
	middleware.RecordMeetingOperation("schedule", "ok")
	return response.Success(c, http.StatusCreated, "Meeting scheduled successfully",
		response.Payload{"meeting": NewView(m, h.coordinator.Now())})
}

// List pages through the admin's meetings, optionally filtered by status and day.
func (h *MeetingHandler) List(c echo.Context) error {
	adminID, ok, err := h.admin(c)
	if !ok {
		return err
	}
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return response.Error(c, err, "")
	}
	limit, err := queryInt(c, "limit", DefaultPageSize)
	if err != nil {
		return response.Error(c, err, "")
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := ListFilter{Status: Status(c.QueryParam("status"))}
	if raw := c.QueryParam("date"); raw != "" {
		date, err := ParseDate(raw)
		if err != nil {
			return response.Error(c, apperror.Validation(err.Error()), "")
		}
		filter.Date = &date
	}

	result, err := h.coordinator.List(c.Request().Context(), adminID, filter, page, limit)
	if err != nil {
		return h.fail(c, "list", err, "Failed to fetch meetings")
	}
	return response.Success(c, http.StatusOK, "", response.Payload{
		"meetings":    NewViews(result.Meetings, h.coordinator.Now()),
		"totalPages":  result.TotalPages,
		"currentPage": result.CurrentPage,
		"total":       result.Total,
	})
}

// Upcoming returns the next scheduled or confirmed meetings.
func (h *MeetingHandler) Upcoming(c echo.Context) error {
	adminID, ok, err := h.admin(c)
	if !ok {
		return err
	}
	limit, err := queryInt(c, "limit", DefaultUpcomingLimit)
	if err != nil {
		return response.Error(c, err, "")
	}
	meetings, err := h.coordinator.Upcoming(c.Request().Context(), adminID, limit)
	if err != nil {
		return h.fail(c, "upcoming", err, "Failed to fetch upcoming meetings")
	}
	return response.Success(c, http.StatusOK, "", response.Payload{"meetings": NewViews(meetings, h.coordinator.Now())})
}

// Today returns the meetings dated today.
func (h *MeetingHandler) Today(c echo.Context) error {
	adminID, ok, err := h.admin(c)
	if !ok {
		return err
	}
	meetings, err := h.coordinator.Today(c.Request().Context(), adminID)
	if err != nil {
		return h.fail(c, "today", err, "Failed to fetch today's meetings")
	}
	return response.Success(c, http.StatusOK, "", response.Payload{"meetings": NewViews(meetings, h.coordinator.Now())})
}

// Get returns one meeting with its lead summary.
func (h *MeetingHandler) Get(c echo.Context) error {
	adminID, id, ok, err := h.target(c)
	if !ok {
		return err
	}
	m, l, err := h.coordinator.Get(c.Request().Context(), id, adminID)
	if err != nil {
		return h.fail(c, "get", err, "Failed to fetch meeting")
	}
	return response.Success(c, http.StatusOK, "", response.Payload{"meeting": NewView(m, h.coordinator.Now()).WithLead(l)})
}

// Update applies a partial update to a meeting.
func (h *MeetingHandler) Update(c echo.Context) error {
	adminID, id, ok, err := h.target(c)
	if !ok {
		return err
	}
	var patch Patch
	if err := c.Bind(&patch); err != nil {
		return response.Error(c, apperror.Validation("Invalid request"), "")
	}

	m, err := h.coordinator.Update(c.Request().Context(), id, adminID, patch)
	if err != nil {
		return h.fail(c, "update", err, "Failed to update meeting")
	}
	middleware.RecordMeetingOperation("update", "ok")
	return response.Success(c, http.StatusOK, "Meeting updated successfully",
		response.Payload{"meeting": NewView(m, h.coordinator.Now())})
}

// Delete removes a meeting and reverts its lead to follow-up.
func (h *MeetingHandler) Delete(c echo.Context) error {
	adminID, id, ok, err := h.target(c)
	if !ok {
		return err
	}
	if err := h.coordinator.Delete(c.Request().Context(), id, adminID); err != nil {
		return h.fail(c, "delete", err, "Failed to delete meeting")
	}
	middleware.RecordMeetingOperation("delete", "ok")
	return response.Success(c, http.StatusOK, "Meeting deleted successfully", nil)
}

// SendInvitation emails the meeting invitation to the lead.
func (h *MeetingHandler) SendInvitation(c echo.Context) error {
	adminID, ok, err := h.admin(c)
	if !ok {
		return err
	}
	var req InvitationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, apperror.Validation("Invalid request"), "")
	}
	id, err := primitive.ObjectIDFromHex(req.MeetingID)
	if err != nil {
		return response.Error(c, apperror.Validation("Invalid meeting id"), "")
	}

	if err := h.coordinator.SendInvitation(c.Request().Context(), id, adminID, req.LeadEmail); err != nil {
		middleware.RecordInvitation(apperror.KindOf(err).String())
		return h.fail(c, "send_invitation", err, "Failed to send meeting invitation")
	}
	middleware.RecordInvitation("ok")
	middleware.RecordMeetingOperation("send_invitation", "ok")
	return response.Success(c, http.StatusOK, "Meeting invitation sent successfully", nil)
}

// Join marks a started meeting as in progress.
func (h *MeetingHandler) Join(c echo.Context) error {
	adminID, id, ok, err := h.target(c)
	if !ok {
		return err
	}
	m, err := h.coordinator.Join(c.Request().Context(), id, adminID)
	if err != nil {
		return h.fail(c, "join", err, "Failed to join meeting")
	}
	middleware.RecordMeetingOperation("join", "ok")
	return response.Success(c, http.StatusOK, "Meeting joined successfully",
		response.Payload{"meeting": NewView(m, h.coordinator.Now())})
}

// Complete closes a meeting and its lead.
func (h *MeetingHandler) Complete(c echo.Context) error {
	adminID, id, ok, err := h.target(c)
	if !ok {
		return err
	}
	var req CompleteRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, apperror.Validation("Invalid request"), "")
	}

	m, err := h.coordinator.Complete(c.Request().Context(), id, adminID, req.Notes)
	if err != nil {
		return h.fail(c, "complete", err, "Failed to complete meeting")
	}
	middleware.RecordMeetingOperation("complete", "ok")
	return response.Success(c, http.StatusOK, "Meeting completed successfully",
		response.Payload{"meeting": NewView(m, h.coordinator.Now())})
}

func (h *MeetingHandler) fail(c echo.Context, operation string, err error, fallback string) error {
	kind := apperror.KindOf(err)
	middleware.RecordMeetingOperation(operation, kind.String())
	if response.StatusOf(err) >= http.StatusInternalServerError {
		h.logger.Error("meeting operation failed", zap.String("operation", operation), zap.Error(err))
	}
	return response.Error(c, err, fallback)
}

// admin resolves the caller. When ok is false the response has been written.
func (h *MeetingHandler) admin(c echo.Context) (primitive.ObjectID, bool, error) {
	adminID, err := auth.AdminIDFrom(c)
	if err != nil {
		return primitive.NilObjectID, false, response.Fail(c, http.StatusUnauthorized, "Invalid or missing token")
	}
	return adminID, true, nil
}

func (h *MeetingHandler) target(c echo.Context) (adminID, id primitive.ObjectID, ok bool, err error) {
	adminID, ok, err = h.admin(c)
	if !ok {
		return adminID, id, false, err
	}
	id, err = primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return adminID, id, false, response.Error(c, apperror.Validation("Invalid meeting id"), "")
	}
	return adminID, id, true, nil
}

func queryInt(c echo.Context, name string, fallback int64) (int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 1 {
		return 0, apperror.Validation(name + " must be a positive integer")
	}
	return v, nil
}
