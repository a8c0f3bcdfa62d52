package meeting

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strings"
	"time"

	"SDRAdmin/internal/apperror"
	"SDRAdmin/internal/config"
	"SDRAdmin/internal/lead"
	"SDRAdmin/internal/notification"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	DefaultPageSize      = 10
	DefaultUpcomingLimit = 5

	// subjectLimit caps a title or lead name quoted inside a notification message.
	subjectLimit = 100
)

// Store persists meetings. Lookups and writes are scoped to the owning admin
// and return nil, nil when nothing matches.
type Store interface {
	Insert(ctx context.Context, m *Meeting) error
	FindOwned(ctx context.Context, id, adminID primitive.ObjectID) (*Meeting, error)
	UpdateOwned(ctx context.Context, id, adminID primitive.ObjectID, changes Changes, now time.Time) (*Meeting, error)
	DeleteOwned(ctx context.Context, id, adminID primitive.ObjectID) (*Meeting, error)
	Find(ctx context.Context, q Query) ([]*Meeting, error)
	Count(ctx context.Context, q Query) (int64, error)
}

// LeadRegister holds the pipeline fields a meeting drives on its lead.
// Get returns nil, nil for an unknown lead.
type LeadRegister interface {
	Get(ctx context.Context, id primitive.ObjectID) (*lead.Lead, error)
	SetMeetingState(ctx context.Context, id primitive.ObjectID, state lead.MeetingState) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status lead.Status) error
}

// NotificationSink records admin notifications raised by meeting changes.
type NotificationSink interface {
	Emit(ctx context.Context, adminID primitive.ObjectID, typ notification.Type, title, message string, data map[string]any) (*notification.Notification, error)
}

// Mailer delivers rendered invitations.
type Mailer interface {
	SendEmail(ctx context.Context, msg config.EmailMessage) error
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// Coordinator runs the meeting lifecycle. Each operation is a sequence of
// independent writes (meeting, then lead, then notification); a failing step
// is reported as is and earlier steps are not rolled back.
type Coordinator struct {
	store       Store
	leads       LeadRegister
	sink        NotificationSink
	mailer      Mailer
	roomBaseURL string
	team        string
	now         func() time.Time
	logger      *zap.Logger
}

// New creates a Coordinator over the given collaborators.
func New(store Store, leads LeadRegister, sink NotificationSink, mailer Mailer, roomBaseURL, team string, logger *zap.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:       store,
		leads:       leads,
		sink:        sink,
		mailer:      mailer,
		roomBaseURL: strings.TrimRight(roomBaseURL, "/"),
		team:        team,
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewCoordinator creates the Coordinator backed by the Mongo repositories.
func NewCoordinator(
	store *MeetingRepository,
	leads *lead.LeadRepository,
	sink *notification.NotificationService,
	mailer *config.EmailService,
	cfg *config.Config,
	logger *zap.Logger,
) *Coordinator {
	return New(store, leads, sink, mailer, cfg.MeetingRoomBaseURL, cfg.Mail.AppName, logger.Named("meeting"))
}

// Now is the coordinator's clock, shared with the HTTP layer for derived fields.
func (c *Coordinator) Now() time.Time {
	return c.now()
}

// RoomLink is the joinable URL of a room id.
func (c *Coordinator) RoomLink(roomID string) string {
	return c.roomBaseURL + "/" + roomID
}

// Schedule stores a new meeting, moves its lead to the meeting stage and notifies the admin.
func (c *Coordinator) Schedule(ctx context.Context, adminID primitive.ObjectID, req ScheduleRequest) (*Meeting, error) {
	m, err := c.newMeeting(adminID, req)
	if err != nil {
		return nil, err
	}

	l, err := c.leads.Get(ctx, m.LeadID)
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to load lead")
	}
	if l == nil {
		return nil, apperror.NotFound("Lead not found")
	}

	if err := c.store.Insert(ctx, m); err != nil {
		if errors.Is(err, ErrDuplicateRoom) {
			return nil, apperror.Validation("Jitsi room id is already in use")
		}
		return nil, apperror.Wrap(err, "Failed to save meeting")
	}

	meetingDate := m.ScheduledDate
	state := lead.MeetingState{Status: lead.StatusMeeting, ReadyToMeet: true, MeetingDate: &meetingDate}
	if err := c.leads.SetMeetingState(ctx, m.LeadID, state); err != nil {
		return nil, apperror.Wrap(err, "Failed to update lead")
	}

	_, err = c.sink.Emit(ctx, adminID, notification.TypeMeetingScheduled,
		"New Meeting Scheduled",
		fmt.Sprintf("Meeting scheduled with %s on %s", excerpt(l.Name), m.ScheduledDate.In(time.Local).Format("1/2/2006")),
		map[string]any{"meetingId": m.ID.Hex(), "leadId": m.LeadID.Hex()},
	)
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to create notification")
	}

	c.logger.Info("meeting scheduled", c.fields(m)...)
	return m, nil
}

func (c *Coordinator) newMeeting(adminID primitive.ObjectID, req ScheduleRequest) (*Meeting, error) {
	leadID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.LeadID))
	if err != nil {
		return nil, apperror.Validation("Invalid lead id")
	}
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	roomID := strings.TrimSpace(req.JitsiRoomID)
	clock := strings.TrimSpace(req.ScheduledTime)

	switch {
	case title == "":
		return nil, apperror.Validation("Title is required")
	case description == "":
		return nil, apperror.Validation("Description is required")
	case roomID == "":
		return nil, apperror.Validation("Jitsi room id is required")
	case strings.TrimSpace(req.ScheduledDate) == "":
		return nil, apperror.Validation("Scheduled date is required")
	case clock == "":
		return nil, apperror.Validation("Scheduled time is required")
	case !ValidDuration(req.Duration):
		return nil, apperror.Validation("Duration must be one of 15, 30, 45, 60, 90, 120")
	case !req.MeetingType.Valid():
		return nil, apperror.Validation("Invalid meeting type")
	}

	date, err := ParseDate(req.ScheduledDate)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if _, _, err := ParseClock(clock); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	now := c.now()
	return &Meeting{
		ID:            primitive.NewObjectID(),
		LeadID:        leadID,
		AdminID:       adminID,
		Title:         title,
		Description:   description,
		ScheduledDate: date,
		ScheduledTime: clock,
		Duration:      req.Duration,
		MeetingType:   req.MeetingType,
		JitsiRoomID:   roomID,
		MeetingLink:   c.RoomLink(roomID),
		Status:        StatusScheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Update applies patch to an owned meeting. The room link is left as stored.
func (c *Coordinator) Update(ctx context.Context, id, adminID primitive.ObjectID, patch Patch) (*Meeting, error) {
	changes, err := patch.Validate()
	if err != nil {
		return nil, err
	}

	m, err := c.store.UpdateOwned(ctx, id, adminID, changes, c.now())
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to update meeting")
	}
	if m == nil {
		return nil, apperror.NotFound("Meeting not found")
	}

	_, err = c.sink.Emit(ctx, adminID, notification.TypeMeetingUpdated,
		"Meeting Updated",
		fmt.Sprintf("Meeting \"%s\" has been updated", excerpt(m.Title)),
		map[string]any{"meetingId": m.ID.Hex()},
	)
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to create notification")
	}

	c.logger.Info("meeting updated", c.fields(m)...)
	return m, nil
}

// Delete removes an owned meeting and sends its lead back to follow-up.
func (c *Coordinator) Delete(ctx context.Context, id, adminID primitive.ObjectID) error {
	m, err := c.store.DeleteOwned(ctx, id, adminID)
	if err != nil {
		return apperror.Wrap(err, "Failed to delete meeting")
	}
	if m == nil {
		return apperror.NotFound("Meeting not found")
	}

	state := lead.MeetingState{Status: lead.StatusFollowUp, ReadyToMeet: false, MeetingDate: nil}
	if err := c.leads.SetMeetingState(ctx, m.LeadID, state); err != nil {
		if !errors.Is(err, lead.ErrLeadNotFound) {
			return apperror.Wrap(err, "Failed to update lead")
		}
		c.logger.Warn("lead of deleted meeting no longer exists", c.fields(m)...)
	}

	_, err = c.sink.Emit(ctx, adminID, notification.TypeMeetingDeleted,
		"Meeting Deleted",
		fmt.Sprintf("Meeting \"%s\" has been deleted", excerpt(m.Title)),
		map[string]any{"leadId": m.LeadID.Hex()},
	)
	if err != nil {
		return apperror.Wrap(err, "Failed to create notification")
	}

	c.logger.Info("meeting deleted", c.fields(m)...)
	return nil
}

// SendInvitation emails the meeting details to leadEmail. Tracking fields are
// only written after the mailer reports success.
func (c *Coordinator) SendInvitation(ctx context.Context, id, adminID primitive.ObjectID, leadEmail string) error {
	m, err := c.store.FindOwned(ctx, id, adminID)
	if err != nil {
		return apperror.Wrap(err, "Failed to load meeting")
	}
	if m == nil {
		return apperror.NotFound("Meeting not found")
	}

	leadEmail = strings.TrimSpace(leadEmail)
	if leadEmail == "" {
		return apperror.Validation("Lead email is required")
	}
	if _, err := mail.ParseAddress(leadEmail); err != nil {
		return apperror.Validation("Invalid lead email")
	}

	l, err := c.leads.Get(ctx, m.LeadID)
	if err != nil {
		return apperror.Wrap(err, "Failed to load lead")
	}

	link := m.MeetingLink
	if link == "" {
		link = c.RoomLink(m.JitsiRoomID)
	}
	msg, err := RenderInvitation(leadEmail, m, l, link, c.team)
	if err != nil {
		return apperror.Wrap(err, "Failed to render invitation")
	}
	if err := c.mailer.SendEmail(ctx, msg); err != nil {
		return apperror.Dispatch(err)
	}

	now := c.now()
	sent := true
	recorded, err := c.store.UpdateOwned(ctx, id, adminID, Changes{EmailSent: &sent, EmailSentAt: &now}, now)
	if err != nil {
		return apperror.Wrap(err, "Failed to record invitation")
	}
	if recorded == nil {
		c.logger.Warn("meeting removed before invitation was recorded", c.fields(m)...)
		return apperror.NotFound("Meeting not found")
	}

	c.logger.Info("meeting invitation sent", c.fields(m)...)
	return nil
}

// Join moves an owned meeting to in-progress once its start time has been reached.
// Joining after the meeting ended is allowed.
func (c *Coordinator) Join(ctx context.Context, id, adminID primitive.ObjectID) (*Meeting, error) {
	m, err := c.store.FindOwned(ctx, id, adminID)
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to load meeting")
	}
	if m == nil {
		return nil, apperror.NotFound("Meeting not found")
	}

	start, ok := m.FullMeetingDate()
	if !ok {
		return nil, apperror.Validation("Meeting has an invalid scheduled time")
	}
	now := c.now()
	if now.Before(start) {
		return nil, apperror.TooEarly("Meeting has not started yet")
	}

	status := StatusInProgress
	updated, err := c.store.UpdateOwned(ctx, id, adminID, Changes{Status: &status}, now)
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to join meeting")
	}
	if updated == nil {
		return nil, apperror.NotFound("Meeting not found")
	}

	c.logger.Info("meeting joined", c.fields(updated)...)
	return updated, nil
}

// Complete closes an owned meeting and its lead. Empty notes keep the stored notes.
// No notification is emitted.
func (c *Coordinator) Complete(ctx context.Context, id, adminID primitive.ObjectID, notes *string) (*Meeting, error) {
	m, err := c.store.FindOwned(ctx, id, adminID)
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to load meeting")
	}
	if m == nil {
		return nil, apperror.NotFound("Meeting not found")
	}

	status := StatusCompleted
	changes := Changes{Status: &status}
	if notes != nil && strings.TrimSpace(*notes) != "" {
		trimmed := strings.TrimSpace(*notes)
		changes.Notes = &trimmed
	}
	updated, err := c.store.UpdateOwned(ctx, id, adminID, changes, c.now())
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to complete meeting")
	}
	if updated == nil {
		return nil, apperror.NotFound("Meeting not found")
	}

	if err := c.leads.SetStatus(ctx, updated.LeadID, lead.StatusClosed); err != nil {
		if !errors.Is(err, lead.ErrLeadNotFound) {
			return nil, apperror.Wrap(err, "Failed to update lead")
		}
		c.logger.Warn("lead of completed meeting no longer exists", c.fields(updated)...)
	}

	c.logger.Info("meeting completed", c.fields(updated)...)
	return updated, nil
}

// Get returns an owned meeting together with its lead, which may be nil.
func (c *Coordinator) Get(ctx context.Context, id, adminID primitive.ObjectID) (*Meeting, *lead.Lead, error) {
	m, err := c.store.FindOwned(ctx, id, adminID)
	if err != nil {
		return nil, nil, apperror.Wrap(err, "Failed to fetch meeting")
	}
	if m == nil {
		return nil, nil, apperror.NotFound("Meeting not found")
	}
	l, err := c.leads.Get(ctx, m.LeadID)
	if err != nil {
		return nil, nil, apperror.Wrap(err, "Failed to fetch lead")
	}
	return m, l, nil
}

// List pages through an admin's meetings, 1-based.
func (c *Coordinator) List(ctx context.Context, adminID primitive.ObjectID, filter ListFilter, page, limit int64) (*Page, error) {
	if page < 1 || limit < 1 {
		return nil, apperror.Validation("Page and limit must be positive")
	}
	q := Query{AdminID: adminID}
	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, apperror.Validation("Invalid meeting status")
		}
		q.Statuses = []Status{filter.Status}
	}
	if filter.Date != nil {
		start, end := DayBounds(*filter.Date)
		q.From, q.To = &start, &end
	}

	total, err := c.store.Count(ctx, q)
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to fetch meetings")
	}
	result := &Page{
		Meetings:    []*Meeting{},
		Total:       total,
		TotalPages:  int64(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
	}
	// Past the last page: (page-1)*limit would only skip everything, or overflow.
	if page > result.TotalPages {
		return result, nil
	}

	q.Skip = (page - 1) * limit
	q.Limit = limit
	result.Meetings, err = c.store.Find(ctx, q)
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to fetch meetings")
	}
	return result, nil
}

// Upcoming lists scheduled or confirmed meetings whose date is not in the past.
func (c *Coordinator) Upcoming(ctx context.Context, adminID primitive.ObjectID, limit int64) ([]*Meeting, error) {
	if limit < 1 {
		return nil, apperror.Validation("Limit must be positive")
	}
	now := c.now()
	meetings, err := c.store.Find(ctx, Query{
		AdminID:  adminID,
		Statuses: []Status{StatusScheduled, StatusConfirmed},
		From:     &now,
		Limit:    limit,
	})
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to fetch upcoming meetings")
	}
	return meetings, nil
}

// Today lists the admin's scheduled or confirmed meetings dated today.
func (c *Coordinator) Today(ctx context.Context, adminID primitive.ObjectID) ([]*Meeting, error) {
	start, end := DayBounds(c.now())
	meetings, err := c.store.Find(ctx, Query{
		AdminID:  adminID,
		Statuses: []Status{StatusScheduled, StatusConfirmed},
		From:     &start,
		To:       &end,
	})
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to fetch today's meetings")
	}
	return meetings, nil
}

func (c *Coordinator) fields(m *Meeting) []zap.Field {
	return []zap.Field{
		zap.String("meeting_id", m.ID.Hex()),
		zap.String("lead_id", m.LeadID.Hex()),
		zap.String("admin_id", m.AdminID.Hex()),
	}
}

// excerpt shortens s to subjectLimit runes so generated notification messages
// stay within the sink's length limit whatever the stored title holds.
func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= subjectLimit {
		return s
	}
	return string(runes[:subjectLimit-1]) + "…"
}
