package notification

import (
	"context"
	"strings"
	"time"

	"SDRAdmin/internal/apperror"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// listLimit caps the admin feed to the latest entries.
const listLimit = 50

type notificationStore interface {
	Insert(ctx context.Context, n *Notification) error
	ListByAdmin(ctx context.Context, adminID primitive.ObjectID, limit int64) ([]*Notification, error)
	MarkRead(ctx context.Context, id, adminID primitive.ObjectID) (*Notification, error)
	MarkAllRead(ctx context.Context, adminID primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id, adminID primitive.ObjectID) (*Notification, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type NotificationService struct {
	repo   notificationStore
	logger *zap.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo *NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// Emit stores a notification for adminID and returns any storage error to the caller.
func (s *NotificationService) Emit(ctx context.Context, adminID primitive.ObjectID, typ Type, title, message string, data map[string]any) (*Notification, error) {
	return s.create(ctx, adminID, CreateRequest{Type: typ, Title: title, Message: message, Data: data})
}

// Notify is the best effort variant of Emit: failures are logged and dropped.
func (s *NotificationService) Notify(ctx context.Context, adminID primitive.ObjectID, typ Type, title, message string, data map[string]any) *Notification {
	n, err := s.Emit(ctx, adminID, typ, title, message, data)
	if err != nil {
		s.logger.Error("notification not created",
			zap.String("admin_id", adminID.Hex()),
			zap.String("type", string(typ)),
			zap.Error(err))
		return nil
	}
	return n
}

// Create validates req and stores the notification.
func (s *NotificationService) Create(ctx context.Context, adminID primitive.ObjectID, req CreateRequest) (*Notification, error) {
	return s.create(ctx, adminID, req)
}

func (s *NotificationService) create(ctx context.Context, adminID primitive.ObjectID, req CreateRequest) (*Notification, error) {
	title := strings.TrimSpace(req.Title)
	message := strings.TrimSpace(req.Message)
	if req.Type == "" || title == "" || message == "" {
		return nil, apperror.Validation("Type, title, and message are required")
	}
	if !req.Type.Valid() {
		return nil, apperror.Validation("Invalid notification type")
	}
	if len([]rune(title)) > MaxTitleLength {
		return nil, apperror.Validation("Title must be at most 100 characters")
	}
	if len([]rune(message)) > MaxMessageLength {
		return nil, apperror.Validation("Message must be at most 500 characters")
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, apperror.Validation("Invalid notification priority")
	}
	data := req.Data
	if data == nil {
		data = map[string]any{}
	}

	now := time.Now()
	n := &Notification{
		ID:        primitive.NewObjectID(),
		AdminID:   adminID,
		Type:      req.Type,
		Title:     title,
		Message:   message,
		Data:      data,
		Priority:  priority,
		ExpiresAt: req.ExpiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		return nil, apperror.Wrap(err, "Failed to create notification")
	}
	return n, nil
}

// List fetches the admin's latest notifications, newest first.
func (s *NotificationService) List(ctx context.Context, adminID primitive.ObjectID) ([]*Notification, error) {
	notifications, err := s.repo.ListByAdmin(ctx, adminID, listLimit)
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to fetch notifications")
	}
	return notifications, nil
}

// MarkRead flags an owned notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id, adminID primitive.ObjectID) (*Notification, error) {
	n, err := s.repo.MarkRead(ctx, id, adminID)
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to update notification")
	}
	if n == nil {
		return nil, apperror.NotFound("Notification not found")
	}
	return n, nil
}

// MarkAllRead flags all of the admin's unread notifications and returns how many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, adminID primitive.ObjectID) (int64, error) {
	count, err := s.repo.MarkAllRead(ctx, adminID)
	if err != nil {
		return 0, apperror.Wrap(err, "Failed to update notifications")
	}
	return count, nil
}

// Delete removes an owned notification.
func (s *NotificationService) Delete(ctx context.Context, id, adminID primitive.ObjectID) (*Notification, error) {
	n, err := s.repo.Delete(ctx, id, adminID)
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to delete notification")
	}
	if n == nil {
		return nil, apperror.NotFound("Notification not found")
	}
	return n, nil
}

// PurgeExpired removes every notification whose expiry is at or before now.
func (s *NotificationService) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.DeleteExpired(ctx, now)
}
