package notification

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Type string

const (
	TypeLead             Type = "lead"
	TypeMeeting          Type = "meeting"
	TypeEmail            Type = "email"
	TypePhone            Type = "phone"
	TypeSystem           Type = "system"
	TypeWarning          Type = "warning"
	TypeSuccess          Type = "success"
	TypeMeetingScheduled Type = "meeting_scheduled"
	TypeMeetingUpdated   Type = "meeting_updated"
	TypeMeetingDeleted   Type = "meeting_deleted"
)

func (t Type) Valid() bool {
	switch t {
	case TypeLead, TypeMeeting, TypeEmail, TypePhone, TypeSystem, TypeWarning, TypeSuccess,
		TypeMeetingScheduled, TypeMeetingUpdated, TypeMeetingDeleted:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Length limits enforced on created notifications, in runes.
const (
	MaxTitleLength   = 100
	MaxMessageLength = 500
)

// Notification is an in-app message addressed to a single admin.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdminID   primitive.ObjectID `bson:"admin_id" json:"adminId"`
	Type      Type               `bson:"type" json:"type"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Data      map[string]any     `bson:"data" json:"data"`
	Read      bool               `bson:"read" json:"read"`
	Priority  Priority           `bson:"priority" json:"priority"`
	ExpiresAt *time.Time         `bson:"expires_at" json:"expiresAt"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// MarshalJSON adds the relative "timeAgo" label shown by the console.
func (n Notification) MarshalJSON() ([]byte, error) {
	type plain Notification
	return json.Marshal(struct {
		plain
		TimeAgo string `json:"timeAgo"`
	}{plain: plain(n), TimeAgo: TimeAgo(n.CreatedAt, time.Now())})
}

func TimeAgo(createdAt, now time.Time) string {
	diff := now.Sub(createdAt)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}

type CreateRequest struct {
	Type      Type           `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`
	Priority  Priority       `json:"priority"`
	ExpiresAt *time.Time     `json:"expiresAt"`
}
