package meeting

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no-show"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

type Type string

const (
	TypeVideo        Type = "video"
	TypeAudio        Type = "audio"
	TypePresentation Type = "presentation"
	TypeDiscussion   Type = "discussion"
)

func (t Type) Valid() bool {
	switch t {
	case TypeVideo, TypeAudio, TypePresentation, TypeDiscussion:
		return true
	}
	return false
}

// ValidDuration reports whether minutes is one of the bookable lengths.
func ValidDuration(minutes int) bool {
	switch minutes {
	case 15, 30, 45, 60, 90, 120:
		return true
	}
	return false
}

// Meeting is a session between one admin and one lead. LeadID and AdminID
// never change after creation.
type Meeting struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LeadID        primitive.ObjectID `bson:"lead_id" json:"leadId"`
	AdminID       primitive.ObjectID `bson:"admin_id" json:"adminId"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	ScheduledDate time.Time          `bson:"scheduled_date" json:"scheduledDate"`
	ScheduledTime string             `bson:"scheduled_time" json:"scheduledTime"`
	Duration      int                `bson:"duration" json:"duration"`
	MeetingType   Type               `bson:"meeting_type" json:"meetingType"`
	JitsiRoomID   string             `bson:"jitsi_room_id" json:"jitsiRoomId"`
	MeetingLink   string             `bson:"meeting_link" json:"meetingLink"`
	Status        Status             `bson:"status" json:"status"`
	EmailSent     bool               `bson:"email_sent" json:"emailSent"`
	EmailSentAt   *time.Time         `bson:"email_sent_at" json:"emailSentAt"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

type ScheduleRequest struct {
	LeadID        string `json:"leadId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ScheduledDate string `json:"scheduledDate"`
	ScheduledTime string `json:"scheduledTime"`
	Duration      int    `json:"duration"`
	MeetingType   Type   `json:"meetingType"`
	JitsiRoomID   string `json:"jitsiRoomId"`
}

type InvitationRequest struct {
	MeetingID string `json:"meetingId"`
	LeadEmail string `json:"leadEmail"`
}

type CompleteRequest struct {
	Notes *string `json:"notes"`
}

// ListFilter narrows ListMeetings; zero values mean no filter.
type ListFilter struct {
	Status Status
	Date   *time.Time
}

type Page struct {
	Meetings    []*Meeting
	Total       int64
	TotalPages  int64
	CurrentPage int64
}

// LeadSummary is the subset of lead fields embedded in a meeting response.
type LeadSummary struct {
	ID      primitive.ObjectID `json:"id"`
	Name    string             `json:"name"`
	Email   string             `json:"email"`
	Company string             `json:"company,omitempty"`
	Phone   string             `json:"phone,omitempty"`
}
