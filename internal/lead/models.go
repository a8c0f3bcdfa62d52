package lead

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusFollowUp  Status = "follow-up"
	StatusMeeting   Status = "meeting"
	StatusClosed    Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusFollowUp, StatusMeeting, StatusClosed:
		return true
	}
	return false
}

type Lead struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Company     string             `bson:"company,omitempty" json:"company,omitempty"`
	Role        string             `bson:"role,omitempty" json:"role,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Industry    string             `bson:"industry,omitempty" json:"industry,omitempty"`
	Experience  string             `bson:"experience,omitempty" json:"experience,omitempty"`
	LeadSource  string             `bson:"lead_source,omitempty" json:"leadSource,omitempty"`
	Status      Status             `bson:"status" json:"status"`
	ReadyToMeet bool               `bson:"ready_to_meet" json:"readyToMeet"`
	MeetingDate *time.Time         `bson:"meeting_date" json:"meetingDate"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// MeetingState is the set of lead fields mirrored from its active meeting.
type MeetingState struct {
	Status      Status
	ReadyToMeet bool
	MeetingDate *time.Time
}

type CreateRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Role       string `json:"role"`
	Location   string `json:"location"`
	Industry   string `json:"industry"`
	Experience string `json:"experience"`
	LeadSource string `json:"leadSource"`
}
