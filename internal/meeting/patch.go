package meeting

import (
	"strings"
	"time"

	"SDRAdmin/internal/apperror"
)

// Patch is the client supplied partial update. Absent fields stay untouched;
// anything outside this set (lead, admin, room id) cannot be patched.
type Patch struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	ScheduledDate *string `json:"scheduledDate"`
	ScheduledTime *string `json:"scheduledTime"`
	Duration      *int    `json:"duration"`
	MeetingType   *Type   `json:"meetingType"`
	Status        *Status `json:"status"`
	Notes         *string `json:"notes"`
	MeetingLink   *string `json:"meetingLink"`
}

// Changes is a validated set of field assignments applied to a stored meeting.
type Changes struct {
	Title         *string
	Description   *string
	ScheduledDate *time.Time
	ScheduledTime *string
	Duration      *int
	MeetingType   *Type
	Status        *Status
	Notes         *string
	MeetingLink   *string
	EmailSent     *bool
	EmailSentAt   *time.Time
}

// Validate trims and checks every present field and returns the resulting Changes.
func (p Patch) Validate() (Changes, error) {
	var c Changes

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return Changes{}, apperror.Validation("Title cannot be empty")
		}
		c.Title = &title
	}
	if p.Description != nil {
		description := strings.TrimSpace(*p.Description)
		if description == "" {
			return Changes{}, apperror.Validation("Description cannot be empty")
		}
		c.Description = &description
	}
	if p.ScheduledDate != nil {
		date, err := ParseDate(*p.ScheduledDate)
		if err != nil {
			return Changes{}, apperror.Validation(err.Error())
		}
		c.ScheduledDate = &date
	}
	if p.ScheduledTime != nil {
		clock := strings.TrimSpace(*p.ScheduledTime)
		if _, _, err := ParseClock(clock); err != nil {
			return Changes{}, apperror.Validation(err.Error())
		}
		c.ScheduledTime = &clock
	}
	if p.Duration != nil {
		if !ValidDuration(*p.Duration) {
			return Changes{}, apperror.Validation("Duration must be one of 15, 30, 45, 60, 90, 120")
		}
		c.Duration = p.Duration
	}
	if p.MeetingType != nil {
		if !p.MeetingType.Valid() {
			return Changes{}, apperror.Validation("Invalid meeting type")
		}
		c.MeetingType = p.MeetingType
	}
	// Any enumerated status is accepted; there is no transition guard.
	if p.Status != nil {
		if !p.Status.Valid() {
			return Changes{}, apperror.Validation("Invalid meeting status")
		}
		c.Status = p.Status
	}
	if p.Notes != nil {
		notes := strings.TrimSpace(*p.Notes)
		c.Notes = &notes
	}
	if p.MeetingLink != nil {
		link := strings.TrimSpace(*p.MeetingLink)
		c.MeetingLink = &link
	}
	return c, nil
}
