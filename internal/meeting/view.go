package meeting

import (
	"time"

	"SDRAdmin/internal/lead"
)

// View is the JSON shape of a meeting: stored fields plus values derived at read time.
type View struct {
	*Meeting
	FullMeetingDate  *time.Time   `json:"fullMeetingDate"`
	EndTime          *time.Time   `json:"endTime"`
	TimeUntilMeeting *int64       `json:"timeUntilMeeting"` // milliseconds, negative once started
	IsUpcoming       bool         `json:"isUpcoming"`
	IsToday          bool         `json:"isToday"`
	IsInProgress     bool         `json:"isInProgress"`
	IsOverdue        bool         `json:"isOverdue"`
	Lead             *LeadSummary `json:"lead,omitempty"`
}

// NewView computes the derived fields of m at now.
func NewView(m *Meeting, now time.Time) View {
	v := View{
		Meeting:      m,
		IsUpcoming:   m.IsUpcoming(now),
		IsToday:      m.IsToday(now),
		IsInProgress: m.IsInProgress(now),
		IsOverdue:    m.IsOverdue(now),
	}
	if start, ok := m.FullMeetingDate(); ok {
		v.FullMeetingDate = &start
		until := start.Sub(now).Milliseconds()
		v.TimeUntilMeeting = &until
	}
	if end, ok := m.EndTime(); ok {
		v.EndTime = &end
	}
	return v
}

// NewViews maps NewView over meetings.
func NewViews(meetings []*Meeting, now time.Time) []View {
	views := make([]View, 0, len(meetings))
	for _, m := range meetings {
		views = append(views, NewView(m, now))
	}
	return views
}

// WithLead embeds a summary of l; a nil lead leaves the view unchanged.
func (v View) WithLead(l *lead.Lead) View {
	if l != nil {
		v.Lead = &LeadSummary{ID: l.ID, Name: l.Name, Email: l.Email, Company: l.Company, Phone: l.Phone}
	}
	return v
}
