package meeting

import (
	"context"
	"sort"
	"sync"
	"time"

	"SDRAdmin/internal/config"
	"SDRAdmin/internal/lead"
	"SDRAdmin/internal/notification"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryStore struct {
	mu       sync.Mutex
	meetings []Meeting
}

func (s *memoryStore) Insert(_ context.Context, m *Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.meetings {
		if existing.JitsiRoomID == m.JitsiRoomID {
			return ErrDuplicateRoom
		}
	}
	s.meetings = append(s.meetings, *m)
	return nil
}

func (s *memoryStore) index(id, adminID primitive.ObjectID) int {
	for i, m := range s.meetings {
		if m.ID == id && m.AdminID == adminID {
			return i
		}
	}
	return -1
}

func (s *memoryStore) FindOwned(_ context.Context, id, adminID primitive.ObjectID) (*Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id, adminID)
	if i < 0 {
		return nil, nil
	}
	m := s.meetings[i]
	return &m, nil
}

func (s *memoryStore) UpdateOwned(_ context.Context, id, adminID primitive.ObjectID, changes Changes, now time.Time) (*Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id, adminID)
	if i < 0 {
		return nil, nil
	}
	applyChanges(changes, &s.meetings[i], now)
	m := s.meetings[i]
	return &m, nil
}

func (s *memoryStore) DeleteOwned(_ context.Context, id, adminID primitive.ObjectID) (*Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id, adminID)
	if i < 0 {
		return nil, nil
	}
	m := s.meetings[i]
	s.meetings = append(s.meetings[:i], s.meetings[i+1:]...)
	return &m, nil
}

func (s *memoryStore) matches(q Query) []*Meeting {
	out := []*Meeting{}
	for _, m := range s.meetings {
		if m.AdminID != q.AdminID {
			continue
		}
		if len(q.Statuses) > 0 {
			found := false
			for _, st := range q.Statuses {
				if m.Status == st {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		if q.From != nil && m.ScheduledDate.Before(*q.From) {
			continue
		}
		if q.To != nil && m.ScheduledDate.After(*q.To) {
			continue
		}
		copied := m
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out
}

func (s *memoryStore) Find(_ context.Context, q Query) ([]*Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.matches(q)
	if q.Skip >= int64(len(out)) {
		return []*Meeting{}, nil
	}
	out = out[q.Skip:]
	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *memoryStore) Count(_ context.Context, q Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.matches(q))), nil
}

type memoryLeads struct {
	mu       sync.Mutex
	leads    map[primitive.ObjectID]lead.Lead
	writeErr error
}

func newMemoryLeads(leads ...lead.Lead) *memoryLeads {
	m := &memoryLeads{leads: make(map[primitive.ObjectID]lead.Lead)}
	for _, l := range leads {
		m.leads[l.ID] = l
	}
	return m
}

func (m *memoryLeads) Get(_ context.Context, id primitive.ObjectID) (*lead.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leads[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (m *memoryLeads) SetMeetingState(_ context.Context, id primitive.ObjectID, state lead.MeetingState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	l, ok := m.leads[id]
	if !ok {
		return lead.ErrLeadNotFound
	}
	l.Status = state.Status
	l.ReadyToMeet = state.ReadyToMeet
	l.MeetingDate = state.MeetingDate
	m.leads[id] = l
	return nil
}

func (m *memoryLeads) SetStatus(_ context.Context, id primitive.ObjectID, status lead.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	l, ok := m.leads[id]
	if !ok {
		return lead.ErrLeadNotFound
	}
	l.Status = status
	m.leads[id] = l
	return nil
}

func (m *memoryLeads) lead(id primitive.ObjectID) lead.Lead {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leads[id]
}

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Emit(ctx context.Context, adminID primitive.ObjectID, typ notification.Type, title, message string, data map[string]any) (*notification.Notification, error) {
	args := m.Called(ctx, adminID, typ, title, message, data)
	n, _ := args.Get(0).(*notification.Notification)
	return n, args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendEmail(ctx context.Context, msg config.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// applyChanges mirrors Changes.document for the in-memory store.
func applyChanges(c Changes, m *Meeting, now time.Time) {
	if c.Title != nil {
		m.Title = *c.Title
	}
	if c.Description != nil {
		m.Description = *c.Description
	}
	if c.ScheduledDate != nil {
		m.ScheduledDate = *c.ScheduledDate
	}
	if c.ScheduledTime != nil {
		m.ScheduledTime = *c.ScheduledTime
	}
	if c.Duration != nil {
		m.Duration = *c.Duration
	}
	if c.MeetingType != nil {
		m.MeetingType = *c.MeetingType
	}
	if c.Status != nil {
		m.Status = *c.Status
	}
	if c.Notes != nil {
		m.Notes = *c.Notes
	}
	if c.MeetingLink != nil {
		m.MeetingLink = *c.MeetingLink
	}
	if c.EmailSent != nil {
		m.EmailSent = *c.EmailSent
	}
	if c.EmailSentAt != nil {
		sentAt := *c.EmailSentAt
		m.EmailSentAt = &sentAt
	}
	m.UpdatedAt = now
}
