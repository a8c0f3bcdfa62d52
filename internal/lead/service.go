package lead

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"SDRAdmin/internal/apperror"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const listLimit = 100

type leadStore interface {
	Create(ctx context.Context, l *Lead) error
	Get(ctx context.Context, id primitive.ObjectID) (*Lead, error)
	List(ctx context.Context, limit int64) ([]*Lead, error)
}

type LeadService struct {
	repo   leadStore
	logger *zap.Logger
}

// NewLeadService creates a new LeadService.
func NewLeadService(repo *LeadRepository, logger *zap.Logger) *LeadService {
	return &LeadService{repo: repo, logger: logger}
}

// Create validates req and stores the lead with status new.
func (s *LeadService) Create(ctx context.Context, req CreateRequest) (*Lead, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" {
		return nil, apperror.Validation("Name and email are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.Validation("Invalid email address")
	}

	now := time.Now()
	l := &Lead{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Email:      email,
		Phone:      strings.TrimSpace(req.Phone),
		Company:    strings.TrimSpace(req.Company),
		Role:       strings.TrimSpace(req.Role),
		Location:   strings.TrimSpace(req.Location),
		Industry:   strings.TrimSpace(req.Industry),
		Experience: strings.TrimSpace(req.Experience),
		LeadSource: strings.TrimSpace(req.LeadSource),
		Status:     StatusNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, apperror.Wrap(err, "Failed to save lead")
	}

	s.logger.Info("lead created", zap.String("lead_id", l.ID.Hex()))
	return l, nil
}

// Get returns a lead or a NotFound error.
func (s *LeadService) Get(ctx context.Context, id primitive.ObjectID) (*Lead, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to load lead")
	}
	if l == nil {
		return nil, apperror.NotFound("Lead not found")
	}
	return l, nil
}

// List returns the latest leads.
func (s *LeadService) List(ctx context.Context) ([]*Lead, error) {
	leads, err := s.repo.List(ctx, listLimit)
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to list leads")
	}
	return leads, nil
}
