package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"SDRAdmin/internal/apperror"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("Invalid Credentials")

type adminStore interface {
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Admin, error)
	CreateAdmin(ctx context.Context, admin *Admin) error
}

type AdminService struct {
	repo   adminStore
	tokens *TokenIssuer
	logger *zap.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(repo *AdminRepository, tokens *TokenIssuer, logger *zap.Logger) *AdminService {
	return newAdminService(repo, tokens, logger)
}

func newAdminService(repo adminStore, tokens *TokenIssuer, logger *zap.Logger) *AdminService {
	return &AdminService{repo: repo, tokens: tokens, logger: logger}
}

// Register validates req and stores the admin with a bcrypt hash.
func (s *AdminService) Register(ctx context.Context, req RegisterRequest) (*Admin, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperror.Validation("Name, email and password are required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, apperror.Validation("Invalid email address")
	}
	if len(req.Password) < 6 {
		return nil, apperror.Validation("Password must be at least 6 characters")
	}
	switch req.Role {
	case "":
		req.Role = RoleAdmin
	case RoleAdmin, RoleViewer:
	default:
		return nil, apperror.Validation("Role must be admin or viewer")
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to look up admin")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to hash password")
	}

	now := time.Now()
	admin := &Admin{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, err
		}
		return nil, apperror.Wrap(err, "Failed to create admin")
	}

	s.logger.Info("admin registered", zap.String("admin_id", admin.ID.Hex()), zap.String("role", admin.Role))
	return admin, nil
}

// Authenticate returns a signed token for a matching email and password.
func (s *AdminService) Authenticate(ctx context.Context, cred Credential) (string, *Admin, error) {
	admin, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(cred.Email)))
	if err != nil {
		return "", nil, apperror.Wrap(err, "Failed to look up admin")
	}
	if admin == nil || !CheckPasswordHash(cred.Password, admin.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(admin)
	if err != nil {
		return "", nil, apperror.Wrap(err, "Token not generated")
	}
	return token, admin, nil
}

// Profile returns the admin with id.
func (s *AdminService) Profile(ctx context.Context, id primitive.ObjectID) (*Admin, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to look up admin")
	}
	if admin == nil {
		return nil, apperror.NotFound("Admin not found")
	}
	return admin, nil
}
