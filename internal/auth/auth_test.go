package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"SDRAdmin/internal/apperror"
	"SDRAdmin/internal/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memoryAdminStore struct {
	mu     sync.Mutex
	admins map[primitive.ObjectID]*Admin
}

func newMemoryAdminStore() *memoryAdminStore {
	return &memoryAdminStore{admins: make(map[primitive.ObjectID]*Admin)}
}

func (m *memoryAdminStore) FindByEmail(_ context.Context, email string) (*Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryAdminStore) FindByID(_ context.Context, id primitive.ObjectID) (*Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.admins[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (m *memoryAdminStore) CreateAdmin(_ context.Context, admin *Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Email == admin.Email {
			return ErrEmailTaken
		}
	}
	copied := *admin
	m.admins[admin.ID] = &copied
	return nil
}

func newTestService() (*AdminService, *TokenIssuer) {
	issuer := NewTokenIssuer(&config.Config{JWTKey: "test-secret", JWTTTL: time.Hour})
	return newAdminService(newMemoryAdminStore(), issuer, zap.NewNop()), issuer
}

func TestRegisterAndAuthenticate(t *testing.T) {
	service, issuer := newTestService()
	ctx := context.Background()

	admin, err := service.Register(ctx, RegisterRequest{Name: "Ada", Email: " Ada@Example.com ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", admin.Email)
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.NotEqual(t, "secret123", admin.PasswordHash)

	token, logged, err := service.Authenticate(ctx, Credential{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, logged.ID)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID.Hex(), claims.AdminID)
	assert.Equal(t, RoleAdmin, claims.Role)

	_, _, err = service.Authenticate(ctx, Credential{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = service.Authenticate(ctx, Credential{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing name", RegisterRequest{Email: "a@example.com", Password: "secret123"}},
		{"bad email", RegisterRequest{Name: "A", Email: "not-an-email", Password: "secret123"}},
		{"short password", RegisterRequest{Name: "A", Email: "a@example.com", Password: "123"}},
		{"unknown role", RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret123", Role: "root"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(ctx, tt.req)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)
	_, err = service.Register(ctx, RegisterRequest{Name: "B", Email: "a@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestTokenIssuerRejectsForeignKey(t *testing.T) {
	issuer := NewTokenIssuer(&config.Config{JWTKey: "one", JWTTTL: time.Hour})
	other := NewTokenIssuer(&config.Config{JWTKey: "two", JWTTTL: time.Hour})

	token, err := issuer.Generate(&Admin{ID: primitive.NewObjectID(), Role: RoleViewer})
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestTokenIssuerRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer(&config.Config{JWTKey: "one", JWTTTL: -time.Minute})
	token, err := issuer.Generate(&Admin{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.Error(t, err)
}

func TestHandlerRegisterLoginProfile(t *testing.T) {
	service, issuer := newTestService()
	handler := NewAuthHandler(service)
	e := echo.New()

	post := func(h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))
		return rec
	}

	rec := post(handler.Register, `{"name":"Ada","email":"ada@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password_hash")

	rec = post(handler.Register, `{"name":"Ada","email":"ada@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = post(handler.Login, `{"email":"ada@example.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = post(handler.Login, `{"email":"ada@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	claims, err := issuer.Parse(body.Token)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/profile", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKey, claims)
	require.NoError(t, handler.Profile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ada@example.com")

	rec = httptest.NewRecorder()
	require.NoError(t, handler.Profile(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
