package config

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_KEY", "secret")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "bot@example.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "https://meet.jit.si", cfg.MeetingRoomBaseURL)
	assert.Equal(t, time.Minute, cfg.NotificationSweepInterval)
	assert.Equal(t, "sdr_admin", cfg.Mongo.Database)
	assert.Equal(t, MailDriverSMTP, cfg.Mail.Driver)
	assert.Equal(t, 587, cfg.Mail.SMTPPort)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRequiresMongoURI(t *testing.T) {
	t.Setenv("JWT_KEY", "secret")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "bot@example.com")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			AppEnv:                    EnvProduction,
			MeetingRoomBaseURL:        "https://meet.jit.si",
			NotificationSweepInterval: time.Minute,
			Mail:                      MailConfig{Driver: MailDriverResend, ResendAPIKey: "re_123", From: "bot@example.com"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid resend", func(*Config) {}, false},
		{"bad env", func(c *Config) { c.AppEnv = "staging" }, true},
		{"bad driver", func(c *Config) { c.Mail.Driver = "pigeon" }, true},
		{"resend without key", func(c *Config) { c.Mail.ResendAPIKey = "" }, true},
		{"smtp without host", func(c *Config) { c.Mail.Driver = MailDriverSMTP }, true},
		{"zero sweep interval", func(c *Config) { c.NotificationSweepInterval = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMailConfigSender(t *testing.T) {
	cfg := MailConfig{AppName: "AI SDR", SMTPUser: "bot@example.com"}
	assert.Equal(t, "AI SDR <bot@example.com>", cfg.Sender())

	cfg.From = "hello@example.com"
	assert.Equal(t, "AI SDR <hello@example.com>", cfg.Sender())

	cfg.AppName = ""
	assert.Equal(t, "hello@example.com", cfg.Sender())
}

type recordingTransport struct {
	from string
	sent []EmailMessage
	err  error
}

func (r *recordingTransport) deliver(_ context.Context, from string, msg EmailMessage) error {
	if r.err != nil {
		return r.err
	}
	r.from = from
	r.sent = append(r.sent, msg)
	return nil
}

func TestEmailServiceSendEmail(t *testing.T) {
	transport := &recordingTransport{}
	service := &EmailService{
		Config:    &MailConfig{AppName: "AI SDR", From: "bot@example.com"},
		transport: transport,
		logger:    zap.NewNop(),
	}

	err := service.SendEmail(context.Background(), EmailMessage{To: "lead@example.com", Subject: "Hi", Text: "hello"})
	require.NoError(t, err)
	require.Len(t, transport.sent, 1)
	assert.Equal(t, "AI SDR <bot@example.com>", transport.from)

	assert.Error(t, service.SendEmail(context.Background(), EmailMessage{Subject: "no recipient"}))

	transport.err = errors.New("connection refused")
	assert.ErrorIs(t, service.SendEmail(context.Background(), EmailMessage{To: "lead@example.com"}), transport.err)
}

func TestNewTransport(t *testing.T) {
	smtp, err := newTransport(&MailConfig{Driver: MailDriverSMTP, SMTPHost: "smtp.example.com", SMTPPort: 587})
	require.NoError(t, err)
	assert.IsType(t, &smtpTransport{}, smtp)

	rs, err := newTransport(&MailConfig{Driver: MailDriverResend, ResendAPIKey: "re_123"})
	require.NoError(t, err)
	assert.IsType(t, &resendTransport{}, rs)

	_, err = newTransport(&MailConfig{Driver: "fax"})
	assert.Error(t, err)
}

func TestIndexPlanHasUniqueRoomID(t *testing.T) {
	plan := IndexPlan()
	require.NotEmpty(t, plan[CollectionMeetings])
	first := plan[CollectionMeetings][0]
	require.NotNil(t, first.Options)
	require.NotNil(t, first.Options.Unique)
	assert.True(t, *first.Options.Unique)
}

func TestResendTransportHonoursContext(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/emails", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	t.Cleanup(server.Close)

	client := resend.NewClient("re_test")
	base, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base
	transport := &resendTransport{client: client}
	msg := EmailMessage{To: "lead@example.com", Subject: "Hi", Text: "hello"}

	require.NoError(t, transport.deliver(context.Background(), "AI SDR <bot@example.com>", msg))
	assert.Equal(t, int32(1), hits.Load())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, transport.deliver(ctx, "AI SDR <bot@example.com>", msg))
	assert.Equal(t, int32(1), hits.Load())
}
