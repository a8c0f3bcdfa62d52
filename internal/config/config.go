package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	MailDriverSMTP   = "smtp"
	MailDriverResend = "resend"
)

type Config struct {
	AppEnv      string        `env:"APP_ENV" envDefault:"development"`
	Port        string        `env:"PORT" envDefault:"8080"`
	CORSOrigins []string      `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
	JWTKey      string        `env:"JWT_KEY,required"`
	JWTTTL      time.Duration `env:"JWT_TTL" envDefault:"24h"`

	// MeetingRoomBaseURL prefixes the room id to build a meeting link.
	MeetingRoomBaseURL        string        `env:"MEETING_ROOM_BASE_URL" envDefault:"https://meet.jit.si"`
	NotificationSweepInterval time.Duration `env:"NOTIFICATION_SWEEP_INTERVAL" envDefault:"1m"`

	Mongo MongoDBConfig
	Mail  MailConfig
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// Load reads the process environment into a Config and validates it.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.AppEnv {
	case EnvDevelopment, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("invalid APP_ENV %q: must be one of %s, %s", c.AppEnv, EnvDevelopment, EnvProduction))
	}

	if strings.TrimSpace(c.MeetingRoomBaseURL) == "" {
		errs = append(errs, errors.New("MEETING_ROOM_BASE_URL must not be empty"))
	}
	if c.NotificationSweepInterval <= 0 {
		errs = append(errs, errors.New("NOTIFICATION_SWEEP_INTERVAL must be positive"))
	}

	switch c.Mail.Driver {
	case MailDriverSMTP:
		if c.Mail.SMTPHost == "" || c.Mail.SMTPUser == "" {
			errs = append(errs, errors.New("smtp mail driver requires SMTP_HOST and SMTP_USER"))
		}
	case MailDriverResend:
		if c.Mail.ResendAPIKey == "" || c.Mail.From == "" {
			errs = append(errs, errors.New("resend mail driver requires RESEND_API_KEY and MAIL_FROM"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid MAIL_DRIVER %q: must be one of %s, %s", c.Mail.Driver, MailDriverSMTP, MailDriverResend))
	}

	return errors.Join(errs...)
}

func NewMongoDBConfig(cfg *Config) *MongoDBConfig {
	return &cfg.Mongo
}

func NewMailConfig(cfg *Config) *MailConfig {
	return &cfg.Mail
}
