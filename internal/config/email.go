package config

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	Driver       string `env:"MAIL_DRIVER" envDefault:"smtp"`
	From         string `env:"MAIL_FROM"`
	AppName      string `env:"APP_NAME" envDefault:"AI SDR"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	ResendAPIKey string `env:"RESEND_API_KEY"`
}

// Sender renders the From header, "App Name <address>".
func (c *MailConfig) Sender() string {
	address := c.From
	if address == "" {
		address = c.SMTPUser
	}
	if c.AppName == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", c.AppName, address)
}

type EmailMessage struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type emailTransport interface {
	deliver(ctx context.Context, from string, msg EmailMessage) error
}

type EmailService struct {
	Config    *MailConfig
	transport emailTransport
	logger    *zap.Logger
}

func NewEmailService(lc fx.Lifecycle, config *MailConfig, logger *zap.Logger) (*EmailService, error) {
	transport, err := newTransport(config)
	if err != nil {
		return nil, err
	}
	service := &EmailService{Config: config, transport: transport, logger: logger}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("email service initialized", zap.String("driver", config.Driver))
			return nil
		},
	})
	return service, nil
}

func newTransport(config *MailConfig) (emailTransport, error) {
	switch config.Driver {
	case MailDriverSMTP:
		return &smtpTransport{dialer: gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPass)}, nil
	case MailDriverResend:
		return &resendTransport{client: resend.NewClient(config.ResendAPIKey)}, nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", config.Driver)
	}
}

// SendEmail delivers msg synchronously; any transport failure is returned to the caller.
func (e *EmailService) SendEmail(ctx context.Context, msg EmailMessage) error {
	if msg.To == "" {
		return fmt.Errorf("email recipient is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.transport.deliver(ctx, e.Config.Sender(), msg); err != nil {
		e.logger.Error("email delivery failed", zap.String("to", msg.To), zap.Error(err))
		return err
	}
	e.logger.Info("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

type smtpTransport struct {
	dialer *gomail.Dialer
}

func (t *smtpTransport) deliver(_ context.Context, from string, msg EmailMessage) error {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}

	if err := t.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email via SMTP: %w", err)
	}
	return nil
}

type resendTransport struct {
	client *resend.Client
}

func (t *resendTransport) deliver(ctx context.Context, from string, msg EmailMessage) error {
	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}
	if _, err := t.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send email via Resend: %w", err)
	}
	return nil
}
