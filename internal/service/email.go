package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"

	"elearning-notifier/internal/config"
	"elearning-notifier/internal/domain"
	"elearning-notifier/internal/logger"
)

// NewMailTransport builds the transport for the configured provider. It
// returns nil when the credential pair is incomplete; callers treat a nil
// transport as "email disabled".
func NewMailTransport(cfg *config.Config) MailTransport {
	if !cfg.MailConfigured() {
		return nil
	}
	switch cfg.Mail.Provider {
	case config.MailProviderSendGrid:
		return NewSendGridTransport(cfg.Mail.SendGridAPIKey, cfg.Mail.Account, cfg.Mail.FromName)
	default:
		return NewSMTPTransport(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Account, cfg.Mail.Password, cfg.Mail.FromName)
	}
}

type smtpTransport struct {
	account  string
	fromName string
	send     func(m *gomail.Message) error
}

// NewSMTPTransport sends through an authenticated SMTP account (Gmail by
// default) using the account address as sender.
func NewSMTPTransport(host string, port int, account, password, fromName string) MailTransport {
	d := gomail.NewDialer(host, port, account, password)
	return &smtpTransport{
		account:  account,
		fromName: fromName,
		send:     func(m *gomail.Message) error { return d.DialAndSend(m) },
	}
}

func (s *smtpTransport) Name() string {
	return config.MailProviderSMTP
}

func (s *smtpTransport) Send(ctx context.Context, msg *domain.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.account, s.fromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	logger.ExternalServiceCall("smtp", "send", "to", msg.To)
	err := s.send(m)
	logger.ExternalServiceResult("smtp", "send", err, "to", msg.To)
	if err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

type sendGridClient interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridTransport struct {
	client    sendGridClient
	fromEmail string
	fromName  string
}

// NewSendGridTransport sends through the SendGrid v3 API.
func NewSendGridTransport(apiKey, fromEmail, fromName string) MailTransport {
	return &sendGridTransport{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridTransport) Name() string {
	return config.MailProviderSendGrid
}

func (s *sendGridTransport) Send(ctx context.Context, msg *domain.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(s.fromName, s.fromEmail))
	message.Subject = msg.Subject

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail(msg.ToName, msg.To))
	message.AddPersonalizations(personalization)
	message.AddContent(mail.NewContent("text/html", msg.HTML))

	logger.ExternalServiceCall("sendgrid", "send", "to", msg.To)
	response, err := s.client.Send(message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "to", msg.To)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
