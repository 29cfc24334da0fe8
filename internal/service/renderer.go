package service

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"elearning-notifier/internal/domain"
)

// timestampLayout mirrors the en-US locale string, e.g. "3/14/2025, 9:05:00 AM".
const timestampLayout = "1/2/2006, 3:04:05 PM"

const invalidTimestamp = "Invalid Date"

const notificationEmailHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center; }
    .header h1 { margin: 0; font-size: 24px; }
    .emoji { font-size: 48px; margin-bottom: 10px; }
    .content { background: #ffffff; padding: 30px; border: 1px solid #e0e0e0; border-top: none; }
    .greeting { font-size: 16px; margin-bottom: 20px; color: #666; }
    .notification-type { display: inline-block; background: #667eea; color: white; padding: 5px 15px; border-radius: 20px; font-size: 14px; margin-bottom: 15px; }
    .notification-title { font-size: 20px; font-weight: bold; color: #333; margin-bottom: 15px; }
    .notification-message { font-size: 16px; color: #555; margin-bottom: 20px; padding: 15px; background: #f5f5f5; border-left: 4px solid #667eea; border-radius: 4px; }
    .timestamp { font-size: 13px; color: #999; margin-top: 15px; }
    .footer { background: #f5f5f5; padding: 20px; border-radius: 0 0 10px 10px; text-align: center; font-size: 14px; color: #666; }
  </style>
</head>
<body>
  <div class="header">
    <div class="emoji">{{.Symbol}}</div>
    <h1>New Notification</h1>
  </div>
  <div class="content">
    <div class="greeting">Hi {{.UserName}},</div>
    <div class="notification-type">{{.TypeBadge}}</div>
    <div class="notification-title">{{.Title}}</div>
    <div class="notification-message">{{.Message}}</div>
    <div class="timestamp">
      Received: {{.Received}}
    </div>
  </div>
  <div class="footer">
    <p>This is an automated notification from your {{.AppName}}.</p>
    <p style="font-size: 12px; color: #999; margin-top: 10px;">
      Please do not reply to this email.
    </p>
  </div>
</body>
</html>
`

var notificationEmailTemplate = template.Must(template.New("notification_email").Parse(notificationEmailHTML))

type emailView struct {
	Symbol    string
	UserName  string
	TypeBadge string
	Title     string
	Message   string
	Received  string
	AppName   string
}

// EmailRenderer turns a notification and its recipient into an email.
// It is immutable after construction and safe for concurrent use.
type EmailRenderer struct {
	location *time.Location
	appName  string
}

func NewEmailRenderer(location *time.Location, appName string) *EmailRenderer {
	if location == nil {
		location = time.Local
	}
	if appName == "" {
		appName = "E-Learning App"
	}
	return &EmailRenderer{location: location, appName: appName}
}

// Subject is "{symbol} {title}".
func (r *EmailRenderer) Subject(n *domain.Notification) string {
	return n.Type.Symbol() + " " + n.Title
}

// FormatTimestamp renders t in the renderer's time zone.
func (r *EmailRenderer) FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return invalidTimestamp
	}
	return t.In(r.location).Format(timestampLayout)
}

// RenderHTML fills the notification email template. Title and message are
// HTML-escaped.
func (r *EmailRenderer) RenderHTML(n *domain.Notification, user *domain.UserProfile) (string, error) {
	view := emailView{
		Symbol:    n.Type.Symbol(),
		UserName:  user.DisplayName(),
		TypeBadge: n.Type.Badge(),
		Title:     n.Title,
		Message:   n.Message,
		Received:  r.FormatTimestamp(n.CreatedAt),
		AppName:   r.appName,
	}

	var buf bytes.Buffer
	if err := notificationEmailTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render notification email: %w", err)
	}
	return buf.String(), nil
}

// Compose builds the complete message addressed to the user.
func (r *EmailRenderer) Compose(n *domain.Notification, user *domain.UserProfile) (*domain.EmailMessage, error) {
	html, err := r.RenderHTML(n, user)
	if err != nil {
		return nil, err
	}
	return &domain.EmailMessage{
		To:      user.Email,
		ToName:  user.DisplayName(),
		Subject: r.Subject(n),
		HTML:    html,
	}, nil
}
