package domain

import (
	"strings"
	"time"
)

type NotificationType string

const (
	NotificationTypeAnnouncement NotificationType = "announcement"
	NotificationTypeAssignment   NotificationType = "assignment"
	NotificationTypeQuiz         NotificationType = "quiz"
	NotificationTypeMaterial     NotificationType = "material"
	NotificationTypeMessage      NotificationType = "message"
	NotificationTypeForum        NotificationType = "forum"
	NotificationTypeGrade        NotificationType = "grade"
	NotificationTypeDeadline     NotificationType = "deadline"
)

// DefaultSymbol is used for notification types outside the known set.
const DefaultSymbol = "🔔"

// Existing keys must never change; new types are added as new entries.
var notificationSymbols = map[NotificationType]string{
	NotificationTypeAnnouncement: "📢",
	NotificationTypeAssignment:   "📝",
	NotificationTypeQuiz:         "📊",
	NotificationTypeMaterial:     "📚",
	NotificationTypeMessage:      "💬",
	NotificationTypeForum:        "💭",
	NotificationTypeGrade:        "⭐",
	NotificationTypeDeadline:     "⏰",
}

// Symbol returns the decorative symbol for the type, or DefaultSymbol.
func (t NotificationType) Symbol() string {
	if s, ok := notificationSymbols[t]; ok {
		return s
	}
	return DefaultSymbol
}

// Known reports whether t is one of the fixed notification types.
func (t NotificationType) Known() bool {
	_, ok := notificationSymbols[t]
	return ok
}

// Badge is the upper-cased label shown in the email body.
func (t NotificationType) Badge() string {
	return strings.ToUpper(string(t))
}

// Notification is a record in the notifications collection. It is written by
// other parts of the application and only read here.
type Notification struct {
	ID        string           `json:"id" firestore:"-"`
	UserID    string           `json:"userId" firestore:"userId" validate:"required"`
	Type      NotificationType `json:"type" firestore:"type" validate:"required"`
	Title     string           `json:"title" firestore:"title" validate:"required"`
	Message   string           `json:"message" firestore:"message"`
	CreatedAt time.Time        `json:"createdAt" firestore:"createdAt"`
}
