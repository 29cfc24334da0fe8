package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"elearning-notifier/internal/domain"
	"elearning-notifier/internal/logger"
	"elearning-notifier/internal/repository"
)

type DispatchOutcome string

const (
	OutcomeSent                DispatchOutcome = "sent"
	OutcomeSkippedUnconfigured DispatchOutcome = "skipped_unconfigured"
	OutcomeSkippedInvalid      DispatchOutcome = "skipped_invalid"
	OutcomeSkippedUserNotFound DispatchOutcome = "skipped_user_not_found"
	OutcomeSkippedNoEmail      DispatchOutcome = "skipped_no_email"
	OutcomeFailed              DispatchOutcome = "failed"
)

// Delivered reports whether an email left the process.
func (o DispatchOutcome) Delivered() bool {
	return o == OutcomeSent
}

type DispatcherOptions struct {
	Logger      *slog.Logger
	Recorder    DispatchRecorder
	SendTimeout time.Duration // 0 = no deadline of our own
}

// NotificationDispatcher emails the owner of a newly created notification.
// Every dependency is fixed at construction; Dispatch may run concurrently.
type NotificationDispatcher struct {
	users       repository.UserProfileRepository
	transport   MailTransport
	renderer    *EmailRenderer
	validate    *validator.Validate
	log         *slog.Logger
	recorder    DispatchRecorder
	sendTimeout time.Duration
}

// NewNotificationDispatcher wires the dispatcher. A nil transport means mail
// is not configured and every dispatch is skipped.
func NewNotificationDispatcher(users repository.UserProfileRepository, transport MailTransport, renderer *EmailRenderer, opts DispatcherOptions) *NotificationDispatcher {
	if renderer == nil {
		renderer = NewEmailRenderer(nil, "")
	}
	if opts.Logger == nil {
		opts.Logger = logger.WithService("notification-dispatcher")
	}
	if opts.Recorder == nil {
		opts.Recorder = noopRecorder{}
	}
	return &NotificationDispatcher{
		users:       users,
		transport:   transport,
		renderer:    renderer,
		validate:    validator.New(),
		log:         opts.Logger,
		recorder:    opts.Recorder,
		sendTimeout: opts.SendTimeout,
	}
}

// Configured reports whether a mail transport is present.
func (d *NotificationDispatcher) Configured() bool {
	return d.transport != nil
}

// Dispatch sends the email for one notification. It never fails: every
// problem is logged and folded into the returned outcome, so the triggering
// platform never retries the write.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, notificationID string, n *domain.Notification) (outcome DispatchOutcome) {
	log := d.log.With("invocation_id", uuid.NewString(), "notification_id", notificationID)

	var notificationType string
	if n != nil {
		notificationType = string(n.Type)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("Error sending notification email", "panic", r)
			outcome = OutcomeFailed
		}
		d.recorder.RecordDispatch(string(outcome), notificationType)
	}()

	if d.transport == nil {
		log.Warn("Email transport not configured. Skipping email send.")
		return OutcomeSkippedUnconfigured
	}

	if n == nil {
		log.Error("Notification record is empty")
		return OutcomeSkippedInvalid
	}
	if err := d.validate.Struct(n); err != nil {
		log.Error("Notification record is malformed", "error", err)
		return OutcomeSkippedInvalid
	}

	user, err := d.users.GetByID(ctx, n.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		log.Error("User not found", "user_id", n.UserID)
		return OutcomeSkippedUserNotFound
	}
	if err != nil {
		log.Error("Error sending notification email", "stage", "user_lookup", "user_id", n.UserID, "error", err)
		return OutcomeFailed
	}
	if !user.HasEmail() {
		log.Error("User has no email address", "user_id", n.UserID)
		return OutcomeSkippedNoEmail
	}

	msg, err := d.renderer.Compose(n, user)
	if err != nil {
		log.Error("Error sending notification email", "stage", "render", "error", err)
		return OutcomeFailed
	}

	if err := d.send(ctx, msg); err != nil {
		log.Error("Error sending notification email", "stage", "send", "provider", d.transport.Name(), "to", user.Email, "error", err)
		return OutcomeFailed
	}

	log.Info("Email sent", "to", user.Email, "type", notificationType)
	return OutcomeSent
}

func (d *NotificationDispatcher) send(ctx context.Context, msg *domain.EmailMessage) error {
	if d.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.sendTimeout)
		defer cancel()
	}

	start := time.Now()
	err := d.transport.Send(ctx, msg)
	d.recorder.ObserveSend(d.transport.Name(), time.Since(start), err)
	return err
}
