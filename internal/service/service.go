package service

import (
	"context"
	"time"

	"elearning-notifier/internal/domain"
)

// MailTransport delivers a rendered email from the configured sender account.
type MailTransport interface {
	Send(ctx context.Context, msg *domain.EmailMessage) error
	Name() string
}

// DispatchRecorder receives one record per dispatch and one observation per
// send attempt.
type DispatchRecorder interface {
	RecordDispatch(outcome string, notificationType string)
	ObserveSend(provider string, elapsed time.Duration, err error)
}

type noopRecorder struct{}

func (noopRecorder) RecordDispatch(string, string)               {}
func (noopRecorder) ObserveSend(string, time.Duration, error) {}
