package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"elearning-notifier/internal/domain"
	"elearning-notifier/internal/logger"
)

// MockUserProfileRepo
type MockUserProfileRepo struct {
	mock.Mock
}

func (m *MockUserProfileRepo) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

// MockMailTransport
type MockMailTransport struct {
	mock.Mock
}

func (m *MockMailTransport) Send(ctx context.Context, msg *domain.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMailTransport) Name() string {
	return "mock"
}

type recordedDispatch struct {
	Outcome string
	Type    string
}

type fakeRecorder struct {
	mu         sync.Mutex
	dispatches []recordedDispatch
	sends      []error
}

func (r *fakeRecorder) RecordDispatch(outcome, notificationType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dispatches = append(r.dispatches, recordedDispatch{outcome, notificationType})
}

func (r *fakeRecorder) ObserveSend(_ string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sends = append(r.sends, err)
}

// logCapture collects JSON log lines written by a dispatcher under test.
type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) Logger() *slog.Logger {
	return logger.New(&c.buf, "debug", "json")
}

func (c *logCapture) Entries(t *testing.T) []map[string]any {
	var entries []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(c.buf.Bytes()))
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func (c *logCapture) Count(t *testing.T, level string) int {
	n := 0
	for _, e := range c.Entries(t) {
		if e["level"] == level {
			n++
		}
	}
	return n
}
