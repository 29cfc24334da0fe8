package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewDispatchMetrics(reg)
	require.NoError(t, err)

	m.RecordDispatch("sent", "grade")
	m.RecordDispatch("sent", "grade")
	m.RecordDispatch("skipped_no_email", "webinar")
	m.RecordDispatch("skipped_invalid", "")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.dispatches.WithLabelValues("sent", "grade")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dispatches.WithLabelValues("skipped_no_email", "other")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dispatches.WithLabelValues("skipped_invalid", "other")))

	m.ObserveSend("smtp", 120*time.Millisecond, nil)
	m.ObserveSend("smtp", time.Second, errors.New("timeout"))
	assert.Equal(t, 2, testutil.CollectAndCount(m.sendDuration))
}

func TestNewDispatchMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewDispatchMetrics(reg)
	require.NoError(t, err)

	_, err = NewDispatchMetrics(reg)
	assert.Error(t, err)
}
