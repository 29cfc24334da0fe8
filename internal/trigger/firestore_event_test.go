package trigger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elearning-notifier/internal/domain"
)

const createdEvent = `{
  "oldValue": {},
  "value": {
    "name": "projects/elearning/databases/(default)/documents/notifications/n-123",
    "createTime": "2025-03-14T09:05:00.5Z",
    "updateTime": "2025-03-14T09:05:00.5Z",
    "fields": {
      "userId":    {"stringValue": "u1"},
      "type":      {"stringValue": "grade"},
      "title":     {"stringValue": "Midterm Graded"},
      "message":   {"stringValue": "You scored 92"},
      "isRead":    {"booleanValue": false},
      "createdAt": {"timestampValue": "2025-03-14T09:04:59Z"}
    }
  },
  "updateMask": {}
}`

func TestDecodeNotification(t *testing.T) {
	t.Run("CreatedDocument", func(t *testing.T) {
		e, err := ParseFirestoreEvent([]byte(createdEvent))
		require.NoError(t, err)

		n, err := DecodeNotification(e)
		require.NoError(t, err)
		assert.Equal(t, "n-123", n.ID)
		assert.Equal(t, "u1", n.UserID)
		assert.Equal(t, domain.NotificationTypeGrade, n.Type)
		assert.Equal(t, "Midterm Graded", n.Title)
		assert.Equal(t, "You scored 92", n.Message)
		assert.True(t, n.CreatedAt.Equal(time.Date(2025, 3, 14, 9, 4, 59, 0, time.UTC)))
	})

	t.Run("MissingCreatedAtUsesCreateTime", func(t *testing.T) {
		e, err := ParseFirestoreEvent([]byte(`{"value":{"name":"notifications/n1","createTime":"2025-01-01T00:00:00Z",
			"fields":{"userId":{"stringValue":"u1"}}}}`))
		require.NoError(t, err)

		n, err := DecodeNotification(e)
		require.NoError(t, err)
		assert.Equal(t, "n1", n.ID)
		assert.True(t, n.CreatedAt.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("WrongTypesLeftEmpty", func(t *testing.T) {
		e, err := ParseFirestoreEvent([]byte(`{"value":{"name":"notifications/n2",
			"fields":{"userId":{"integerValue":"7"},"title":{"nullValue":null}}}}`))
		require.NoError(t, err)

		n, err := DecodeNotification(e)
		require.NoError(t, err)
		assert.Empty(t, n.UserID)
		assert.Empty(t, n.Title)
	})

	t.Run("NoDocument", func(t *testing.T) {
		_, err := DecodeNotification(&FirestoreEvent{})
		assert.ErrorIs(t, err, ErrNoDocument)

		_, err = DecodeNotification(nil)
		assert.ErrorIs(t, err, ErrNoDocument)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		_, err := ParseFirestoreEvent([]byte(`{"value":`))
		assert.Error(t, err)
	})
}

func TestFirestoreValue_AsTime(t *testing.T) {
	want := time.UnixMilli(1741943099000)
	str := "2025-03-14T09:04:59Z"
	double := float64(1741943099000)

	cases := []struct {
		name  string
		value FirestoreValue
		ok    bool
	}{
		{"QuotedInteger", FirestoreValue{IntegerValue: []byte(`"1741943099000"`)}, true},
		{"BareInteger", FirestoreValue{IntegerValue: []byte(`1741943099000`)}, true},
		{"Double", FirestoreValue{DoubleValue: &double}, true},
		{"RFC3339String", FirestoreValue{StringValue: &str}, true},
		{"Empty", FirestoreValue{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.value.AsTime()
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, got.Equal(want), "got %s", got)
			}
		})
	}

	t.Run("GarbageString", func(t *testing.T) {
		bad := "last tuesday"
		_, ok := FirestoreValue{StringValue: &bad}.AsTime()
		assert.False(t, ok)
	})
}
