// Package trigger decodes Firestore document-creation events delivered to the
// notifier into domain records.
package trigger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"elearning-notifier/internal/domain"
)

var ErrNoDocument = errors.New("event carries no document")

// FirestoreEvent is the payload of a Firestore document trigger.
type FirestoreEvent struct {
	OldValue   FirestoreDocument `json:"oldValue"`
	Value      FirestoreDocument `json:"value"`
	UpdateMask struct {
		FieldPaths []string `json:"fieldPaths"`
	} `json:"updateMask"`
}

// FirestoreDocument is a document in the Firestore REST representation.
type FirestoreDocument struct {
	Name       string                    `json:"name"`
	Fields     map[string]FirestoreValue `json:"fields"`
	CreateTime time.Time                 `json:"createTime"`
	UpdateTime time.Time                 `json:"updateTime"`
}

// FirestoreValue holds exactly one typed value. Integers arrive as JSON
// strings in the REST encoding but some emitters send bare numbers.
type FirestoreValue struct {
	StringValue    *string         `json:"stringValue,omitempty"`
	IntegerValue   json.RawMessage `json:"integerValue,omitempty"`
	DoubleValue    *float64        `json:"doubleValue,omitempty"`
	BooleanValue   *bool           `json:"booleanValue,omitempty"`
	TimestampValue *time.Time      `json:"timestampValue,omitempty"`
	NullValue      json.RawMessage `json:"nullValue,omitempty"`
}

// ID is the last segment of the document path.
func (d FirestoreDocument) ID() string {
	if i := strings.LastIndex(d.Name, "/"); i >= 0 {
		return d.Name[i+1:]
	}
	return d.Name
}

// AsString returns the value when it is a string.
func (v FirestoreValue) AsString() (string, bool) {
	if v.StringValue == nil {
		return "", false
	}
	return *v.StringValue, true
}

// AsInteger returns the value when it is an integer.
func (v FirestoreValue) AsInteger() (int64, bool) {
	raw := bytes.Trim(v.IntegerValue, `"`)
	if len(raw) == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// AsTime converts a timestamp, epoch milliseconds (integer or double) or an
// RFC 3339 string.
func (v FirestoreValue) AsTime() (time.Time, bool) {
	switch {
	case v.TimestampValue != nil:
		return *v.TimestampValue, true
	case v.DoubleValue != nil:
		if math.IsNaN(*v.DoubleValue) || math.IsInf(*v.DoubleValue, 0) {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(*v.DoubleValue)), true
	case v.StringValue != nil:
		t, err := time.Parse(time.RFC3339Nano, *v.StringValue)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	if ms, ok := v.AsInteger(); ok {
		return time.UnixMilli(ms), true
	}
	return time.Time{}, false
}

// DecodeNotification maps the created document to a notification. Fields of
// the wrong type are left empty; whether the record is usable is decided by
// the dispatcher. A missing createdAt falls back to the document create time.
func DecodeNotification(e *FirestoreEvent) (*domain.Notification, error) {
	if e == nil || e.Value.Name == "" {
		return nil, ErrNoDocument
	}

	fields := e.Value.Fields
	str := func(key string) string {
		s, _ := fields[key].AsString()
		return s
	}

	n := &domain.Notification{
		ID:      e.Value.ID(),
		UserID:  str("userId"),
		Type:    domain.NotificationType(str("type")),
		Title:   str("title"),
		Message: str("message"),
	}
	if ts, ok := fields["createdAt"].AsTime(); ok {
		n.CreatedAt = ts
	} else {
		n.CreatedAt = e.Value.CreateTime
	}
	return n, nil
}

// ParseFirestoreEvent decodes a JSON event body.
func ParseFirestoreEvent(body []byte) (*FirestoreEvent, error) {
	var e FirestoreEvent
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, fmt.Errorf("failed to parse firestore event: %w", err)
	}
	return &e, nil
}
