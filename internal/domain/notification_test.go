package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationType_Symbol(t *testing.T) {
	cases := map[NotificationType]string{
		"announcement": "📢",
		"assignment":   "📝",
		"quiz":         "📊",
		"material":     "📚",
		"message":      "💬",
		"forum":        "💭",
		"grade":        "⭐",
		"deadline":     "⏰",
	}
	for typ, want := range cases {
		t.Run(string(typ), func(t *testing.T) {
			assert.Equal(t, want, typ.Symbol())
			assert.True(t, typ.Known())
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		for _, typ := range []NotificationType{"", "GRADE", "webinar", "system"} {
			assert.Equal(t, DefaultSymbol, typ.Symbol(), "type %q", typ)
			assert.False(t, typ.Known())
		}
	})
}

func TestNotificationType_Badge(t *testing.T) {
	assert.Equal(t, "GRADE", NotificationTypeGrade.Badge())
	assert.Equal(t, "WEBINAR", NotificationType("webinar").Badge())
}

func TestUserProfile_DisplayName(t *testing.T) {
	t.Run("FullNameWins", func(t *testing.T) {
		u := &UserProfile{FullName: "Ana Lima", Username: "ana"}
		assert.Equal(t, "Ana Lima", u.DisplayName())
	})

	t.Run("UsernameFallback", func(t *testing.T) {
		u := &UserProfile{Username: "ana"}
		assert.Equal(t, "ana", u.DisplayName())
	})

	t.Run("DefaultName", func(t *testing.T) {
		assert.Equal(t, "User", (&UserProfile{Email: "a@b.com"}).DisplayName())
		var nilProfile *UserProfile
		assert.Equal(t, "User", nilProfile.DisplayName())
	})
}

func TestUserProfile_HasEmail(t *testing.T) {
	assert.True(t, (&UserProfile{Email: "a@b.com"}).HasEmail())
	assert.False(t, (&UserProfile{FullName: "Ana"}).HasEmail())
	var nilProfile *UserProfile
	assert.False(t, nilProfile.HasEmail())
}
