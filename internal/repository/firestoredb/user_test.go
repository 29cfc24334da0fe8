package firestoredb

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elearning-notifier/internal/repository"
)

func TestProfileFromData(t *testing.T) {
	t.Run("AllFields", func(t *testing.T) {
		p := profileFromData("u1", map[string]interface{}{
			"email":    "a@b.com",
			"fullName": "Ana",
			"username": "ana",
			"role":     "student",
		})
		assert.Equal(t, "u1", p.ID)
		assert.Equal(t, "a@b.com", p.Email)
		assert.Equal(t, "Ana", p.DisplayName())
	})

	t.Run("WrongTypesAreAbsent", func(t *testing.T) {
		p := profileFromData("u2", map[string]interface{}{
			"email":    nil,
			"fullName": 42,
			"username": "ana",
		})
		assert.False(t, p.HasEmail())
		assert.Equal(t, "ana", p.DisplayName())
	})

	t.Run("NilData", func(t *testing.T) {
		p := profileFromData("u3", nil)
		assert.Equal(t, "u3", p.ID)
		assert.Equal(t, "User", p.DisplayName())
	})
}

// TestUserProfileRepository_Emulator runs against a local Firestore emulator.
func TestUserProfileRepository_Emulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("Skipping Firestore test: FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "demo-elearning")
	require.NoError(t, err)
	defer client.Close()

	collection := "users_" + uuid.NewString()
	repo := NewUserProfileRepository(client, collection)

	_, err = client.Collection(collection).Doc("u1").Set(ctx, map[string]interface{}{
		"email":    "a@b.com",
		"fullName": "Ana",
	})
	require.NoError(t, err)

	t.Run("Found", func(t *testing.T) {
		user, err := repo.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", user.Email)
		assert.Equal(t, "Ana", user.DisplayName())
	})

	t.Run("NotFound", func(t *testing.T) {
		user, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
		assert.Nil(t, user)
	})
}
