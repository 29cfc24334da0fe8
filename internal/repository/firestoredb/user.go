package firestoredb

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"elearning-notifier/internal/config"
	"elearning-notifier/internal/domain"
	"elearning-notifier/internal/logger"
	"elearning-notifier/internal/repository"
)

// NewClient opens a Firestore client through the Firebase Admin SDK. Without a
// credentials file the SDK falls back to application default credentials.
func NewClient(ctx context.Context, cfg config.FirebaseConfig) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	var fbConfig *firebase.Config
	if cfg.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open firestore client: %w", err)
	}
	return client, nil
}

type userProfileRepository struct {
	client     *firestore.Client
	collection string
}

func NewUserProfileRepository(client *firestore.Client, collection string) repository.UserProfileRepository {
	if collection == "" {
		collection = "users"
	}
	return &userProfileRepository{client: client, collection: collection}
}

func (r *userProfileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	logger.ExternalServiceCall("firestore", "get_user", "collection", r.collection, "user_id", id)

	snap, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound || (err == nil && !snap.Exists()) {
		logger.ExternalServiceResult("firestore", "get_user", nil, "user_id", id, "found", false)
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		logger.ExternalServiceResult("firestore", "get_user", err, "user_id", id)
		return nil, fmt.Errorf("failed to load user %s: %w", id, err)
	}
	logger.ExternalServiceResult("firestore", "get_user", nil, "user_id", id, "found", true)

	return profileFromData(id, snap.Data()), nil
}

// profileFromData reads the optional string fields of a users document.
// Fields with another type are treated as absent.
func profileFromData(id string, data map[string]interface{}) *domain.UserProfile {
	str := func(key string) string {
		if v, ok := data[key].(string); ok {
			return v
		}
		return ""
	}
	return &domain.UserProfile{
		ID:       id,
		Email:    str("email"),
		FullName: str("fullName"),
		Username: str("username"),
	}
}
