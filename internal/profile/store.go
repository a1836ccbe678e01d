// File: internal/profile/store.go
package profile

import (
	"context"
	"fmt"

	"studybuddy_backend/internal/config"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store is the document store boundary for user profiles.
type Store interface {
	WriteProfile(ctx context.Context, uid string, doc Document) error
	ReadProfile(ctx context.Context, uid string) (*Document, error)
}

// FirestoreProvider hands out the shared Firestore client.
type FirestoreProvider interface {
	Firestore(ctx context.Context) (*firestore.Client, error)
}

// NewStore picks the profile store named by PROFILE_STORE.
func NewStore(cfg *config.Config, fp FirestoreProvider, db *gorm.DB, logger *zap.Logger) (Store, error) {
	switch cfg.ProfileStore {
	case config.ProfileStoreDatabase:
		logger.Info("Using SQL profile store")
		return NewGORMStore(db)
	case config.ProfileStoreFirestore:
		client, err := fp.Firestore(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to get Firestore client: %w", err)
		}
		logger.Info("Using Firestore profile store", zap.String("collection", UsersCollection))
		return NewFirestoreStore(client), nil
	default:
		return nil, fmt.Errorf("unsupported profile store %q", cfg.ProfileStore)
	}
}
