// File: internal/profile/firestore.go
package profile

import (
	"context"
	"fmt"

	"studybuddy_backend/internal/common"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UsersCollection holds one profile document per account, keyed by UID.
const UsersCollection = "users"

// FirestoreStore keeps profiles in Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

var _ Store = (*FirestoreStore)(nil)

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// WriteProfile overwrites users/{uid}. A zero CreatedAt becomes the server timestamp.
func (s *FirestoreStore) WriteProfile(ctx context.Context, uid string, doc Document) error {
	if _, err := s.client.Collection(UsersCollection).Doc(uid).Set(ctx, doc); err != nil {
		return fmt.Errorf("failed to write profile document %s: %w", uid, err)
	}
	return nil
}

func (s *FirestoreStore) ReadProfile(ctx context.Context, uid string) (*Document, error) {
	snap, err := s.client.Collection(UsersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, common.ErrNotFound.WithDetails("Profile not found.")
		}
		return nil, fmt.Errorf("failed to read profile document %s: %w", uid, err)
	}
	var doc Document
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode profile document %s: %w", uid, err)
	}
	return &doc, nil
}
