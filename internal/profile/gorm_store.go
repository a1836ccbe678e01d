// File: internal/profile/gorm_store.go
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"studybuddy_backend/internal/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMStore keeps profiles in the SQL database.
type GORMStore struct {
	db  *gorm.DB
	now func() time.Time
}

var _ Store = (*GORMStore)(nil)

// NewGORMStore migrates the profiles table and returns the store.
func NewGORMStore(db *gorm.DB) (*GORMStore, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate profiles table: %w", err)
	}
	return &GORMStore{db: db, now: time.Now}, nil
}

// WriteProfile upserts the profile row. A zero CreatedAt is stamped with the current time.
func (s *GORMStore) WriteProfile(ctx context.Context, uid string, doc Document) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = s.now().UTC()
	}
	rec := recordFromDocument(uid, doc)
	rec.Email = strings.ToLower(strings.TrimSpace(rec.Email))

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(rec).Error
	if err != nil {
		return fmt.Errorf("failed to write profile %s: %w", uid, err)
	}
	return nil
}

func (s *GORMStore) ReadProfile(ctx context.Context, uid string) (*Document, error) {
	var rec Record
	err := s.db.WithContext(ctx).Where("uid = ?", uid).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Profile not found.")
		}
		return nil, fmt.Errorf("failed to read profile %s: %w", uid, err)
	}
	return rec.toDocument(), nil
}
