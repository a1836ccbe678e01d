// File: internal/profile/gap.go
package profile

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GapRepository records accounts left without a profile document.
type GapRepository interface {
	Record(ctx context.Context, gap *Gap) error
	CountOpen(ctx context.Context) (int64, error)
	ListOpen(ctx context.Context, limit int) ([]Gap, error)
}

type gormGapRepository struct {
	db *gorm.DB
}

// NewGORMGapRepository migrates the profile_gaps table and returns the repository.
func NewGORMGapRepository(db *gorm.DB) (GapRepository, error) {
	if err := db.AutoMigrate(&Gap{}); err != nil {
		return nil, fmt.Errorf("failed to migrate profile_gaps table: %w", err)
	}
	return &gormGapRepository{db: db}, nil
}

func (r *gormGapRepository) Record(ctx context.Context, gap *Gap) error {
	if err := r.db.WithContext(ctx).Create(gap).Error; err != nil {
		return fmt.Errorf("failed to record profile gap for %s: %w", gap.UID, err)
	}
	return nil
}

func (r *gormGapRepository) CountOpen(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Gap{}).Where("resolved_at IS NULL").Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting open profile gaps failed: %w", err)
	}
	return n, nil
}

// ListOpen returns the oldest unresolved gaps first.
func (r *gormGapRepository) ListOpen(ctx context.Context, limit int) ([]Gap, error) {
	if limit <= 0 {
		limit = 20
	}
	var gaps []Gap
	err := r.db.WithContext(ctx).
		Where("resolved_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&gaps).Error
	if err != nil {
		return nil, fmt.Errorf("listing open profile gaps failed: %w", err)
	}
	return gaps, nil
}
