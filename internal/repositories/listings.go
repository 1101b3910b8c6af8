package repositories

import (
	"context"
	"github.com/maxaizer/hh-sync/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Listings struct {
	db *gorm.DB
}

func NewListingsRepository(db *gorm.DB) *Listings {
	return &Listings{db: db}
}

// Insert always adds a new row; listings are never deduplicated.
func (repo *Listings) Insert(ctx context.Context, listing *models.Listing) error {
	err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(listing).Error
	return errors.Wrapf(err, "insert listing %q", listing.Title)
}

func (repo *Listings) GetByEmployer(ctx context.Context, employerID int64) ([]models.Listing, error) {
	var listings []models.Listing
	err := repo.db.WithContext(ctx).Order("id").Find(&listings, "employer_id = ?", employerID).Error
	return listings, err
}

func (repo *Listings) Count(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&models.Listing{}).Count(&count).Error
	return count, err
}
