package repositories

import (
	"context"
	"github.com/maxaizer/hh-sync/internal/domain/models"
	"gorm.io/gorm"
)

// GroupWriter writes one employer group inside a transaction.
type GroupWriter interface {
	UpsertEmployer(ctx context.Context, employer models.Employer) (int64, error)
	InsertListing(ctx context.Context, listing *models.Listing) error
}

type SyncStore struct {
	db *gorm.DB
}

func NewSyncStore(db *gorm.DB) *SyncStore {
	return &SyncStore{db: db}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
func (s *SyncStore) WithinTransaction(ctx context.Context, fn func(writer GroupWriter) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txWriter{
			employers: NewEmployersRepository(tx),
			listings:  NewListingsRepository(tx),
		})
	})
}

type txWriter struct {
	employers *Employers
	listings  *Listings
}

func (w *txWriter) UpsertEmployer(ctx context.Context, employer models.Employer) (int64, error) {
	return w.employers.Upsert(ctx, employer)
}

func (w *txWriter) InsertListing(ctx context.Context, listing *models.Listing) error {
	return w.listings.Insert(ctx, listing)
}
