package repositories

import (
	"context"
	"github.com/maxaizer/hh-sync/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEmployerKeyNotResolved = errors.New("employer key not resolved")

type Employers struct {
	db *gorm.DB
}

func NewEmployersRepository(db *gorm.DB) *Employers {
	return &Employers{db: db}
}

// Upsert inserts the employer or, when its remote id is already stored,
// overwrites name and url. It returns the local key in both cases.
func (repo *Employers) Upsert(ctx context.Context, employer models.Employer) (int64, error) {
	employer.ID = 0

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "remote_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "url"}),
		}).
		Create(&employer).Error
	if err != nil {
		return 0, errors.Wrapf(err, "upsert employer %s", employer.RemoteID)
	}

	return repo.KeyByRemoteID(ctx, employer.RemoteID)
}

func (repo *Employers) KeyByRemoteID(ctx context.Context, remoteID string) (int64, error) {
	var ids []int64
	err := repo.db.WithContext(ctx).
		Model(&models.Employer{}).
		Where("remote_id = ?", remoteID).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, errors.Wrapf(err, "resolve employer %s", remoteID)
	}

	if len(ids) == 0 || ids[0] == 0 {
		return 0, errors.Wrapf(ErrEmployerKeyNotResolved, "remote id %s", remoteID)
	}
	return ids[0], nil
}

func (repo *Employers) GetByRemoteID(ctx context.Context, remoteID string) (*models.Employer, error) {
	var employer models.Employer
	if err := repo.db.WithContext(ctx).First(&employer, "remote_id = ?", remoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employer, nil
}

func (repo *Employers) Count(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&models.Employer{}).Count(&count).Error
	return count, err
}
