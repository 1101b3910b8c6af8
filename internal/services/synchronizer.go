package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hh-sync/internal/domain/models"
	"github.com/maxaizer/hh-sync/internal/events"
	"github.com/maxaizer/hh-sync/internal/logger"
	"github.com/maxaizer/hh-sync/internal/repositories"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type syncStore interface {
	WithinTransaction(ctx context.Context, fn func(writer repositories.GroupWriter) error) error
}

// Synchronizer writes employer groups. Each group is committed in its own
// transaction: a store failure rolls back only that group and the batch goes on.
type Synchronizer struct {
	store      syncStore
	normalizer *Normalizer
	bus        EventBus.Bus
}

func NewSynchronizer(store syncStore, normalizer *Normalizer, bus EventBus.Bus) (*Synchronizer, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}
	if normalizer == nil {
		return nil, errors.New("normalizer is nil")
	}
	return &Synchronizer{store: store, normalizer: normalizer, bus: bus}, nil
}

func (s *Synchronizer) Sync(ctx context.Context, groups []models.Group) models.BatchReport {
	report := models.BatchReport{Groups: make([]models.GroupResult, 0, len(groups))}

	for _, group := range groups {
		result := s.syncGroup(ctx, group)
		report.Add(result)
		s.publish(events.GroupSyncedTopic, events.GroupSynced{Result: result})
	}

	log.Infof("sync finished: %d synced, %d skipped, %d failed groups; %d vacancies inserted, %d skipped",
		report.Count(models.GroupSynced), report.Count(models.GroupSkipped), report.Count(models.GroupFailed),
		report.ListingsInserted(), report.ListingsSkipped())

	s.publish(events.BatchCompletedTopic, events.BatchCompleted{Report: report})
	return report
}

func (s *Synchronizer) syncGroup(ctx context.Context, group models.Group) models.GroupResult {

	employer, err := s.normalizer.NormalizeEmployer(group.Employer)
	if err != nil {
		remoteID := ""
		if group.Employer != nil {
			remoteID = lo.FromPtr(group.Employer.ID)
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeValidation).
			Warnf("employer %q skipped with its %d vacancies: %v", remoteID, len(group.Listings), err)
		return models.GroupResult{RemoteID: remoteID, Status: models.GroupSkipped, ListingsSkipped: len(group.Listings), Err: err}
	}

	result := models.GroupResult{RemoteID: employer.RemoteID}
	keyResolved := true

	err = s.store.WithinTransaction(ctx, func(writer repositories.GroupWriter) error {
		key, err := writer.UpsertEmployer(ctx, employer.ToEmployer())
		if errors.Is(err, repositories.ErrEmployerKeyNotResolved) {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeIntegrity).
				Errorf("employer %s: local key not resolved after upsert, vacancies skipped", employer.RemoteID)
			// the employer row stays, only its dependent vacancies are dropped
			keyResolved = false
			return nil
		}
		if err != nil {
			return err
		}
		result.EmployerID = key

		for _, raw := range group.Listings {
			listing, err := s.normalizer.NormalizeListing(raw)
			if err != nil {
				result.ListingsSkipped++
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeValidation).
					Warnf("vacancy %q of employer %s skipped: %v", lo.FromPtr(raw.URL), employer.RemoteID, err)
				continue
			}

			row := listing.ToListing(key)
			if err = writer.InsertListing(ctx, &row); err != nil {
				return err
			}
			result.ListingsInserted++
		}
		return nil
	})

	switch {
	case err == nil && keyResolved:
		result.Status = models.GroupSynced
	case err == nil:
		result.Status = models.GroupSkipped
		result.Err = repositories.ErrEmployerKeyNotResolved
		result.ListingsSkipped = len(group.Listings)
	default:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("employer %s: group rolled back: %v", employer.RemoteID, err)
		result.Status = models.GroupFailed
		result.Err = err
		result.EmployerID, result.ListingsInserted = 0, 0
		result.ListingsSkipped = len(group.Listings)
	}

	return result
}

func (s *Synchronizer) publish(topic string, event any) {
	if s.bus != nil {
		s.bus.Publish(topic, event)
	}
}
