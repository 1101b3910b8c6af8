package services

import (
	"context"
	"github.com/maxaizer/hh-sync/internal/domain/models"
	log "github.com/sirupsen/logrus"
)

type Collector struct {
	source remoteSource
}

func NewCollector(source remoteSource) *Collector {
	return &Collector{source: source}
}

// Collect fetches employers one at a time. Vacancies are requested only for
// employers that were fetched, so a failed employer produces no group at all.
func (c *Collector) Collect(ctx context.Context, employerIDs []string) []models.Group {
	groups := make([]models.Group, 0, len(employerIDs))

	for i, id := range employerIDs {
		if ctx.Err() != nil {
			log.Warnf("collection canceled after %d of %d employers", i, len(employerIDs))
			break
		}

		employer, ok := c.source.FetchEmployer(ctx, id)
		if !ok {
			log.Warnf("employer %s skipped: could not fetch employer data", id)
			continue
		}

		groups = append(groups, models.Group{
			Employer: employer,
			Listings: c.source.FetchListings(ctx, id),
		})
	}

	log.Infof("collected %d of %d employers", len(groups), len(employerIDs))
	return groups
}
