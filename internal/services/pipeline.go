package services

import (
	"context"
	"github.com/maxaizer/hh-sync/internal/domain/models"
	"github.com/maxaizer/hh-sync/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"time"
)

type groupCollector interface {
	Collect(ctx context.Context, employerIDs []string) []models.Group
}

type groupSynchronizer interface {
	Sync(ctx context.Context, groups []models.Group) models.BatchReport
}

// Pipeline runs one fetch and sync pass over the configured employers.
type Pipeline struct {
	collector    groupCollector
	synchronizer groupSynchronizer
	employerIDs  []string
}

func NewPipeline(collector groupCollector, synchronizer groupSynchronizer, employerIDs []string) (*Pipeline, error) {
	if len(employerIDs) == 0 {
		return nil, errors.New("no employer ids to sync")
	}
	return &Pipeline{collector: collector, synchronizer: synchronizer, employerIDs: employerIDs}, nil
}

func (p *Pipeline) Run(ctx context.Context) models.BatchReport {
	startTime := time.Now()
	log.Infof("running sync of %d employers at %v", len(p.employerIDs), startTime)

	groups := p.collector.Collect(ctx, p.employerIDs)
	report := p.synchronizer.Sync(ctx, groups)

	executionTime := time.Since(startTime)
	metrics.SyncDuration.Observe(executionTime.Seconds())

	if failed := report.Count(models.GroupFailed); failed > 0 {
		log.Warnf("sync ended after %v with %d failed groups", executionTime, failed)
	} else {
		log.Infof("sync ended after %v", executionTime)
	}
	return report
}
