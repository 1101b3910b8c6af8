package services

import (
	"context"
	"github.com/maxaizer/hh-sync/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type pipelineRunner interface {
	Run(ctx context.Context) models.BatchReport
}

// SyncScheduler repeats the pipeline on a cron schedule. A run that is still
// in progress when the next one is due makes the scheduler skip that tick.
type SyncScheduler struct {
	pipeline pipelineRunner
	cron     *cron.Cron
	ctx      context.Context
}

func NewSyncScheduler(ctx context.Context, pipeline pipelineRunner, schedule string) (*SyncScheduler, error) {

	if schedule == "" {
		return nil, errors.New("sync schedule is empty")
	}

	s := &SyncScheduler{
		pipeline: pipeline,
		ctx:      ctx,
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(log.StandardLogger())),
		)),
	}

	if _, err := s.cron.AddFunc(schedule, s.runPipeline); err != nil {
		return nil, errors.Wrapf(err, "invalid sync schedule %q", schedule)
	}

	return s, nil
}

func (s *SyncScheduler) Start() {
	s.cron.Start()
	log.Infof("sync scheduler started, next run at %v", s.cron.Entries()[0].Next)
}

// Stop waits for a running sync to finish.
func (s *SyncScheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("sync scheduler stopped")
}

func (s *SyncScheduler) runPipeline() {
	if s.ctx.Err() != nil {
		return
	}
	report := s.pipeline.Run(s.ctx)
	log.Infof("scheduled sync done: %d synced, %d skipped, %d failed",
		report.Count(models.GroupSynced), report.Count(models.GroupSkipped), report.Count(models.GroupFailed))
}
