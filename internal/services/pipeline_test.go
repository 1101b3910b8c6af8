package services

import (
	"context"
	"github.com/maxaizer/hh-sync/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"sync/atomic"
	"testing"
	"time"
)

type mockCollector struct {
	mock.Mock
}

func (m *mockCollector) Collect(ctx context.Context, employerIDs []string) []models.Group {
	return m.Called(ctx, employerIDs).Get(0).([]models.Group)
}

type mockGroupSynchronizer struct {
	mock.Mock
}

func (m *mockGroupSynchronizer) Sync(ctx context.Context, groups []models.Group) models.BatchReport {
	return m.Called(ctx, groups).Get(0).(models.BatchReport)
}

func Test_Pipeline_Run_PassesCollectedGroupsToSync(t *testing.T) {
	groups := []models.Group{{Employer: rawEmployer("1", "A")}}
	report := models.BatchReport{Groups: []models.GroupResult{{RemoteID: "1", Status: models.GroupSynced}}}

	collector := &mockCollector{}
	collector.On("Collect", mock.Anything, []string{"1", "2"}).Return(groups)
	synchronizer := &mockGroupSynchronizer{}
	synchronizer.On("Sync", mock.Anything, groups).Return(report)

	pipeline, err := NewPipeline(collector, synchronizer, []string{"1", "2"})
	require.NoError(t, err)

	assert.Equal(t, report, pipeline.Run(context.Background()))
	collector.AssertExpectations(t)
	synchronizer.AssertExpectations(t)
}

func Test_NewPipeline_RequiresEmployers(t *testing.T) {
	_, err := NewPipeline(&mockCollector{}, &mockGroupSynchronizer{}, nil)
	assert.Error(t, err)
}

type countingRunner struct {
	runs atomic.Int32
}

func (r *countingRunner) Run(context.Context) models.BatchReport {
	r.runs.Add(1)
	return models.BatchReport{}
}

func Test_SyncScheduler_RunsPipeline(t *testing.T) {
	runner := &countingRunner{}
	scheduler, err := NewSyncScheduler(context.Background(), runner, "@every 1s")
	require.NoError(t, err)

	scheduler.Start()
	defer scheduler.Stop()

	assert.Eventually(t, func() bool { return runner.runs.Load() > 0 }, 5*time.Second, 50*time.Millisecond)
}

func Test_SyncScheduler_CanceledContextSkipsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &countingRunner{}
	scheduler, err := NewSyncScheduler(ctx, runner, "@every 1h")
	require.NoError(t, err)

	scheduler.runPipeline()
	assert.Zero(t, runner.runs.Load())
}

func Test_NewSyncScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewSyncScheduler(context.Background(), &countingRunner{}, "every now and then")
	assert.Error(t, err)

	_, err = NewSyncScheduler(context.Background(), &countingRunner{}, "")
	assert.Error(t, err)
}
