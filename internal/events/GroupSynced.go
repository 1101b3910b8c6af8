package events

import "github.com/maxaizer/hh-sync/internal/domain/models"

var GroupSyncedTopic = "GroupSyncedEvent"

type GroupSynced struct {
	Result models.GroupResult
}

var BatchCompletedTopic = "BatchCompletedEvent"

type BatchCompleted struct {
	Report models.BatchReport
}
