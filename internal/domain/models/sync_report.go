package models

import "github.com/samber/lo"

type GroupStatus string

const (
	GroupSynced  GroupStatus = "synced"
	GroupSkipped GroupStatus = "skipped"
	GroupFailed  GroupStatus = "failed"
)

type GroupResult struct {
	RemoteID         string
	Status           GroupStatus
	EmployerID       int64
	ListingsInserted int
	ListingsSkipped  int
	Err              error
}

type BatchReport struct {
	Groups []GroupResult
}

func (r *BatchReport) Add(result GroupResult) {
	r.Groups = append(r.Groups, result)
}

func (r BatchReport) Count(status GroupStatus) int {
	return lo.CountBy(r.Groups, func(group GroupResult) bool { return group.Status == status })
}

func (r BatchReport) ListingsInserted() int {
	return lo.SumBy(r.Groups, func(group GroupResult) int { return group.ListingsInserted })
}

func (r BatchReport) ListingsSkipped() int {
	return lo.SumBy(r.Groups, func(group GroupResult) int { return group.ListingsSkipped })
}
