package services

import (
	"context"
	"github.com/maxaizer/hh-sync/internal/clients/hh"
	"github.com/maxaizer/hh-sync/internal/domain/models"
	"github.com/maxaizer/hh-sync/internal/logger"
	"github.com/maxaizer/hh-sync/internal/metrics"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"time"
)

type hhClient interface {
	GetEmployer(ctx context.Context, id string) (hh.Employer, error)
	GetEmployerVacancies(ctx context.Context, query hh.VacancyQuery) ([]hh.Vacancy, error)
}

// HHSource fetches raw records from hh.ru. A failed request is logged and
// degrades to an absent employer or an empty vacancy list; it is never retried.
type HHSource struct {
	client  hhClient
	perPage int
}

func NewHHSource(client hhClient, perPage int) *HHSource {
	return &HHSource{client: client, perPage: perPage}
}

func (s *HHSource) FetchEmployer(ctx context.Context, id string) (*models.RawEmployer, bool) {
	start := time.Now()
	employer, err := s.client.GetEmployer(ctx, id)
	metrics.RequestDuration.WithLabelValues("employer").Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHhApi).
			Errorf("failed to get employer %s: %v", id, err)
		return nil, false
	}

	return &models.RawEmployer{
		ID:   employer.ID,
		Name: employer.Name,
		URL:  employer.AlternateUrl,
	}, true
}

func (s *HHSource) FetchListings(ctx context.Context, employerID string) []models.RawListing {
	start := time.Now()
	vacancies, err := s.client.GetEmployerVacancies(ctx, hh.VacancyQuery{EmployerID: employerID, PerPage: s.perPage})
	metrics.RequestDuration.WithLabelValues("vacancies").Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHhApi).
			Errorf("failed to get vacancies for employer %s: %v", employerID, err)
		return []models.RawListing{}
	}

	return lo.Map(vacancies, func(vacancy hh.Vacancy, _ int) models.RawListing {
		return toRawListing(vacancy)
	})
}

func toRawListing(vacancy hh.Vacancy) models.RawListing {
	listing := models.RawListing{
		Title:       vacancy.Name,
		URL:         vacancy.Url,
		PublishedAt: vacancy.PublishedAt,
	}
	if vacancy.Salary != nil {
		listing.Salary = &models.RawSalary{From: vacancy.Salary.From, To: vacancy.Salary.To}
	}
	if vacancy.Area != nil {
		listing.Area = &models.RawArea{Name: vacancy.Area.Name}
	}
	return listing
}
