package services

import (
	"context"
	"github.com/maxaizer/hh-sync/internal/domain/models"
	"github.com/maxaizer/hh-sync/internal/logger"
	log "github.com/sirupsen/logrus"
)

type reportsRepository interface {
	CompaniesWithVacancyCount(ctx context.Context) ([]models.CompanyVacancies, error)
	AllVacancies(ctx context.Context) ([]models.VacancyView, error)
	AverageSalary(ctx context.Context) (*float64, error)
	VacanciesWithSalaryAbove(ctx context.Context, threshold float64) ([]models.VacancyView, error)
	VacanciesByKeyword(ctx context.Context, keyword string) ([]models.VacancyView, error)
}

// QueryService answers the read-only questions of the menu.
// Failures are logged and turned into empty results, never returned.
type QueryService struct {
	reports reportsRepository
}

func NewQueryService(reports reportsRepository) *QueryService {
	return &QueryService{reports: reports}
}

func (s *QueryService) CompaniesAndVacanciesCount(ctx context.Context) []models.CompanyVacancies {
	rows, err := s.reports.CompaniesWithVacancyCount(ctx)
	if err != nil {
		logQueryError("companies with vacancy count", err)
		return []models.CompanyVacancies{}
	}
	return rows
}

func (s *QueryService) AllVacancies(ctx context.Context) []models.VacancyView {
	rows, err := s.reports.AllVacancies(ctx)
	if err != nil {
		logQueryError("all vacancies", err)
		return []models.VacancyView{}
	}
	return rows
}

// AverageSalary reports false when no vacancy has a lower salary bound
// or the query failed.
func (s *QueryService) AverageSalary(ctx context.Context) (float64, bool) {
	avg, err := s.reports.AverageSalary(ctx)
	if err != nil {
		logQueryError("average salary", err)
		return 0, false
	}
	if avg == nil {
		return 0, false
	}
	return *avg, true
}

// VacanciesWithHigherSalary returns vacancies whose lower salary bound is
// strictly above the average one.
func (s *QueryService) VacanciesWithHigherSalary(ctx context.Context) []models.VacancyView {
	avg, ok := s.AverageSalary(ctx)
	if !ok {
		return []models.VacancyView{}
	}

	rows, err := s.reports.VacanciesWithSalaryAbove(ctx, avg)
	if err != nil {
		logQueryError("vacancies with higher salary", err)
		return []models.VacancyView{}
	}
	return rows
}

func (s *QueryService) VacanciesByKeyword(ctx context.Context, keyword string) []models.VacancyView {
	rows, err := s.reports.VacanciesByKeyword(ctx, keyword)
	if err != nil {
		logQueryError("vacancies by keyword", err)
		return []models.VacancyView{}
	}
	return rows
}

func logQueryError(query string, err error) {
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("query %q failed: %v", query, err)
}
