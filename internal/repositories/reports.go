package repositories

import (
	"context"
	"database/sql"
	"github.com/maxaizer/hh-sync/internal/domain/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"strings"
)

type Reports struct {
	db *gorm.DB
}

func NewReportsRepository(db *gorm.DB) *Reports {
	return &Reports{db: db}
}

// CompaniesWithVacancyCount lists every employer, including those with no vacancies.
func (repo *Reports) CompaniesWithVacancyCount(ctx context.Context) ([]models.CompanyVacancies, error) {
	var rows []models.CompanyVacancies
	err := repo.db.WithContext(ctx).
		Table("employers AS e").
		Select("e.name AS name, COUNT(l.id) AS count").
		Joins("LEFT JOIN listings AS l ON l.employer_id = e.id").
		Group("e.id, e.name").
		Order("e.name, e.id").
		Scan(&rows).Error
	return rows, err
}

func (repo *Reports) AllVacancies(ctx context.Context) ([]models.VacancyView, error) {
	var rows []models.VacancyView
	err := repo.vacancies(ctx).Scan(&rows).Error
	return rows, err
}

// AverageSalary returns nil when no vacancy has a lower salary bound.
func (repo *Reports) AverageSalary(ctx context.Context) (*float64, error) {
	var avg sql.NullFloat64
	row := repo.db.WithContext(ctx).
		Model(&models.Listing{}).
		Select("CAST(AVG(salary_min) AS FLOAT)").
		Where("salary_min IS NOT NULL").
		Row()
	if err := row.Scan(&avg); err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

func (repo *Reports) VacanciesWithSalaryAbove(ctx context.Context, threshold float64) ([]models.VacancyView, error) {
	var rows []models.VacancyView
	err := repo.vacancies(ctx).Where("l.salary_min > ?", threshold).Scan(&rows).Error
	return rows, err
}

// VacanciesByKeyword matches keyword as a case-insensitive substring of the title.
// SQLite LOWER and LIKE fold ASCII only, so there the match is done after loading.
func (repo *Reports) VacanciesByKeyword(ctx context.Context, keyword string) ([]models.VacancyView, error) {
	var rows []models.VacancyView

	if repo.db.Dialector.Name() == "postgres" {
		err := repo.vacancies(ctx).Where(`l.title ILIKE ? ESCAPE '\'`, "%"+escapeLike(keyword)+"%").Scan(&rows).Error
		return rows, err
	}

	if err := repo.vacancies(ctx).Scan(&rows).Error; err != nil {
		return nil, err
	}
	needle := strings.ToLower(keyword)
	return lo.Filter(rows, func(row models.VacancyView, _ int) bool {
		return strings.Contains(strings.ToLower(row.Title), needle)
	}), nil
}

func (repo *Reports) vacancies(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Table("listings AS l").
		Select("e.name AS company, l.title AS title, l.salary_min AS salary_min, l.salary_max AS salary_max, e.url AS url").
		Joins("JOIN employers AS e ON e.id = l.employer_id").
		Order("e.name, l.id")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
