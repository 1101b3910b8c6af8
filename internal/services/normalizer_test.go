package services

import (
	"github.com/maxaizer/hh-sync/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func Test_NormalizeEmployer_Valid(t *testing.T) {
	record, err := NewNormalizer().NormalizeEmployer(&models.RawEmployer{
		ID:   lo.ToPtr("3529"),
		Name: lo.ToPtr("  СБЕР "),
		URL:  lo.ToPtr("https://hh.ru/employer/3529"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EmployerRecord{RemoteID: "3529", Name: "СБЕР", URL: "https://hh.ru/employer/3529"}, record)
}

func Test_NormalizeEmployer_MissingFieldsAreRejected(t *testing.T) {
	normalizer := NewNormalizer()

	_, err := normalizer.NormalizeEmployer(&models.RawEmployer{ID: lo.ToPtr("1"), Name: lo.ToPtr("Acme")})
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{"alternate_url"}, validationErr.Missing)

	_, err = normalizer.NormalizeEmployer(&models.RawEmployer{Name: lo.ToPtr("   "), URL: lo.ToPtr("u")})
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{"id", "name"}, validationErr.Missing)

	_, err = normalizer.NormalizeEmployer(nil)
	assert.Error(t, err)
}

func Test_NormalizeListing_SalaryBoundsAreIndependent(t *testing.T) {
	normalizer := NewNormalizer()
	base := models.RawListing{
		Title: lo.ToPtr("Go developer"),
		URL:   lo.ToPtr("https://hh.ru/vacancy/1"),
		Area:  &models.RawArea{Name: lo.ToPtr("Москва")},
	}

	record, err := normalizer.NormalizeListing(base)
	require.NoError(t, err)
	assert.Nil(t, record.SalaryMin)
	assert.Nil(t, record.SalaryMax)
	assert.Equal(t, "Москва", record.Location)

	onlyUpper := base
	onlyUpper.Salary = &models.RawSalary{To: lo.ToPtr(5000)}
	record, err = normalizer.NormalizeListing(onlyUpper)
	require.NoError(t, err)
	assert.Nil(t, record.SalaryMin)
	assert.Equal(t, 5000, *record.SalaryMax)

	both := base
	both.Salary = &models.RawSalary{From: lo.ToPtr(1000), To: lo.ToPtr(2000)}
	record, err = normalizer.NormalizeListing(both)
	require.NoError(t, err)
	assert.Equal(t, 1000, *record.SalaryMin)
	assert.Equal(t, 2000, *record.SalaryMax)
}

func Test_NormalizeListing_MissingFieldsAreRejected(t *testing.T) {
	normalizer := NewNormalizer()

	_, err := normalizer.NormalizeListing(models.RawListing{
		Title: lo.ToPtr("Go developer"),
		URL:   lo.ToPtr("https://hh.ru/vacancy/1"),
	})
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "listing", validationErr.Record)
	assert.Equal(t, []string{"area.name"}, validationErr.Missing)

	_, err = normalizer.NormalizeListing(models.RawListing{Area: &models.RawArea{}})
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{"name", "alternate_url", "area.name"}, validationErr.Missing)
}

func Test_NormalizeListing_PublishedAt(t *testing.T) {
	normalizer := NewNormalizer()
	raw := models.RawListing{
		Title:       lo.ToPtr("Go developer"),
		URL:         lo.ToPtr("https://hh.ru/vacancy/1"),
		Area:        &models.RawArea{Name: lo.ToPtr("Москва")},
		PublishedAt: lo.ToPtr("2024-10-14T10:22:31+0300"),
	}

	record, err := normalizer.NormalizeListing(raw)
	require.NoError(t, err)
	require.NotNil(t, record.PublishedAt)
	assert.True(t, time.Date(2024, 10, 14, 7, 22, 31, 0, time.UTC).Equal(*record.PublishedAt))

	raw.PublishedAt = lo.ToPtr("yesterday")
	record, err = normalizer.NormalizeListing(raw)
	require.NoError(t, err)
	assert.Nil(t, record.PublishedAt)
}
