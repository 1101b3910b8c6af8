package services

import (
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/hh-sync/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"strings"
	"time"
)

var publishedAtLayouts = []string{"2006-01-02T15:04:05-0700", time.RFC3339}

type ValidationError struct {
	Record  string
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is missing required fields: %s", e.Record, strings.Join(e.Missing, ", "))
}

type Normalizer struct {
	validate *validator.Validate
}

func NewNormalizer() *Normalizer {
	return &Normalizer{validate: validator.New()}
}

func (n *Normalizer) NormalizeEmployer(raw *models.RawEmployer) (models.EmployerRecord, error) {
	if raw == nil {
		return models.EmployerRecord{}, &ValidationError{Record: "employer", Missing: []string{"employer"}}
	}

	record := models.EmployerRecord{
		RemoteID: clean(raw.ID),
		Name:     clean(raw.Name),
		URL:      clean(raw.URL),
	}

	if err := n.check("employer", record, map[string]string{"RemoteID": "id", "Name": "name", "URL": "alternate_url"}); err != nil {
		return models.EmployerRecord{}, err
	}
	return record, nil
}

func (n *Normalizer) NormalizeListing(raw models.RawListing) (models.ListingRecord, error) {
	record := models.ListingRecord{
		Title: clean(raw.Title),
		URL:   clean(raw.URL),
	}
	if raw.Area != nil {
		record.Location = clean(raw.Area.Name)
	}
	if raw.Salary != nil {
		record.SalaryMin = raw.Salary.From
		record.SalaryMax = raw.Salary.To
	}

	if err := n.check("listing", record, map[string]string{"Title": "name", "URL": "alternate_url", "Location": "area.name"}); err != nil {
		return models.ListingRecord{}, err
	}

	if published := clean(raw.PublishedAt); published != "" {
		if t, ok := parsePublishedAt(published); ok {
			record.PublishedAt = &t
		} else {
			log.Warnf("unparsable published_at %q for listing %q, storing null", published, record.Title)
		}
	}

	return record, nil
}

// check maps failed struct fields back to the remote field names.
func (n *Normalizer) check(kind string, record any, names map[string]string) error {
	err := n.validate.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	missing := lo.Map(fieldErrors, func(fieldError validator.FieldError, _ int) string {
		return lo.ValueOr(names, fieldError.Field(), fieldError.Field())
	})
	return &ValidationError{Record: kind, Missing: missing}
}

func clean(value *string) string {
	return strings.TrimSpace(lo.FromPtr(value))
}

func parsePublishedAt(value string) (time.Time, bool) {
	for _, layout := range publishedAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
