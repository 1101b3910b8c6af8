package hh

import (
	"fmt"
	"net/url"
	"strconv"
)

type VacancyQuery struct {
	EmployerID string
	PerPage    int
}

func (q VacancyQuery) Validate() error {

	if q.EmployerID == "" {
		return fmt.Errorf("employer id is required")
	}

	if q.PerPage < 0 || q.PerPage > 100 {
		return fmt.Errorf("per page must be between 0 and 100")
	}

	return nil
}

func (q VacancyQuery) ToUrlParams() url.Values {

	params := url.Values{}
	params.Add("employer_id", q.EmployerID)

	if q.PerPage != 0 {
		params.Add("per_page", strconv.Itoa(q.PerPage))
	}

	return params
}
