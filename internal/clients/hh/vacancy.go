package hh

type Salary struct {
	From     *int    `json:"from"`
	To       *int    `json:"to"`
	Currency *string `json:"currency"`
	Gross    *bool   `json:"gross"`
}

// Vacancy is one item of the /vacancies search response. published_at is
// kept as the raw string so an odd timestamp never fails the whole page.
type Vacancy struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	Url         *string `json:"alternate_url"`
	Salary      *Salary `json:"salary"`
	PublishedAt *string `json:"published_at"`
	Area        *Area   `json:"area"`
}

type getVacanciesResponse struct {
	Vacancies []Vacancy `json:"items"`
	Found     int       `json:"found"`
	Pages     int       `json:"pages"`
}
