package hh

type Employer struct {
	ID            *string `json:"id"`
	Name          *string `json:"name"`
	AlternateUrl  *string `json:"alternate_url"`
	SiteUrl       *string `json:"site_url"`
	Trusted       bool    `json:"trusted"`
	OpenVacancies int     `json:"open_vacancies"`
}
