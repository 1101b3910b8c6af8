package models

// RawEmployer is an employer record as received from the remote API.
// Every field may be missing; NormalizeEmployer decides what is mandatory.
type RawEmployer struct {
	ID   *string
	Name *string
	URL  *string
}

type RawSalary struct {
	From *int
	To   *int
}

type RawArea struct {
	Name *string
}

// RawListing is a vacancy record as received from the remote API.
type RawListing struct {
	Title       *string
	URL         *string
	Salary      *RawSalary
	PublishedAt *string
	Area        *RawArea
}

// Group is the unit of validation: one employer and the vacancies fetched for it.
type Group struct {
	Employer *RawEmployer
	Listings []RawListing
}
