package models

import "time"

type Listing struct {
	ID          int64     `gorm:"primaryKey"`
	EmployerID  int64     `gorm:"not null;index"`
	Employer    *Employer `gorm:"foreignKey:EmployerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Title       string    `gorm:"type:varchar(255);not null"`
	SalaryMin   *int
	SalaryMax   *int
	Location    string `gorm:"type:varchar(255);not null"`
	PublishedAt *time.Time
}

type ListingRecord struct {
	Title       string `validate:"required"`
	URL         string `validate:"required"`
	SalaryMin   *int
	SalaryMax   *int
	PublishedAt *time.Time
	Location    string `validate:"required"`
}

func (r ListingRecord) ToListing(employerID int64) Listing {
	return Listing{
		EmployerID:  employerID,
		Title:       r.Title,
		SalaryMin:   r.SalaryMin,
		SalaryMax:   r.SalaryMax,
		Location:    r.Location,
		PublishedAt: r.PublishedAt,
	}
}

type CompanyVacancies struct {
	Name  string
	Count int64
}

type VacancyView struct {
	Company   string
	Title     string
	SalaryMin *int
	SalaryMax *int
	URL       string
}
