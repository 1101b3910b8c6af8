package models

type Employer struct {
	ID       int64  `gorm:"primaryKey"`
	RemoteID string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Name     string `gorm:"type:varchar(255);not null"`
	URL      string `gorm:"type:varchar(255)"`
}

type EmployerRecord struct {
	RemoteID string `validate:"required"`
	Name     string `validate:"required"`
	URL      string `validate:"required"`
}

func (r EmployerRecord) ToEmployer() Employer {
	return Employer{RemoteID: r.RemoteID, Name: r.Name, URL: r.URL}
}
