package models

import "jobly/internal/query"

type Company struct {
	Handle       string  `db:"handle" json:"handle"`
	Name         string  `db:"name" json:"name"`
	NumEmployees *int    `db:"num_employees" json:"num_employees"`
	Description  *string `db:"description" json:"description"`
	LogoURL      *string `db:"logo_url" json:"logo_url"`
}

// CompanySummary is the projection used by company listings.
type CompanySummary struct {
	Handle string `db:"handle" json:"handle"`
	Name   string `db:"name" json:"name"`
}

// CompanyDetail is a company with the jobs it currently has posted.
type CompanyDetail struct {
	Company
	Jobs []Job `json:"jobs"`
}

type NewCompany struct {
	Handle       string
	Name         string
	NumEmployees *int
	Description  *string
	LogoURL      *string
}

// CompanyUpdate carries the columns a partial update may change.
// Handle is immutable and therefore absent.
type CompanyUpdate struct {
	Name         query.Optional[string]
	NumEmployees query.Optional[*int]
	Description  query.Optional[*string]
	LogoURL      query.Optional[*string]
}

// Fields lists the present columns in declaration order.
func (u CompanyUpdate) Fields() []query.Field {
	var f fieldList
	addField(&f, "name", u.Name)
	addField(&f, "num_employees", u.NumEmployees)
	addField(&f, "description", u.Description)
	addField(&f, "logo_url", u.LogoURL)
	return f
}
