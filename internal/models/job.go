package models

import (
	"time"

	"jobly/internal/query"
)

type Job struct {
	ID            int64     `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Salary        *float64  `db:"salary" json:"salary"`
	Equity        *float64  `db:"equity" json:"equity"`
	CompanyHandle string    `db:"company_handle" json:"company_handle"`
	DatePosted    time.Time `db:"date_posted" json:"date_posted"`
}

// JobSummary is the projection used by job listings.
type JobSummary struct {
	ID            int64  `db:"id" json:"id"`
	Title         string `db:"title" json:"title"`
	CompanyHandle string `db:"company_handle" json:"company_handle"`
}

// JobDetail is a job with the company that posted it.
type JobDetail struct {
	Job
	Company *Company `json:"company"`
}

type NewJob struct {
	Title         string
	Salary        *float64
	Equity        *float64
	CompanyHandle string
}

// JobUpdate carries the columns a partial update may change.
// id and date_posted are assigned by the store and never updated.
type JobUpdate struct {
	Title         query.Optional[string]
	Salary        query.Optional[*float64]
	Equity        query.Optional[*float64]
	CompanyHandle query.Optional[string]
}

func (u JobUpdate) Fields() []query.Field {
	var f fieldList
	addField(&f, "title", u.Title)
	addField(&f, "salary", u.Salary)
	addField(&f, "equity", u.Equity)
	addField(&f, "company_handle", u.CompanyHandle)
	return f
}
