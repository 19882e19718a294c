package models

import (
	"net/url"
	"strconv"

	"jobly/internal/query"
)

// Filter keys accepted by the listing endpoints.
const (
	FilterSearch       = "search"
	FilterMinEmployees = "min_employees"
	FilterMaxEmployees = "max_employees"
	FilterMinSalary    = "min_salary"
	FilterMaxSalary    = "max_salary"
	FilterMinEquity    = "min_equity"
)

// CompanyFilter constrains a company listing. Absent fields add no predicate.
type CompanyFilter struct {
	Search       query.Optional[string]
	MinEmployees query.Optional[int]
	MaxEmployees query.Optional[int]
}

func (f CompanyFilter) Validate() error {
	return query.CheckRange("employees", f.MinEmployees, f.MaxEmployees)
}

func (f CompanyFilter) IsEmpty() bool {
	return !f.Search.IsSet() && !f.MinEmployees.IsSet() && !f.MaxEmployees.IsSet()
}

// Encode renders the present fields as a sorted query string. Equal filters
// encode identically; the empty filter encodes as "".
func (f CompanyFilter) Encode() string {
	v := url.Values{}
	if s, ok := f.Search.Get(); ok {
		v.Set(FilterSearch, s)
	}
	if n, ok := f.MinEmployees.Get(); ok {
		v.Set(FilterMinEmployees, strconv.Itoa(n))
	}
	if n, ok := f.MaxEmployees.Get(); ok {
		v.Set(FilterMaxEmployees, strconv.Itoa(n))
	}
	return v.Encode()
}

// JobFilter constrains a job listing. Search matches the title.
type JobFilter struct {
	Search    query.Optional[string]
	MinSalary query.Optional[float64]
	MaxSalary query.Optional[float64]
	MinEquity query.Optional[float64]
}

func (f JobFilter) Validate() error {
	if err := query.CheckRange("salary", f.MinSalary, f.MaxSalary); err != nil {
		return err
	}
	return query.CheckRange("equity", f.MinEquity, query.None[float64]())
}

func (f JobFilter) IsEmpty() bool {
	return !f.Search.IsSet() && !f.MinSalary.IsSet() && !f.MaxSalary.IsSet() && !f.MinEquity.IsSet()
}

func (f JobFilter) Encode() string {
	v := url.Values{}
	if s, ok := f.Search.Get(); ok {
		v.Set(FilterSearch, s)
	}
	setFloat(v, FilterMinSalary, f.MinSalary)
	setFloat(v, FilterMaxSalary, f.MaxSalary)
	setFloat(v, FilterMinEquity, f.MinEquity)
	return v.Encode()
}

func setFloat(v url.Values, key string, o query.Optional[float64]) {
	if x, ok := o.Get(); ok {
		v.Set(key, strconv.FormatFloat(x, 'g', -1, 64))
	}
}

// CompanyFilterKeys and JobFilterKeys list the recognized keys per resource.
func CompanyFilterKeys() []string {
	return []string{FilterSearch, FilterMinEmployees, FilterMaxEmployees}
}

func JobFilterKeys() []string {
	return []string{FilterSearch, FilterMinSalary, FilterMaxSalary, FilterMinEquity}
}
