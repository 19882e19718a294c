package handlers

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"jobly/internal/models"
	"jobly/internal/query"
)

// ArgError describes a command argument the user got wrong.
type ArgError struct {
	Key    string
	Reason string
}

func (e *ArgError) Error() string {
	if e.Key == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Reason)
}

// parseArgs splits a command payload of key=value pairs. A word without "="
// continues the previous value, so "search=big corp" keeps the space.
func parseArgs(payload string, allowed []string) (url.Values, error) {
	values := url.Values{}
	var last string

	for _, word := range strings.Fields(payload) {
		key, value, ok := strings.Cut(word, "=")
		if !ok {
			if last == "" {
				return nil, &ArgError{Reason: fmt.Sprintf("expected key=value, got %q", word)}
			}
			values.Set(last, values.Get(last)+" "+word)
			continue
		}

		key = strings.ToLower(key)
		if !contains(allowed, key) {
			return nil, &ArgError{Key: key, Reason: "unknown filter, expected one of " + strings.Join(allowed, ", ")}
		}
		if values.Has(key) {
			return nil, &ArgError{Key: key, Reason: "given twice"}
		}
		values.Set(key, value)
		last = key
	}

	return values, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// ParseCompanyFilter reads a /companies payload.
func ParseCompanyFilter(payload string) (models.CompanyFilter, error) {
	values, err := parseArgs(payload, models.CompanyFilterKeys())
	if err != nil {
		return models.CompanyFilter{}, err
	}
	return companyFilterFromValues(values)
}

// ParseJobFilter reads a /jobs payload.
func ParseJobFilter(payload string) (models.JobFilter, error) {
	values, err := parseArgs(payload, models.JobFilterKeys())
	if err != nil {
		return models.JobFilter{}, err
	}
	return jobFilterFromValues(values)
}

// companyFilterFromValues also decodes the filter carried by pagination
// buttons, which is the output of CompanyFilter.Encode.
func companyFilterFromValues(v url.Values) (models.CompanyFilter, error) {
	var f models.CompanyFilter
	var err error

	if f.Search, err = searchArg(v); err != nil {
		return f, err
	}
	if f.MinEmployees, err = intArg(v, models.FilterMinEmployees); err != nil {
		return f, err
	}
	if f.MaxEmployees, err = intArg(v, models.FilterMaxEmployees); err != nil {
		return f, err
	}
	return f, nil
}

func jobFilterFromValues(v url.Values) (models.JobFilter, error) {
	var f models.JobFilter
	var err error

	if f.Search, err = searchArg(v); err != nil {
		return f, err
	}
	if f.MinSalary, err = floatArg(v, models.FilterMinSalary); err != nil {
		return f, err
	}
	if f.MaxSalary, err = floatArg(v, models.FilterMaxSalary); err != nil {
		return f, err
	}
	if f.MinEquity, err = floatArg(v, models.FilterMinEquity); err != nil {
		return f, err
	}
	return f, nil
}

// searchArg rejects an empty search; at the store level an empty search
// would match everything.
func searchArg(v url.Values) (query.Optional[string], error) {
	if !v.Has(models.FilterSearch) {
		return query.None[string](), nil
	}
	s := strings.TrimSpace(v.Get(models.FilterSearch))
	if s == "" {
		return query.None[string](), &ArgError{Key: models.FilterSearch, Reason: "must not be empty"}
	}
	return query.Some(s), nil
}

func intArg(v url.Values, key string) (query.Optional[int], error) {
	if !v.Has(key) {
		return query.None[int](), nil
	}
	n, err := strconv.Atoi(v.Get(key))
	if err != nil {
		return query.None[int](), &ArgError{Key: key, Reason: "must be a whole number"}
	}
	return query.Some(n), nil
}

func floatArg(v url.Values, key string) (query.Optional[float64], error) {
	if !v.Has(key) {
		return query.None[float64](), nil
	}
	x, err := strconv.ParseFloat(v.Get(key), 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return query.None[float64](), &ArgError{Key: key, Reason: "must be a number"}
	}
	return query.Some(x), nil
}
