package models_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"jobly/internal/models"
	"jobly/internal/query"
)

func TestCompanyUpdate_FieldsKeepDeclarationOrder(t *testing.T) {
	n := 200
	upd := models.CompanyUpdate{
		LogoURL:      query.Some[*string](nil),
		NumEmployees: query.Some(&n),
	}

	fields := upd.Fields()
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2: %#v", len(fields), fields)
	}
	if fields[0].Column != "num_employees" || fields[1].Column != "logo_url" {
		t.Errorf("columns = %s, %s", fields[0].Column, fields[1].Column)
	}
	if fields[0].Value != &n {
		t.Errorf("num_employees value = %v", fields[0].Value)
	}
	if p, ok := fields[1].Value.(*string); !ok || p != nil {
		t.Errorf("logo_url should be an explicit nil *string, got %#v", fields[1].Value)
	}
}

func TestJobUpdate_EmptyPayload(t *testing.T) {
	if fields := (models.JobUpdate{}).Fields(); len(fields) != 0 {
		t.Errorf("empty update produced fields: %#v", fields)
	}
}

func TestUserUpdate_ZeroValuesArePresent(t *testing.T) {
	upd := models.UserUpdate{FirstName: query.Some("")}

	want := []query.Field{{Column: "first_name", Value: ""}}
	if got := upd.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("fields = %#v, want %#v", got, want)
	}
}

func TestCompanyFilter_Validate(t *testing.T) {
	ok := models.CompanyFilter{MinEmployees: query.Some(55), MaxEmployees: query.Some(90)}
	if err := ok.Validate(); err != nil {
		t.Errorf("55..90: unexpected error %v", err)
	}

	bad := models.CompanyFilter{MinEmployees: query.Some(91), MaxEmployees: query.Some(90)}
	if err := bad.Validate(); !errors.Is(err, query.ErrInvalidFilter) {
		t.Errorf("91..90: err = %v, want ErrInvalidFilter", err)
	}
}

func TestJobFilter_Validate(t *testing.T) {
	bad := models.JobFilter{MinSalary: query.Some(100.5), MaxSalary: query.Some(100.0)}
	if err := bad.Validate(); !errors.Is(err, query.ErrInvalidFilter) {
		t.Errorf("err = %v, want ErrInvalidFilter", err)
	}

	equityOnly := models.JobFilter{MinEquity: query.Some(0.9)}
	if err := equityOnly.Validate(); err != nil {
		t.Errorf("unexpected error %v", err)
	}

	nanEquity := models.JobFilter{MinEquity: query.Some(math.NaN())}
	if err := nanEquity.Validate(); !errors.Is(err, query.ErrInvalidFilter) {
		t.Errorf("NaN equity: err = %v, want ErrInvalidFilter", err)
	}
}

func TestFilter_IsEmpty(t *testing.T) {
	if !(models.CompanyFilter{}).IsEmpty() {
		t.Error("zero CompanyFilter should be empty")
	}
	if (models.CompanyFilter{MinEmployees: query.Some(0)}).IsEmpty() {
		t.Error("a zero bound is still a constraint")
	}
	if (models.JobFilter{Search: query.Some("")}).IsEmpty() {
		t.Error("an explicit empty search is still a constraint")
	}
}

func TestFilter_Encode(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"empty company", models.CompanyFilter{}.Encode(), ""},
		{
			"company sorted by key",
			models.CompanyFilter{
				Search:       query.Some("net"),
				MinEmployees: query.Some(10),
				MaxEmployees: query.Some(0),
			}.Encode(),
			"max_employees=0&min_employees=10&search=net",
		},
		{"empty search is present", models.CompanyFilter{Search: query.Some("")}.Encode(), "search="},
		{
			"job floats",
			models.JobFilter{MinSalary: query.Some(50000.0), MinEquity: query.Some(0.05)}.Encode(),
			"min_equity=0.05&min_salary=50000",
		},
		{"search is escaped", models.JobFilter{Search: query.Some("a&b")}.Encode(), "search=a%26b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Encode() = %q, want %q", tt.got, tt.want)
			}
		})
	}
}
