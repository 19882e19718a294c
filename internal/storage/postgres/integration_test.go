package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"jobly/internal/models"
	"jobly/internal/query"
	"jobly/internal/storage/postgres"

	"go.uber.org/zap/zaptest"
)

// newIntegrationStore connects to JOBLY_TEST_DSN, applies migrations and
// empties every table. Tests using it are skipped when the variable is unset.
func newIntegrationStore(t *testing.T) *postgres.Store {
	t.Helper()

	dsn := os.Getenv("JOBLY_TEST_DSN")
	if dsn == "" {
		t.Skip("JOBLY_TEST_DSN not set")
	}

	logger := zaptest.NewLogger(t)
	if err := postgres.Migrate(dsn, "../../../migrations", logger); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	raw, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer raw.Close()
	if _, err := raw.Exec(`TRUNCATE companies, jobs, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	store, err := postgres.New(dsn, logger)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedCompanies(t *testing.T, store *postgres.Store) {
	t.Helper()
	ctx := context.Background()

	for _, c := range []models.NewCompany{
		{Handle: "test_company_a", Name: "Test Company AAA", NumEmployees: intPtr(100)},
		{Handle: "test_company_b", Name: "Test Company BAA", NumEmployees: intPtr(50)},
		{Handle: "test_company_c", Name: "Test Company CCC", NumEmployees: intPtr(75)},
	} {
		if _, err := store.CreateCompany(ctx, c); err != nil {
			t.Fatalf("seed %s: %v", c.Handle, err)
		}
	}
}

func floatPtr(f float64) *float64 { return &f }

func TestIntegration_CreateCompany(t *testing.T) {
	store := newIntegrationStore(t)

	company, err := store.CreateCompany(context.Background(), models.NewCompany{
		Handle:       "test_company",
		Name:         "Test Company",
		NumEmployees: intPtr(100),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if company.Handle != "test_company" || *company.NumEmployees != 100 {
		t.Errorf("company = %#v", company)
	}
	if company.Description != nil || company.LogoURL != nil {
		t.Errorf("optional columns should be NULL: %#v", company)
	}
}

func TestIntegration_ListCompaniesFiltered(t *testing.T) {
	store := newIntegrationStore(t)
	seedCompanies(t, store)
	ctx := context.Background()

	companies, err := store.ListCompaniesFiltered(ctx, models.CompanyFilter{MinEmployees: query.Some(55)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(companies) != 2 || companies[0].Name != "Test Company AAA" || companies[1].Name != "Test Company CCC" {
		t.Errorf("companies = %#v", companies)
	}

	companies, err = store.ListCompaniesFiltered(ctx, models.CompanyFilter{
		Search:       query.Some("aa"),
		MinEmployees: query.Some(55),
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(companies) != 1 || companies[0].Handle != "test_company_a" {
		t.Errorf("companies = %#v", companies)
	}
}

func TestIntegration_UpdateCompany(t *testing.T) {
	store := newIntegrationStore(t)
	seedCompanies(t, store)
	ctx := context.Background()

	upd := models.CompanyUpdate{NumEmployees: query.Some(intPtr(200))}

	company, err := store.UpdateCompany(ctx, "test_company_c", upd)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if company == nil || *company.NumEmployees != 200 || company.Name != "Test Company CCC" {
		t.Fatalf("company = %#v", company)
	}

	missing, err := store.UpdateCompany(ctx, "no_such_company", upd)
	if err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if missing != nil {
		t.Errorf("missing = %#v, want nil", missing)
	}
}

func TestIntegration_DeleteLastJobEmptiesCompanyJobs(t *testing.T) {
	store := newIntegrationStore(t)
	seedCompanies(t, store)
	ctx := context.Background()

	job, err := store.CreateJob(ctx, models.NewJob{
		Title:         "test_job_aaa",
		Salary:        floatPtr(100.01),
		Equity:        floatPtr(1),
		CompanyHandle: "test_company_a",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	detail, err := store.GetCompany(ctx, "test_company_a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.Jobs) != 1 {
		t.Fatalf("jobs = %#v", detail.Jobs)
	}

	deleted, err := store.DeleteJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted == nil || deleted.Title != "test_job_aaa" {
		t.Fatalf("deleted = %#v", deleted)
	}

	detail, err = store.GetCompany(ctx, "test_company_a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.Jobs) != 0 {
		t.Errorf("jobs = %#v, want empty", detail.Jobs)
	}

	again, err := store.DeleteJob(ctx, job.ID)
	if err != nil || again != nil {
		t.Errorf("second delete = %#v, %v; want nil, nil", again, err)
	}
}

func TestIntegration_JobFilters(t *testing.T) {
	store := newIntegrationStore(t)
	seedCompanies(t, store)
	ctx := context.Background()

	for _, j := range []models.NewJob{
		{Title: "test_job_aaa", Salary: floatPtr(100.01), Equity: floatPtr(1), CompanyHandle: "test_company_a"},
		{Title: "test_job_baa", Salary: floatPtr(50), Equity: floatPtr(0.5), CompanyHandle: "test_company_a"},
		{Title: "test_job_ccc", Salary: floatPtr(10), Equity: floatPtr(1), CompanyHandle: "test_company_b"},
	} {
		if _, err := store.CreateJob(ctx, j); err != nil {
			t.Fatalf("create job: %v", err)
		}
	}

	cases := []struct {
		name   string
		filter models.JobFilter
		want   []string
	}{
		{"search", models.JobFilter{Search: query.Some("aaa")}, []string{"test_job_aaa"}},
		{"min salary", models.JobFilter{MinSalary: query.Some(45.0)}, []string{"test_job_aaa", "test_job_baa"}},
		{"min equity", models.JobFilter{MinEquity: query.Some(0.9)}, []string{"test_job_aaa", "test_job_ccc"}},
		{"search and min salary", models.JobFilter{Search: query.Some("aa"), MinSalary: query.Some(90.0)}, []string{"test_job_aaa"}},
		{"literal underscore", models.JobFilter{Search: query.Some("b_a")}, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			jobs, err := store.ListJobsFiltered(ctx, tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			got := make([]string, 0, len(jobs))
			for _, j := range jobs {
				got = append(got, j.Title)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("titles = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("titles = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestIntegration_JobForUnknownCompany(t *testing.T) {
	store := newIntegrationStore(t)

	_, err := store.CreateJob(context.Background(), models.NewJob{Title: "orphan", CompanyHandle: "ghost"})
	if !errors.Is(err, postgres.ErrForeignKey) {
		t.Fatalf("err = %v, want ErrForeignKey", err)
	}
}

func TestIntegration_Users(t *testing.T) {
	store := newIntegrationStore(t)
	ctx := context.Background()

	nu := models.NewUser{
		Username:  "david",
		Password:  "$2a$04$notarealhashbutlongenough",
		FirstName: "David",
		LastName:  "D",
		Email:     "david@example.com",
	}
	if _, err := store.CreateUser(ctx, nu); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := store.CreateUser(ctx, nu); !errors.Is(err, postgres.ErrDuplicateKey) {
		t.Fatalf("duplicate err = %v, want ErrDuplicateKey", err)
	}

	user, err := store.UpdateUser(ctx, "david", models.UserUpdate{FirstName: query.Some("Dave")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.FirstName != "Dave" || user.Password != "" {
		t.Errorf("user = %#v", user)
	}

	creds, err := store.GetUserCredentials(ctx, "david")
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	if creds.Password != nu.Password {
		t.Errorf("stored hash = %q", creds.Password)
	}

	deleted, err := store.DeleteUser(ctx, "david")
	if err != nil || deleted == nil || deleted.Username != "david" {
		t.Fatalf("delete = %#v, %v", deleted, err)
	}
}
