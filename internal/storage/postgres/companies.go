package postgres

import (
	"context"
	"fmt"

	"jobly/internal/models"
	"jobly/internal/query"

	"go.uber.org/zap"
)

const companyColumns = "handle, name, num_employees, description, logo_url"

var companyReserved = query.Deny("handle")

// companyListing builds the company listing for f. An out-of-order employee
// range fails before any SQL is produced.
func companyListing(f models.CompanyFilter) (query.Statement, error) {
	if err := f.Validate(); err != nil {
		return query.Statement{}, err
	}

	l := query.NewListing("SELECT handle, name FROM companies", "name")
	if s, ok := f.Search.Get(); ok {
		l.Contains("name", s)
	}
	if n, ok := f.MinEmployees.Get(); ok {
		l.Where("num_employees", ">=", n)
	}
	if n, ok := f.MaxEmployees.Get(); ok {
		l.Where("num_employees", "<=", n)
	}
	return l.Build(), nil
}

func (s *Store) ListCompanies(ctx context.Context) ([]models.CompanySummary, error) {
	return s.ListCompaniesFiltered(ctx, models.CompanyFilter{})
}

func (s *Store) ListCompaniesFiltered(ctx context.Context, filter models.CompanyFilter) ([]models.CompanySummary, error) {
	stmt, err := companyListing(filter)
	if err != nil {
		return nil, err
	}

	companies := []models.CompanySummary{}
	if _, err := s.q.Query(ctx, stmt, &companies); err != nil {
		s.logger.Error("failed to list companies", zap.Error(err))
		return nil, fmt.Errorf("list companies: %w", err)
	}

	s.logger.Debug("companies listed", zap.Int("count", len(companies)))
	return companies, nil
}

// GetCompany returns the company with its jobs, or nil if handle is unknown.
func (s *Store) GetCompany(ctx context.Context, handle string) (*models.CompanyDetail, error) {
	var company models.Company

	stmt := query.Raw(`SELECT `+companyColumns+` FROM companies WHERE handle = $1`, handle)
	n, err := s.q.Query(ctx, stmt, &company)
	if err != nil {
		s.logger.Error("failed to get company",
			zap.String("handle", handle),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get company: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	jobs, err := s.JobsForCompany(ctx, handle)
	if err != nil {
		return nil, err
	}

	return &models.CompanyDetail{Company: company, Jobs: jobs}, nil
}

func (s *Store) CreateCompany(ctx context.Context, c models.NewCompany) (*models.Company, error) {
	var company models.Company

	stmt := query.Raw(`
		INSERT INTO companies (handle, name, num_employees, description, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+companyColumns,
		c.Handle, c.Name, c.NumEmployees, c.Description, c.LogoURL,
	)
	if _, err := s.q.Query(ctx, stmt, &company); err != nil {
		s.logger.Error("failed to create company",
			zap.String("handle", c.Handle),
			zap.Error(err),
		)
		return nil, fmt.Errorf("create company: %w", err)
	}

	s.logger.Info("company created", zap.String("handle", company.Handle))
	return &company, nil
}

// UpdateCompany applies the present fields of upd. It returns nil when no
// company has that handle and query.ErrEmptyUpdate when upd sets nothing.
func (s *Store) UpdateCompany(ctx context.Context, handle string, upd models.CompanyUpdate) (*models.Company, error) {
	stmt, err := query.PartialUpdate("companies", upd.Fields(), query.Field{Column: "handle", Value: handle}, companyReserved)
	if err != nil {
		return nil, err
	}

	var company models.Company
	n, err := s.q.Query(ctx, stmt, &company)
	if err != nil {
		s.logger.Error("failed to update company",
			zap.String("handle", handle),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update company: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	s.logger.Info("company updated", zap.String("handle", handle))
	return &company, nil
}

// DeleteCompany removes the company and returns its handle and name, or nil
// if it did not exist.
func (s *Store) DeleteCompany(ctx context.Context, handle string) (*models.CompanySummary, error) {
	var deleted models.CompanySummary

	stmt := query.Raw(`DELETE FROM companies WHERE handle = $1 RETURNING handle, name`, handle)
	n, err := s.q.Query(ctx, stmt, &deleted)
	if err != nil {
		s.logger.Error("failed to delete company",
			zap.String("handle", handle),
			zap.Error(err),
		)
		return nil, fmt.Errorf("delete company: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	s.logger.Info("company deleted", zap.String("handle", handle))
	return &deleted, nil
}
