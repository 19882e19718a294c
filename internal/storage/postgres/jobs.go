package postgres

import (
	"context"
	"fmt"

	"jobly/internal/models"
	"jobly/internal/query"

	"go.uber.org/zap"
)

const jobColumns = "id, title, salary, equity, company_handle, date_posted"

var jobReserved = query.Deny("id", "date_posted")

func jobListing(f models.JobFilter) (query.Statement, error) {
	if err := f.Validate(); err != nil {
		return query.Statement{}, err
	}

	l := query.NewListing("SELECT id, title, company_handle FROM jobs", "title")
	if s, ok := f.Search.Get(); ok {
		l.Contains("title", s)
	}
	if v, ok := f.MinSalary.Get(); ok {
		l.Where("salary", ">=", v)
	}
	if v, ok := f.MaxSalary.Get(); ok {
		l.Where("salary", "<=", v)
	}
	if v, ok := f.MinEquity.Get(); ok {
		l.Where("equity", ">=", v)
	}
	return l.Build(), nil
}

// ListJobs returns every job, newest first.
func (s *Store) ListJobs(ctx context.Context) ([]models.JobSummary, error) {
	stmt := query.Raw(`SELECT id, title, company_handle FROM jobs ORDER BY date_posted DESC, id DESC`)
	return s.listJobs(ctx, stmt)
}

// ListJobsFiltered returns jobs matching filter ordered by title.
func (s *Store) ListJobsFiltered(ctx context.Context, filter models.JobFilter) ([]models.JobSummary, error) {
	stmt, err := jobListing(filter)
	if err != nil {
		return nil, err
	}
	return s.listJobs(ctx, stmt)
}

func (s *Store) listJobs(ctx context.Context, stmt query.Statement) ([]models.JobSummary, error) {
	jobs := []models.JobSummary{}
	if _, err := s.q.Query(ctx, stmt, &jobs); err != nil {
		s.logger.Error("failed to list jobs", zap.Error(err))
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	s.logger.Debug("jobs listed", zap.Int("count", len(jobs)))
	return jobs, nil
}

// GetJob returns the job with its company, or nil if id is unknown.
func (s *Store) GetJob(ctx context.Context, id int64) (*models.JobDetail, error) {
	var job models.Job

	n, err := s.q.Query(ctx, query.Raw(`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id), &job)
	if err != nil {
		s.logger.Error("failed to get job",
			zap.Int64("job_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get job: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	var company models.Company
	stmt := query.Raw(`SELECT `+companyColumns+` FROM companies WHERE handle = $1`, job.CompanyHandle)
	n, err = s.q.Query(ctx, stmt, &company)
	if err != nil {
		s.logger.Error("failed to get job company",
			zap.Int64("job_id", id),
			zap.String("handle", job.CompanyHandle),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get job company: %w", err)
	}

	detail := &models.JobDetail{Job: job}
	if n > 0 {
		detail.Company = &company
	}
	return detail, nil
}

// JobsForCompany returns every job posted by the company with handle.
func (s *Store) JobsForCompany(ctx context.Context, handle string) ([]models.Job, error) {
	jobs := []models.Job{}

	stmt := query.Raw(`SELECT `+jobColumns+` FROM jobs WHERE company_handle = $1 ORDER BY id`, handle)
	if _, err := s.q.Query(ctx, stmt, &jobs); err != nil {
		s.logger.Error("failed to get company jobs",
			zap.String("handle", handle),
			zap.Error(err),
		)
		return nil, fmt.Errorf("jobs for company: %w", err)
	}

	return jobs, nil
}

func (s *Store) CreateJob(ctx context.Context, j models.NewJob) (*models.Job, error) {
	var job models.Job

	stmt := query.Raw(`
		INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING `+jobColumns,
		j.Title, j.Salary, j.Equity, j.CompanyHandle,
	)
	if _, err := s.q.Query(ctx, stmt, &job); err != nil {
		s.logger.Error("failed to create job",
			zap.String("handle", j.CompanyHandle),
			zap.Error(err),
		)
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.logger.Info("job created",
		zap.Int64("job_id", job.ID),
		zap.String("handle", job.CompanyHandle),
	)
	return &job, nil
}

func (s *Store) UpdateJob(ctx context.Context, id int64, upd models.JobUpdate) (*models.Job, error) {
	stmt, err := query.PartialUpdate("jobs", upd.Fields(), query.Field{Column: "id", Value: id}, jobReserved)
	if err != nil {
		return nil, err
	}

	var job models.Job
	n, err := s.q.Query(ctx, stmt, &job)
	if err != nil {
		s.logger.Error("failed to update job",
			zap.Int64("job_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update job: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	s.logger.Info("job updated", zap.Int64("job_id", id))
	return &job, nil
}

// DeleteJob removes the job and returns its id, title and company, or nil if
// it did not exist.
func (s *Store) DeleteJob(ctx context.Context, id int64) (*models.JobSummary, error) {
	var deleted models.JobSummary

	stmt := query.Raw(`DELETE FROM jobs WHERE id = $1 RETURNING id, title, company_handle`, id)
	n, err := s.q.Query(ctx, stmt, &deleted)
	if err != nil {
		s.logger.Error("failed to delete job",
			zap.Int64("job_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("delete job: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	s.logger.Info("job deleted", zap.Int64("job_id", id))
	return &deleted, nil
}
