package service

import (
	"context"
	"time"

	"jobly/internal/models"
	"jobly/internal/storage/redis"

	"go.uber.org/zap"
)

// JobStore is implemented by *postgres.Store.
type JobStore interface {
	ListJobs(ctx context.Context) ([]models.JobSummary, error)
	ListJobsFiltered(ctx context.Context, filter models.JobFilter) ([]models.JobSummary, error)
	GetJob(ctx context.Context, id int64) (*models.JobDetail, error)
	CreateJob(ctx context.Context, j models.NewJob) (*models.Job, error)
	UpdateJob(ctx context.Context, id int64, upd models.JobUpdate) (*models.Job, error)
	DeleteJob(ctx context.Context, id int64) (*models.JobSummary, error)
}

type Jobs struct {
	store JobStore
	cache cacheAside
}

func NewJobs(store JobStore, cache Cache, ttl time.Duration, logger *zap.Logger) *Jobs {
	return &Jobs{
		store: store,
		cache: cacheAside{cache: cache, ttl: ttl, logger: logger},
	}
}

// List returns jobs matching filter ordered by title. The unfiltered listing
// is newest first.
func (s *Jobs) List(ctx context.Context, filter models.JobFilter) ([]models.JobSummary, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	key := redis.ListingKey(redis.ResourceJobs, filter.Encode())
	var jobs []models.JobSummary
	if s.cache.load(ctx, key, &jobs) {
		return jobs, nil
	}

	var err error
	if filter.IsEmpty() {
		jobs, err = s.store.ListJobs(ctx)
	} else {
		jobs, err = s.store.ListJobsFiltered(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	s.cache.store(ctx, key, jobs)
	return jobs, nil
}

// Get returns the job with its company, or nil if id is unknown.
func (s *Jobs) Get(ctx context.Context, id int64) (*models.JobDetail, error) {
	key := redis.JobKey(id)

	var cached models.JobDetail
	if s.cache.load(ctx, key, &cached) {
		return &cached, nil
	}

	job, err := s.store.GetJob(ctx, id)
	if err != nil || job == nil {
		return nil, err
	}

	s.cache.store(ctx, key, job)
	return job, nil
}

func (s *Jobs) Create(ctx context.Context, j models.NewJob) (*models.Job, error) {
	job, err := s.store.CreateJob(ctx, j)
	if err != nil {
		return nil, err
	}

	s.cache.drop(ctx, redis.CompanyKey(job.CompanyHandle))
	s.cache.dropMatching(ctx, redis.ListingPattern(redis.ResourceJobs))
	return job, nil
}

// Update applies upd and returns nil if id is unknown. Moving a job to
// another company leaves the previous owner's cached detail stale, so in
// that case every company detail is dropped.
func (s *Jobs) Update(ctx context.Context, id int64, upd models.JobUpdate) (*models.Job, error) {
	job, err := s.store.UpdateJob(ctx, id, upd)
	if err != nil || job == nil {
		return nil, err
	}

	s.cache.drop(ctx, redis.JobKey(id), redis.CompanyKey(job.CompanyHandle))
	patterns := []string{redis.ListingPattern(redis.ResourceJobs)}
	if upd.CompanyHandle.IsSet() {
		patterns = append(patterns, redis.CompanyPattern())
	}
	s.cache.dropMatching(ctx, patterns...)
	return job, nil
}

func (s *Jobs) Delete(ctx context.Context, id int64) (*models.JobSummary, error) {
	deleted, err := s.store.DeleteJob(ctx, id)
	if err != nil || deleted == nil {
		return nil, err
	}

	s.cache.drop(ctx, redis.JobKey(id), redis.CompanyKey(deleted.CompanyHandle))
	s.cache.dropMatching(ctx, redis.ListingPattern(redis.ResourceJobs))
	return deleted, nil
}
