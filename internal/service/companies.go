package service

import (
	"context"
	"time"

	"jobly/internal/models"
	"jobly/internal/storage/redis"

	"go.uber.org/zap"
)

// CompanyStore is implemented by *postgres.Store.
type CompanyStore interface {
	ListCompanies(ctx context.Context) ([]models.CompanySummary, error)
	ListCompaniesFiltered(ctx context.Context, filter models.CompanyFilter) ([]models.CompanySummary, error)
	GetCompany(ctx context.Context, handle string) (*models.CompanyDetail, error)
	CreateCompany(ctx context.Context, c models.NewCompany) (*models.Company, error)
	UpdateCompany(ctx context.Context, handle string, upd models.CompanyUpdate) (*models.Company, error)
	DeleteCompany(ctx context.Context, handle string) (*models.CompanySummary, error)
}

type Companies struct {
	store CompanyStore
	cache cacheAside
}

// NewCompanies returns a company service. cache may be nil, in which case
// every read goes to the store.
func NewCompanies(store CompanyStore, cache Cache, ttl time.Duration, logger *zap.Logger) *Companies {
	return &Companies{
		store: store,
		cache: cacheAside{cache: cache, ttl: ttl, logger: logger},
	}
}

// List returns companies matching filter ordered by name. An invalid
// employee range is rejected before the cache or the store is consulted.
func (s *Companies) List(ctx context.Context, filter models.CompanyFilter) ([]models.CompanySummary, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	key := redis.ListingKey(redis.ResourceCompanies, filter.Encode())
	var companies []models.CompanySummary
	if s.cache.load(ctx, key, &companies) {
		return companies, nil
	}

	var err error
	if filter.IsEmpty() {
		companies, err = s.store.ListCompanies(ctx)
	} else {
		companies, err = s.store.ListCompaniesFiltered(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	s.cache.store(ctx, key, companies)
	return companies, nil
}

// Get returns the company and its jobs, or nil if handle is unknown.
func (s *Companies) Get(ctx context.Context, handle string) (*models.CompanyDetail, error) {
	key := redis.CompanyKey(handle)

	var cached models.CompanyDetail
	if s.cache.load(ctx, key, &cached) {
		return &cached, nil
	}

	company, err := s.store.GetCompany(ctx, handle)
	if err != nil || company == nil {
		return nil, err
	}

	s.cache.store(ctx, key, company)
	return company, nil
}

func (s *Companies) Create(ctx context.Context, c models.NewCompany) (*models.Company, error) {
	company, err := s.store.CreateCompany(ctx, c)
	if err != nil {
		return nil, err
	}

	s.cache.dropMatching(ctx, redis.ListingPattern(redis.ResourceCompanies))
	return company, nil
}

// Update applies upd and returns nil if handle is unknown. Cached job
// details embed their company, so they are dropped too.
func (s *Companies) Update(ctx context.Context, handle string, upd models.CompanyUpdate) (*models.Company, error) {
	company, err := s.store.UpdateCompany(ctx, handle, upd)
	if err != nil || company == nil {
		return nil, err
	}

	s.cache.drop(ctx, redis.CompanyKey(handle))
	s.cache.dropMatching(ctx, redis.ListingPattern(redis.ResourceCompanies), redis.JobPattern())
	return company, nil
}

// Delete removes the company. Its jobs go with it through the foreign key,
// so every job entry in the cache is dropped as well.
func (s *Companies) Delete(ctx context.Context, handle string) (*models.CompanySummary, error) {
	deleted, err := s.store.DeleteCompany(ctx, handle)
	if err != nil || deleted == nil {
		return nil, err
	}

	s.cache.drop(ctx, redis.CompanyKey(handle))
	s.cache.dropMatching(ctx,
		redis.ListingPattern(redis.ResourceCompanies),
		redis.ListingPattern(redis.ResourceJobs),
		redis.JobPattern(),
	)
	return deleted, nil
}
