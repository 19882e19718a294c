package handlers

import (
	"context"

	"jobly/internal/config"
	"jobly/internal/models"

	"go.uber.org/zap"
)

// CompanyService is the read side of service.Companies.
type CompanyService interface {
	List(ctx context.Context, filter models.CompanyFilter) ([]models.CompanySummary, error)
	Get(ctx context.Context, handle string) (*models.CompanyDetail, error)
}

// JobService is the read side of service.Jobs.
type JobService interface {
	List(ctx context.Context, filter models.JobFilter) ([]models.JobSummary, error)
	Get(ctx context.Context, id int64) (*models.JobDetail, error)
}

// Context contains deps for all handlers
type Context struct {
	Companies CompanyService
	Jobs      JobService
	Config    *config.Config
	Logger    *zap.Logger
}

// queryContext bounds a single handler's store and cache work.
func (h *Context) queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), h.Config.QueryTimeout)
}
