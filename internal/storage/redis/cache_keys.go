package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

const (
	RateLimitWindowTTL = time.Minute

	keyPrefix = "jobly:"
)

// Resources whose listings are cached.
const (
	ResourceCompanies = "companies"
	ResourceJobs      = "jobs"
)

func CompanyKey(handle string) string {
	return keyPrefix + "company:" + handle
}

func JobKey(id int64) string {
	return keyPrefix + "job:" + strconv.FormatInt(id, 10)
}

// ListingKey identifies a listing by the canonical encoding of its filter.
// An empty filter is the unfiltered listing.
func ListingKey(resource, filter string) string {
	return fmt.Sprintf("%slist:%s:%016x", keyPrefix, resource, xxhash.Sum64String(filter))
}

// ListingPattern matches every cached listing of resource.
func ListingPattern(resource string) string {
	return keyPrefix + "list:" + resource + ":*"
}

// JobPattern matches every cached job detail.
func JobPattern() string {
	return keyPrefix + "job:*"
}

// CompanyPattern matches every cached company detail.
func CompanyPattern() string {
	return keyPrefix + "company:*"
}

func RateLimitKey(userID int64) string {
	return fmt.Sprintf("%sratelimit:user:%d", keyPrefix, userID)
}

func (c *Cache) IncrementUserRateLimit(ctx context.Context, userID int64) (int64, error) {
	return c.IncrementWithExpiry(ctx, RateLimitKey(userID), RateLimitWindowTTL)
}
