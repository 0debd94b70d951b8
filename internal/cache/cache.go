// Package cache provides the read-through cache used by the services.
// Entries are JSON encoded, expire after an explicit TTL, and are
// invalidated by key when the underlying rows change.
package cache

import (
	"context"
	"strconv"
	"time"
)

// Cache is injected into services. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get decodes the entry stored under key into dest. It reports false
	// when the key is missing or expired.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

// Keys shared by readers and the writers that invalidate them.
const (
	KeyPropertyCount = "countProperties"
	KeyTopProperties = "topProperty"
	KeyAllEmployees  = "allEmployees"
)

func PropertyKey(id uint) string {
	return "property:" + strconv.FormatUint(uint64(id), 10)
}

func EmployeeKey(id uint) string {
	return "employee:" + strconv.FormatUint(uint64(id), 10)
}

// Noop never stores anything. It is used when no Redis server is
// configured so callers always go to the database.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error { return nil }
func (Noop) Ping(context.Context) error { return nil }
