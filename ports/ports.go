// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/blackroad/terramod/domain/module"
)

// ErrNotFound is returned when no module matches the given id or name.
var ErrNotFound = errors.New("module not found")

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// ModuleFilter narrows List results. Zero values match everything.
type ModuleFilter struct {
	Provider     module.Provider
	ResourceType string
}

// ProviderCount is one row of the by-provider statistics breakdown.
type ProviderCount struct {
	Provider module.Provider
	Count    int64
}

// DownloadEntry is one row of the most-downloaded statistics listing.
type DownloadEntry struct {
	Name      string
	Provider  module.Provider
	Downloads int64
}

// Stats summarizes the registry contents.
type Stats struct {
	TotalModules   int64
	ByProvider     []ProviderCount
	MostDownloaded []DownloadEntry
}

// ModuleStore persists module records. Get and Delete accept either the
// record ID or its unique name.
type ModuleStore interface {
	// Create stores a new module. Name collisions are an error.
	Create(ctx context.Context, m module.Module) error

	// Get retrieves a module by ID or unique name.
	Get(ctx context.Context, idOrName string) (module.Module, error)

	// List returns modules matching the filter, most downloaded first,
	// then by name.
	List(ctx context.Context, f ModuleFilter) ([]module.Module, error)

	// Search matches the query case-insensitively against name,
	// description, provider, resource type, and tags.
	Search(ctx context.Context, query string) ([]module.Module, error)

	// Delete removes a module by ID or name.
	Delete(ctx context.Context, idOrName string) error

	// IncrementDownloads bumps the usage counter by one.
	IncrementDownloads(ctx context.Context, id string) error

	// Count returns the number of stored modules.
	Count(ctx context.Context) (int64, error)

	// Stats aggregates registry statistics.
	Stats(ctx context.Context) (Stats, error)
}
