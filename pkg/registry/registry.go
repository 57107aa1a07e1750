// Package registry maps names to minters, fetchers and provider factories.
// It replaces dynamic plugin discovery with explicit registration calls
// made once at service initialization; after that the registry is treated
// as read-only.
package registry

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"gorm.io/gorm"

	"github.com/inveniosoftware/invenio-pidstore/pkg/fetchers"
	"github.com/inveniosoftware/invenio-pidstore/pkg/minters"
	"github.com/inveniosoftware/invenio-pidstore/pkg/providers"
)

// ProviderFactory constructs providers for one pid type.
type ProviderFactory struct {
	// PIDType tags the identifiers the factory's providers manage.
	// Required, max 6 characters.
	PIDType string

	// Create mints a new identifier, optionally assigning an object.
	Create func(db *gorm.DB, objectType *string, objectUUID *uuid.UUID) (providers.Provider, error)

	// Get wraps an existing identifier by value.
	Get func(db *gorm.DB, pidValue string) (providers.Provider, error)
}

func (f ProviderFactory) validate() error {
	var result *multierror.Error
	if f.PIDType == "" {
		result = multierror.Append(result,
			fmt.Errorf("provider factory is missing a pid type"))
	}
	if len(f.PIDType) > 6 {
		result = multierror.Append(result,
			fmt.Errorf("pid type %q exceeds 6 characters", f.PIDType))
	}
	if f.Create == nil {
		result = multierror.Append(result,
			fmt.Errorf("provider factory %q has no create operation", f.PIDType))
	}
	if f.Get == nil {
		result = multierror.Append(result,
			fmt.Errorf("provider factory %q has no get operation", f.PIDType))
	}
	return result.ErrorOrNil()
}

// Registry holds the named minters, fetchers and provider factories of one
// process.
type Registry struct {
	minters   map[string]minters.Minter
	fetchers  map[string]fetchers.Fetcher
	providers map[string]ProviderFactory
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		minters:   make(map[string]minters.Minter),
		fetchers:  make(map[string]fetchers.Fetcher),
		providers: make(map[string]ProviderFactory),
	}
}

// RegisterMinter adds a named minter. Duplicate names and nil minters are
// rejected.
func (r *Registry) RegisterMinter(name string, m minters.Minter) error {
	if name == "" || m == nil {
		return fmt.Errorf("minter registration requires a name and a function")
	}
	if _, exists := r.minters[name]; exists {
		return fmt.Errorf("minter %q is already registered", name)
	}
	r.minters[name] = m
	return nil
}

// RegisterFetcher adds a named fetcher. Duplicate names and nil fetchers
// are rejected.
func (r *Registry) RegisterFetcher(name string, f fetchers.Fetcher) error {
	if name == "" || f == nil {
		return fmt.Errorf("fetcher registration requires a name and a function")
	}
	if _, exists := r.fetchers[name]; exists {
		return fmt.Errorf("fetcher %q is already registered", name)
	}
	r.fetchers[name] = f
	return nil
}

// RegisterProvider adds a provider factory keyed by its pid type. The
// factory is validated up front so a malformed provider is rejected at
// startup, not at first use.
func (r *Registry) RegisterProvider(f ProviderFactory) error {
	if err := f.validate(); err != nil {
		return err
	}
	if _, exists := r.providers[f.PIDType]; exists {
		return fmt.Errorf("provider for pid type %q is already registered", f.PIDType)
	}
	r.providers[f.PIDType] = f
	return nil
}

// Minter returns the named minter.
func (r *Registry) Minter(name string) (minters.Minter, error) {
	m, ok := r.minters[name]
	if !ok {
		return nil, fmt.Errorf("unknown minter: %q", name)
	}
	return m, nil
}

// Fetcher returns the named fetcher.
func (r *Registry) Fetcher(name string) (fetchers.Fetcher, error) {
	f, ok := r.fetchers[name]
	if !ok {
		return nil, fmt.Errorf("unknown fetcher: %q", name)
	}
	return f, nil
}

// Provider returns the factory registered for a pid type.
func (r *Registry) Provider(pidType string) (ProviderFactory, error) {
	f, ok := r.providers[pidType]
	if !ok {
		return ProviderFactory{}, fmt.Errorf("no provider registered for pid type %q", pidType)
	}
	return f, nil
}

// MinterNames lists registered minters in sorted order.
func (r *Registry) MinterNames() []string {
	return sortedKeys(r.minters)
}

// FetcherNames lists registered fetchers in sorted order.
func (r *Registry) FetcherNames() []string {
	return sortedKeys(r.fetchers)
}

// ProviderTypes lists pid types with a registered provider in sorted
// order.
func (r *Registry) ProviderTypes() []string {
	return sortedKeys(r.providers)
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
