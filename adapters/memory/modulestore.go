// Package memory provides in-memory implementations of storage ports,
// used in tests and for ephemeral registries.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/blackroad/terramod/domain/module"
	"github.com/blackroad/terramod/ports"
)

// ModuleStore is an in-memory implementation of ports.ModuleStore.
type ModuleStore struct {
	mu      sync.RWMutex
	modules map[string]module.Module // by ID
	byName  map[string]string        // name -> ID
}

// NewModuleStore creates a new in-memory module store.
func NewModuleStore() *ModuleStore {
	return &ModuleStore{
		modules: make(map[string]module.Module),
		byName:  make(map[string]string),
	}
}

// Create stores a new module.
func (s *ModuleStore) Create(ctx context.Context, m module.Module) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[m.Name]; exists {
		return fmt.Errorf("module name %q already exists", m.Name)
	}
	if _, exists := s.modules[m.ID]; exists {
		return fmt.Errorf("module id %q already exists", m.ID)
	}
	s.modules[m.ID] = m
	s.byName[m.Name] = m.ID
	return nil
}

// Get retrieves a module by ID or unique name.
func (s *ModuleStore) Get(ctx context.Context, idOrName string) (module.Module, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.modules[idOrName]; ok {
		return m, nil
	}
	if id, ok := s.byName[idOrName]; ok {
		return s.modules[id], nil
	}
	return module.Module{}, ports.ErrNotFound
}

// List returns modules matching the filter, most downloaded first, then by name.
func (s *ModuleStore) List(ctx context.Context, f ports.ModuleFilter) ([]module.Module, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []module.Module
	for _, m := range s.modules {
		if f.Provider != "" && m.Provider != f.Provider {
			continue
		}
		if f.ResourceType != "" && m.ResourceType != f.ResourceType {
			continue
		}
		out = append(out, m)
	}
	sortModules(out)
	return out, nil
}

// Search matches the query case-insensitively against name, description,
// provider, resource type, and tags.
func (s *ModuleStore) Search(ctx context.Context, query string) ([]module.Module, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	var out []module.Module
	for _, m := range s.modules {
		if matches(m, q) {
			out = append(out, m)
		}
	}
	sortModules(out)
	return out, nil
}

// Delete removes a module by ID or name.
func (s *ModuleStore) Delete(ctx context.Context, idOrName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := idOrName
	if _, ok := s.modules[id]; !ok {
		mapped, ok := s.byName[idOrName]
		if !ok {
			return ports.ErrNotFound
		}
		id = mapped
	}
	m := s.modules[id]
	delete(s.modules, id)
	delete(s.byName, m.Name)
	return nil
}

// IncrementDownloads bumps the usage counter by one.
func (s *ModuleStore) IncrementDownloads(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.modules[id]
	if !ok {
		return ports.ErrNotFound
	}
	m.DownloadCount++
	s.modules[id] = m
	return nil
}

// Count returns the number of stored modules.
func (s *ModuleStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.modules)), nil
}

// Stats aggregates registry statistics.
func (s *ModuleStore) Stats(ctx context.Context) (ports.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byProvider := make(map[module.Provider]int64)
	var all []module.Module
	for _, m := range s.modules {
		byProvider[m.Provider]++
		all = append(all, m)
	}
	sortModules(all)

	st := ports.Stats{TotalModules: int64(len(all))}
	for p, c := range byProvider {
		st.ByProvider = append(st.ByProvider, ports.ProviderCount{Provider: p, Count: c})
	}
	sort.Slice(st.ByProvider, func(i, j int) bool {
		a, b := st.ByProvider[i], st.ByProvider[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Provider < b.Provider
	})
	for i, m := range all {
		if i == 5 {
			break
		}
		st.MostDownloaded = append(st.MostDownloaded, ports.DownloadEntry{
			Name:      m.Name,
			Provider:  m.Provider,
			Downloads: m.DownloadCount,
		})
	}
	return st, nil
}

func sortModules(mods []module.Module) {
	sort.Slice(mods, func(i, j int) bool {
		if mods[i].DownloadCount != mods[j].DownloadCount {
			return mods[i].DownloadCount > mods[j].DownloadCount
		}
		return mods[i].Name < mods[j].Name
	})
}

func matches(m module.Module, q string) bool {
	if strings.Contains(strings.ToLower(m.Name), q) ||
		strings.Contains(strings.ToLower(m.Description), q) ||
		strings.Contains(strings.ToLower(string(m.Provider)), q) ||
		strings.Contains(strings.ToLower(m.ResourceType), q) {
		return true
	}
	for _, t := range m.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// Ensure interface compliance.
var _ ports.ModuleStore = (*ModuleStore)(nil)
