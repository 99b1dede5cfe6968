package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/varexpand/pkg/varexpand"
)

// MemoryStore is an in-memory template store.
// Data is lost when the process exits.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[string]storedTemplate
	closed    bool
}

type storedTemplate struct {
	id       string
	template string
	updated  time.Time
}

// NewMemoryStore creates a new in-memory template store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		templates: make(map[string]storedTemplate),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(name, template string) error {
	if name == "" {
		return ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	id := uuid.New().String()
	if prev, ok := m.templates[name]; ok {
		id = prev.id
	}
	m.templates[name] = storedTemplate{
		id:       id,
		template: template,
		updated:  time.Now().UTC(),
	}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", ErrStoreClosed
	}

	st, ok := m.templates[name]
	if !ok {
		return "", ErrNotFound
	}
	return st.template, nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.templates))
	for name, st := range m.templates {
		infos = append(infos, Info{
			ID:      st.id,
			Name:    name,
			Keys:    string(varexpand.Keys(st.template)),
			Size:    int64(len(st.template)),
			Updated: st.updated,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.templates, name)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.templates = nil
	return nil
}
