// Package store persists named templates.
package store

import (
	"errors"
	"time"
)

// Store persists named templates.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a template under name, replacing any previous template
	// with that name. The template's ID is kept across replacements.
	Save(name, template string) error

	// Load retrieves a template.
	// Returns ErrNotFound if no template has that name.
	Load(name string) (string, error)

	// List returns metadata for all templates, ordered by name.
	// Returns empty slice (not error) if the store is empty.
	List() ([]Info, error)

	// Delete removes a template.
	// Returns nil if no template has that name.
	Delete(name string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info describes a stored template without its text.
type Info struct {
	ID      string
	Name    string
	Keys    string // variable keys the template references, in first-use order
	Size    int64
	Updated time.Time
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no template has the requested name.
	ErrNotFound = errors.New("template not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("template store closed")

	// ErrEmptyName indicates a template name that is empty.
	ErrEmptyName = errors.New("template name is empty")
)
