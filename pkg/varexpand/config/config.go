package config

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/varexpand/pkg/varexpand"
)

// Config wraps a map[string]any for type-safe value extraction.
// All accessor methods return default values if the key is missing
// or the value cannot be converted to the requested type.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (c Config) String(key, defaultVal string) string {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	if s, ok := v.(string); ok {
		return s
	}
	return defaultVal
}

// StringMap returns the map value for key with every value rendered as a
// string, or nil if missing or not a map.
//
// Accepts map[string]any (scalar values are formatted with %v, nested
// maps and slices are skipped) and map[string]string.
func (c Config) StringMap(key string) map[string]string {
	v, ok := c.data[key]
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case map[string]string:
		return val
	case map[string]any:
		out := make(map[string]string, len(val))
		for k, item := range val {
			switch x := item.(type) {
			case map[string]any, []any, nil:
				continue
			case string:
				out[k] = x
			default:
				out[k] = fmt.Sprintf("%v", x)
			}
		}
		return out
	}
	return nil
}

// Has returns true if the key exists in the config.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Raw returns the underlying map.
// The returned map should not be modified.
func (c Config) Raw() map[string]any {
	return c.data
}

// ErrInvalidProfile is wrapped by every profile validation error.
var ErrInvalidProfile = errors.New("invalid profile")

// Profile is the expansion setup described by a config file.
type Profile struct {
	// Missing names the unknown-key behavior ("empty", "keep", "error").
	Missing string

	// Hash names the hash used by the H modifier ("elf", "xxhash").
	Hash string

	// Variables maps single-character keys to values.
	Variables map[string]string

	// Templates maps template names to template strings.
	Templates map[string]string

	// MissingAction, HashFunc and Table are Missing, Hash and Variables
	// parsed for varexpand.
	MissingAction varexpand.MissingAction
	HashFunc      varexpand.HashFunc
	Table         varexpand.Table
}

// Options returns the Expander options the profile selects.
func (p Profile) Options() []varexpand.Option {
	return []varexpand.Option{
		varexpand.WithMissingAction(p.MissingAction),
		varexpand.WithHashFunc(p.HashFunc),
	}
}

// Profile extracts and validates the expansion profile.
//
// Errors wrap ErrInvalidProfile and name the offending field.
func (c Config) Profile() (Profile, error) {
	for _, key := range []string{"missing", "hash"} {
		if err := c.checkString(key); err != nil {
			return Profile{}, err
		}
	}
	for _, key := range []string{"variables", "templates"} {
		if err := c.checkScalarMap(key); err != nil {
			return Profile{}, err
		}
	}

	p := Profile{
		Missing:   c.String("missing", ""),
		Hash:      c.String("hash", ""),
		Variables: c.StringMap("variables"),
		Templates: c.StringMap("templates"),
	}

	var err error
	if p.MissingAction, err = varexpand.ParseMissingAction(p.Missing); err != nil {
		return Profile{}, fmt.Errorf("%w: missing: %w", ErrInvalidProfile, err)
	}
	if p.HashFunc, err = varexpand.ParseHashFunc(p.Hash); err != nil {
		return Profile{}, fmt.Errorf("%w: hash: %w", ErrInvalidProfile, err)
	}
	if p.Table, err = varexpand.ParseTable(p.Variables); err != nil {
		return Profile{}, fmt.Errorf("%w: variables: %w", ErrInvalidProfile, err)
	}
	return p, nil
}

// checkString rejects a present, non-null key whose value is not a string.
func (c Config) checkString(key string) error {
	if !c.Has(key) {
		return nil
	}
	switch v := c.Raw()[key].(type) {
	case nil, string:
		return nil
	default:
		return fmt.Errorf("%w: %s: expected a string, got %T", ErrInvalidProfile, key, v)
	}
}

// checkScalarMap rejects a present, non-null key that is not a map of
// scalars. StringMap would silently drop such entries.
func (c Config) checkScalarMap(key string) error {
	if !c.Has(key) {
		return nil
	}
	switch v := c.Raw()[key].(type) {
	case nil, map[string]string:
		return nil
	case map[string]any:
		for k, item := range v {
			switch item.(type) {
			case map[string]any, []any:
				return fmt.Errorf("%w: %s.%s: expected a scalar, got %T", ErrInvalidProfile, key, k, item)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %s: expected a map, got %T", ErrInvalidProfile, key, v)
	}
}
