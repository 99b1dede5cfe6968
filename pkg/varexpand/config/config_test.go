package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/varexpand/pkg/varexpand"
	"github.com/randalmurphal/varexpand/pkg/varexpand/config"
)

// TestNew verifies Config creation from maps.
func TestNew(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{"nil map", nil},
		{"empty map", map[string]any{}},
		{"with values", map[string]any{"key": "value"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.NotNil(t, cfg.Raw())
		})
	}
}

// TestString verifies string extraction with defaults.
func TestString(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		key        string
		defaultVal string
		want       string
	}{
		{"key exists", map[string]any{"hash": "xxhash"}, "hash", "elf", "xxhash"},
		{"key missing", map[string]any{"other": "value"}, "hash", "elf", "elf"},
		{"empty string", map[string]any{"hash": ""}, "hash", "elf", ""},
		{"wrong type int", map[string]any{"hash": 123}, "hash", "elf", "elf"},
		{"nil map", nil, "hash", "elf", "elf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.String(tt.key, tt.defaultVal))
		})
	}
}

// TestStringMap verifies map extraction and scalar formatting.
func TestStringMap(t *testing.T) {
	t.Run("mixed scalars", func(t *testing.T) {
		cfg := config.New(map[string]any{
			"variables": map[string]any{
				"n":      "alice",
				"u":      255,
				"b":      true,
				"nested": map[string]any{"x": "y"},
				"list":   []any{"a"},
				"null":   nil,
			},
		})
		assert.Equal(t, map[string]string{"n": "alice", "u": "255", "b": "true"}, cfg.StringMap("variables"))
	})

	t.Run("string map passes through", func(t *testing.T) {
		cfg := config.New(map[string]any{"variables": map[string]string{"n": "alice"}})
		assert.Equal(t, map[string]string{"n": "alice"}, cfg.StringMap("variables"))
	})

	t.Run("missing or wrong type", func(t *testing.T) {
		cfg := config.New(map[string]any{"variables": "n=alice"})
		assert.Nil(t, cfg.StringMap("variables"))
		assert.Nil(t, cfg.StringMap("templates"))
	})
}

// TestHas verifies key existence checks.
func TestHas(t *testing.T) {
	cfg := config.New(map[string]any{"hash": nil, "missing": "keep"})
	assert.True(t, cfg.Has("hash"))
	assert.True(t, cfg.Has("missing"))
	assert.False(t, cfg.Has("variables"))
}

const profileYAML = `
missing: keep
hash: xxhash
variables:
  n: alice
  d: example.com
  u: 1001
templates:
  home: /var/mail/%d/%n
  bucket: "%2.256Hn"
`

// TestProfile verifies profile extraction from YAML.
func TestProfile(t *testing.T) {
	cfg, err := config.FromYAML([]byte(profileYAML))
	require.NoError(t, err)

	p, err := cfg.Profile()
	require.NoError(t, err)
	assert.Equal(t, "keep", p.Missing)
	assert.Equal(t, "xxhash", p.Hash)
	assert.Equal(t, map[string]string{"n": "alice", "d": "example.com", "u": "1001"}, p.Variables)
	assert.Equal(t, "/var/mail/%d/%n", p.Templates["home"])
	assert.Equal(t, "%2.256Hn", p.Templates["bucket"])

	assert.Equal(t, varexpand.MissingKeep, p.MissingAction)
	require.NotNil(t, p.HashFunc)
	assert.Equal(t, varexpand.XXHash("alice"), p.HashFunc("alice"))
	v, ok := p.Table.Lookup('u')
	require.True(t, ok)
	assert.Equal(t, "1001", v)

	exp := varexpand.NewExpander(p.Options()...)
	assert.Equal(t, "/var/mail/example.com/alice/%q", exp.MustExpand(p.Templates["home"]+"/%q", p.Table))

	t.Run("empty profile", func(t *testing.T) {
		p, err := config.New(nil).Profile()
		require.NoError(t, err)
		assert.Empty(t, p.Missing)
		assert.Empty(t, p.Hash)
		assert.Nil(t, p.Variables)
		assert.Nil(t, p.Templates)
		assert.Equal(t, varexpand.MissingEmpty, p.MissingAction)
		assert.Empty(t, p.Table)
	})

	t.Run("null fields", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte("missing:\nvariables:\ntemplates:\n"))
		require.NoError(t, err)
		_, err = cfg.Profile()
		assert.NoError(t, err)
	})
}

// TestProfile_Invalid verifies that bad fields are rejected when the
// profile is read.
func TestProfile_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"unknown missing action", "missing: skip\n", "missing"},
		{"non-string missing", "missing: [keep]\n", "missing"},
		{"unknown hash", "hash: sha1\n", "hash"},
		{"non-string hash", "hash: 5\n", "hash"},
		{"multi-byte variable key", "variables:\n  nn: x\n", "variables"},
		{"variables not a map", "variables: [n, d]\n", "variables"},
		{"nested variable value", "variables:\n  n:\n    first: a\n", "variables.n"},
		{"templates not a map", "templates: home\n", "templates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.FromYAML([]byte(tt.yaml))
			require.NoError(t, err)

			_, err = cfg.Profile()
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalidProfile)
			assert.Contains(t, err.Error(), tt.field+":")
		})
	}

	t.Run("invalid key sentinel", func(t *testing.T) {
		_, err := config.New(map[string]any{"variables": map[string]any{"": "x"}}).Profile()
		assert.ErrorIs(t, err, varexpand.ErrInvalidKey)
	})
}

// TestLoadProfile verifies that file errors name the file.
func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "good.yaml")
		require.NoError(t, os.WriteFile(path, []byte(profileYAML), 0o600))
		p, err := config.LoadProfile(path)
		require.NoError(t, err)
		assert.Equal(t, varexpand.MissingKeep, p.MissingAction)
	})

	t.Run("invalid field", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("hash: md4\n"), 0o600))
		_, err := config.LoadProfile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrInvalidProfile)
		assert.Contains(t, err.Error(), path)
		assert.Contains(t, err.Error(), "hash:")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadProfile(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

// TestFromFile verifies loading by extension.
func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "profile.yaml")
		require.NoError(t, os.WriteFile(path, []byte(profileYAML), 0o600))
		cfg, err := config.FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "keep", cfg.String("missing", ""))
	})

	t.Run("yml", func(t *testing.T) {
		path := filepath.Join(dir, "profile.yml")
		require.NoError(t, os.WriteFile(path, []byte("hash: elf\n"), 0o600))
		cfg, err := config.FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "elf", cfg.String("hash", ""))
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "profile.JSON")
		require.NoError(t, os.WriteFile(path, []byte(`{"variables":{"n":"bob"}}`), 0o600))
		cfg, err := config.FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "bob", cfg.StringMap("variables")["n"])
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "profile.toml")
		require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o600))
		_, err := config.FromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.FromFile(filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid yaml names the file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("variables: [unclosed"), 0o600))
		_, err := config.FromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := config.FromYAML([]byte("variables: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := config.FromJSON([]byte("{"))
		assert.Error(t, err)
	})
}
