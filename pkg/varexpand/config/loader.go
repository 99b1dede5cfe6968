package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// decoders maps file extensions to their parsers.
var decoders = map[string]func([]byte) (Config, error){
	".yaml": FromYAML,
	".yml":  FromYAML,
	".json": FromJSON,
}

// LoadProfile reads a profile file and validates it. Errors name the file.
//
// Example:
//
//	profile, err := config.LoadProfile("mail.yaml")
//	if err != nil {
//	    return err
//	}
//	exp := varexpand.NewExpander(profile.Options()...)
//	home := exp.MustExpand(profile.Templates["home"], profile.Table)
func LoadProfile(path string) (Profile, error) {
	cfg, err := FromFile(path)
	if err != nil {
		return Profile{}, err
	}
	p, err := cfg.Profile()
	if err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// FromFile loads a profile file, choosing the format by extension
// (.yaml, .yml or .json).
func FromFile(path string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return Config{}, fmt.Errorf("profile %s: unsupported extension %q (expect: .yaml|.yml|.json)", path, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read profile: %w", err)
	}

	cfg, err := decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return cfg, nil
}

// FromYAML parses a YAML document. An empty document is an empty Config.
func FromYAML(data []byte) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return New(m), nil
}

// FromJSON parses a JSON object.
func FromJSON(data []byte) (Config, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return New(m), nil
}
