/*
Package config provides type-safe access to expansion profiles loaded from
YAML or JSON.

# Overview

config wraps a map[string]any and provides typed accessor methods that
return defaults for missing keys and type mismatches. Profile reads and
validates the fields an expansion needs:

	missing: keep          # empty | keep | error
	hash: elf              # elf | xxhash
	variables:
	  n: alice
	  d: example.com
	templates:
	  home: /var/mail/%d/%n

# File Loading

	profile, err := config.LoadProfile("profile.yaml")
	if err != nil {
	    log.Fatal(err) // names the file and the bad field
	}
	exp := varexpand.NewExpander(profile.Options()...)

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
