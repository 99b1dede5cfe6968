package varexpand

import "strings"

// ExtractKey returns the variable key of the directive at the start of s,
// where s is the text immediately following a '%'. Numbers and modifiers
// are skipped but not evaluated. It returns 0 when s ends before a key or
// the key position holds a NUL byte; Expand stops at the same place.
//
// ExtractKey uses the same grammar as Expand, so the key it reports is the
// key Expand looks up for that directive.
//
// Example:
//
//	varexpand.ExtractKey("-3.2Ln") // 'n'
func ExtractKey(s string) byte {
	d, _, ok := parseDirective(s, 0)
	if !ok {
		return 0
	}
	return d.key
}

// Keys returns the distinct variable keys referenced by template, in order
// of first use. The literal "%%" directive is not reported. Scanning stops
// at a directive cut off by the end of the template, as Expand does.
func Keys(template string) []byte {
	var (
		keys []byte
		seen [256]bool
	)
	walkKeys(template, func(key byte) bool {
		if key != '%' && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
		return true
	})
	return keys
}

// HasKey reports whether template references key.
func HasKey(template string, key byte) bool {
	found := false
	walkKeys(template, func(k byte) bool {
		found = k == key
		return !found
	})
	return found
}

// walkKeys calls fn with the key of every directive of template until fn
// returns false.
func walkKeys(template string, fn func(byte) bool) {
	for i := 0; i < len(template); {
		j := strings.IndexByte(template[i:], '%')
		if j < 0 {
			return
		}
		d, next, ok := parseDirective(template, i+j+1)
		if !ok {
			return
		}
		i = next
		if !fn(d.key) {
			return
		}
	}
}
