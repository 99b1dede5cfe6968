package varexpand

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidKey indicates a variable key that is not exactly one non-NUL byte.
var ErrInvalidKey = errors.New("invalid variable key")

// Entry is one variable of a Table. An empty Value is the same as an
// absent one: the directive expands to nothing.
type Entry struct {
	Key   byte
	Value string
}

// Table is an ordered list of variables. Lookup returns the first entry
// with a matching key. An entry with Key 0 terminates the table; entries
// after it are never consulted.
type Table []Entry

// NewTable returns a Table holding entries in the given order.
func NewTable(entries ...Entry) Table {
	return Table(entries)
}

// Lookup returns the value of the first entry whose key matches.
func (t Table) Lookup(key byte) (string, bool) {
	for _, e := range t {
		if e.Key == 0 {
			break
		}
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// With returns a copy of t with an entry for key appended. Because lookup
// stops at the first match, With does not override an existing key.
func (t Table) With(key byte, value string) Table {
	out := make(Table, len(t), len(t)+1)
	copy(out, t)
	return append(out, Entry{Key: key, Value: value})
}

// TableFromMap builds a Table from m, ordered by key.
func TableFromMap(m map[byte]string) Table {
	if len(m) == 0 {
		return nil
	}
	t := make(Table, 0, len(m))
	for k, v := range m {
		t = append(t, Entry{Key: k, Value: v})
	}
	sort.Slice(t, func(i, j int) bool { return t[i].Key < t[j].Key })
	return t
}

// ParseTable builds a Table from string-keyed input such as a config file
// or command-line flags. Every key must be a single non-NUL byte.
func ParseTable(m map[string]string) (Table, error) {
	byKey := make(map[byte]string, len(m))
	for k, v := range m {
		if len(k) != 1 || k[0] == 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKey, k)
		}
		byKey[k[0]] = v
	}
	return TableFromMap(byKey), nil
}
