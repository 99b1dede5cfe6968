package varexpand

import (
	"io"
	"strings"
)

// Buffer is the destination of an expansion. *strings.Builder and
// *bytes.Buffer satisfy it. Write errors are ignored; use a destination
// that cannot fail.
type Buffer interface {
	io.StringWriter
	io.ByteWriter
}

// scanConfig is the per-Expander configuration of a scan.
type scanConfig struct {
	missing MissingAction
	hash    HashFunc
}

// scanStats collects what a scan did, for logging and metrics.
type scanStats struct {
	directives   int
	undefined    []byte
	modifierUses [len(modifiers)]int

	// truncatedAt is the position of a directive cut off by the end of
	// the template, or -1.
	truncatedAt int
}

// scan appends the expansion of template to dest.
func scan(dest Buffer, template string, table Table, cfg scanConfig, st *scanStats) {
	st.truncatedAt = -1
	for i := 0; i < len(template); {
		if template[i] != '%' {
			j := strings.IndexByte(template[i:], '%')
			if j < 0 {
				_, _ = dest.WriteString(template[i:])
				return
			}
			_, _ = dest.WriteString(template[i : i+j])
			i += j
			continue
		}

		start := i
		d, next, ok := parseDirective(template, i+1)
		if !ok {
			st.truncatedAt = start
			return
		}
		i = next
		st.directives++

		value, found := table.Lookup(d.key)
		if !found {
			if d.key != '%' {
				st.undefined = append(st.undefined, d.key)
				if cfg.missing == MissingKeep {
					_, _ = dest.WriteString(template[start:next])
				}
				continue
			}
			value = "%"
		}

		ctx := d.context(cfg.hash)
		for k := 0; k < d.chainLen; k++ {
			pos := d.chain[k]
			value = modifiers[pos].Func(value, &ctx)
			st.modifierUses[pos]++
		}
		appendFormatted(dest, value, &ctx)
	}
}

// Expand appends the expansion of template against table to dest.
//
// Existing content of dest is kept. Expand never fails: unknown keys
// expand to nothing, "%%" expands to "%" unless the table defines '%', and
// a directive cut off by the end of the template stops the expansion.
//
// Example:
//
//	var sb strings.Builder
//	varexpand.Expand(&sb, "%Ln@%d", table)
func Expand(dest Buffer, template string, table Table) {
	var st scanStats
	scan(dest, template, table, scanConfig{}, &st)
}

// ExpandString returns the expansion of template against table.
func ExpandString(template string, table Table) string {
	var sb strings.Builder
	sb.Grow(len(template))
	Expand(&sb, template, table)
	return sb.String()
}
