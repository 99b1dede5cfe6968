package varexpand

const hexDigits = "0123456789abcdef"

// Escape returns value with quotes, backslashes and control characters
// backslash-escaped. It is the transform behind the E modifier.
//
//	"    -> \"
//	'    -> \'
//	\    -> \\
//	LF   -> \n, CR -> \r, TAB -> \t
//	other bytes < 0x20 and 0x7f -> \xHH
func Escape(value string) string {
	i := 0
	for ; i < len(value); i++ {
		if needsEscape(value[i]) {
			break
		}
	}
	if i == len(value) {
		return value
	}

	buf := acquireScratch()
	buf.WriteString(value[:i])
	for ; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '"' || c == '\'' || c == '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case c == '\n':
			buf.WriteString(`\n`)
		case c == '\r':
			buf.WriteString(`\r`)
		case c == '\t':
			buf.WriteString(`\t`)
		case c < 0x20 || c == 0x7f:
			buf.WriteString(`\x`)
			buf.WriteByte(hexDigits[c>>4])
			buf.WriteByte(hexDigits[c&0x0f])
		default:
			buf.WriteByte(c)
		}
	}
	return releaseScratch(buf)
}

func needsEscape(c byte) bool {
	return c == '"' || c == '\'' || c == '\\' || c < 0x20 || c == 0x7f
}

func escapeValue(value string, _ *Context) string {
	return Escape(value)
}
