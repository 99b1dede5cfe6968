package varexpand

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
)

// MaxModifiers is the maximum number of modifiers a single directive may
// chain. Modifier characters past the limit are read as the key.
const MaxModifiers = 10

// Context is the formatting state of the directive being expanded.
//
// Every modifier in a chain receives the same *Context. Only the hash
// modifier is allowed to touch it: it consumes Width as its modulus and
// Offset as its minimum digit count and resets both to zero, which also
// disables the output formatter's offset and width handling for that
// directive. No other modifier may read or write these fields.
type Context struct {
	Offset      int
	Width       int
	ZeroPadding bool

	hash HashFunc
}

func (c *Context) hashFunc() HashFunc {
	if c.hash == nil {
		return ELFHash
	}
	return c.hash
}

// ModifierFunc transforms a substituted value.
type ModifierFunc func(value string, ctx *Context) string

// Modifier is a registered value transform.
type Modifier struct {
	// Key is the character that selects the modifier in a directive.
	Key byte

	// Name is a short human-readable name used in logs and metrics.
	Name string

	// Func performs the transform.
	Func ModifierFunc
}

// modifiers is the fixed registry. It is never modified after
// initialization; modifierIndex maps a key byte to its position + 1.
var (
	modifiers = [...]Modifier{
		{Key: 'L', Name: "lower", Func: lowerCase},
		{Key: 'U', Name: "upper", Func: upperCase},
		{Key: 'E', Name: "escape", Func: escapeValue},
		{Key: 'X', Name: "hex", Func: decimalToHex},
		{Key: 'R', Name: "reverse", Func: reverseBytes},
		{Key: 'H', Name: "hash", Func: hashValue},
		{Key: 'M', Name: "md5", Func: md5Hex},
		{Key: 'D', Name: "dn", Func: dotsToDN},
	}
	modifierIndex = func() (idx [256]uint8) {
		for i, m := range modifiers {
			idx[m.Key] = uint8(i + 1)
		}
		return idx
	}()
)

// modifierAt returns the registry position of the modifier selected by
// key, or -1.
func modifierAt(key byte) int {
	return int(modifierIndex[key]) - 1
}

// LookupModifier returns the modifier registered for key.
func LookupModifier(key byte) (Modifier, bool) {
	i := modifierAt(key)
	if i < 0 {
		return Modifier{}, false
	}
	return modifiers[i], true
}

// Modifiers returns the registered modifiers in registry order.
// The returned slice is a copy.
func Modifiers() []Modifier {
	out := make([]Modifier, len(modifiers))
	copy(out, modifiers[:])
	return out
}

func lowerCase(value string, _ *Context) string {
	buf := acquireScratch()
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		buf.WriteByte(c)
	}
	return releaseScratch(buf)
}

func upperCase(value string, _ *Context) string {
	buf := acquireScratch()
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		buf.WriteByte(c)
	}
	return releaseScratch(buf)
}

// decimalToHex reads the leading unsigned decimal number of value and
// renders it in lowercase hex. Leading spaces and a '+' sign are skipped.
// Values without digits or outside the uint64 range render as "0".
func decimalToHex(value string, _ *Context) string {
	s := strings.TrimLeft(value, " \t\n\v\f\r")
	s = strings.TrimPrefix(s, "+")
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.ParseUint(s[:end], 10, 64)
	if err != nil {
		return "0"
	}
	return strconv.FormatUint(n, 16)
}

func reverseBytes(value string, _ *Context) string {
	buf := acquireScratch()
	for i := len(value) - 1; i >= 0; i-- {
		buf.WriteByte(value[i])
	}
	return releaseScratch(buf)
}

func hashValue(value string, ctx *Context) string {
	h := ctx.hashFunc()(value)
	if ctx.Width != 0 {
		h %= uint64(ctx.Width)
		ctx.Width = 0
	}
	digits := strconv.FormatUint(h, 16)

	buf := acquireScratch()
	for n := len(digits); n < ctx.Offset; n++ {
		buf.WriteByte('0')
	}
	ctx.Offset = 0
	buf.WriteString(digits)
	return releaseScratch(buf)
}

func md5Hex(value string, _ *Context) string {
	sum := md5.Sum([]byte(value))
	return hex.EncodeToString(sum[:])
}

func dotsToDN(value string, _ *Context) string {
	buf := acquireScratch()
	for i := 0; i < len(value); i++ {
		if value[i] == '.' {
			buf.WriteString(",dc=")
			continue
		}
		buf.WriteByte(value[i])
	}
	return releaseScratch(buf)
}
