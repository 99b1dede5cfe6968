package varexpand

// MaxNumber bounds the offset and width numbers of a directive. Digit runs
// beyond it saturate, which also caps zero padding at MaxNumber bytes per
// directive.
const MaxNumber = 1 << 16

// directive is one parsed %-directive.
type directive struct {
	offset      int
	width       int
	zeroPadding bool

	// chain holds registry positions of the modifiers, in template order.
	chain    [MaxModifiers]uint8
	chainLen int

	key byte
}

// parseDirective parses the directive whose text starts at s[pos], just
// after the '%'. It returns the position following the key. ok is false
// when s ends before a key is found. A NUL byte where the key belongs ends
// the template, so NUL is never a key.
//
//	%[-][0]<digits>[.[0]<digits>][<modifiers>]<key>
func parseDirective(s string, pos int) (d directive, next int, ok bool) {
	sign := 1
	if pos < len(s) && s[pos] == '-' {
		sign = -1
		pos++
	}
	if pos < len(s) && s[pos] == '0' {
		d.zeroPadding = true
		pos++
	}
	d.width, pos = scanNumber(s, pos)

	if pos < len(s) && s[pos] == '.' {
		// The first number was the offset. A zero prefix on it means
		// nothing; padding belongs to the width.
		d.offset = sign * d.width
		d.width = 0
		d.zeroPadding = false
		pos++
		if pos < len(s) && s[pos] == '0' {
			d.zeroPadding = true
			pos++
		}
		d.width, pos = scanNumber(s, pos)
	}

	for d.chainLen < MaxModifiers && pos < len(s) {
		i := modifierAt(s[pos])
		if i < 0 {
			break
		}
		d.chain[d.chainLen] = uint8(i)
		d.chainLen++
		pos++
	}

	if pos >= len(s) || s[pos] == 0 {
		return d, pos, false
	}
	d.key = s[pos]
	return d, pos + 1, true
}

// scanNumber accumulates decimal digits starting at s[pos], saturating at
// MaxNumber.
func scanNumber(s string, pos int) (n, next int) {
	for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
		d := int(s[pos] - '0')
		if n > (MaxNumber-d)/10 {
			n = MaxNumber
		} else {
			n = n*10 + d
		}
		pos++
	}
	return n, pos
}

// context returns the shared modifier context for the directive.
func (d *directive) context(hash HashFunc) Context {
	return Context{
		Offset:      d.offset,
		Width:       d.width,
		ZeroPadding: d.zeroPadding,
		hash:        hash,
	}
}
