/*
Package varexpand expands %-directive templates against a table of
single-character variables.

# Overview

varexpand is meant for configuration-style strings such as mail paths and
log formats, where every invocation substitutes request- or session-scoped
values into a fixed pattern:

	table := varexpand.NewTable(
	    varexpand.Entry{Key: 'n', Value: "alice"},
	    varexpand.Entry{Key: 'd', Value: "example.com"},
	)
	path := varexpand.ExpandString("/var/mail/%d/%n", table)
	// path: "/var/mail/example.com/alice"

# Directive Syntax

Each directive has the form

	%[-][0]<digits>[.[0]<digits>][<modifiers>]<key>

A single number is a width. With a dot, the first number is an offset
(negative counts from the end) and the second is the width. A leading zero
on the width pads the value with '0' up to the width instead of truncating:

	%5n     first 5 bytes of n
	%05n    n left-padded with '0' to 5 bytes
	%-3.2n  2 bytes starting 3 bytes from the end of n
	%%      a literal '%'

# Modifiers

Up to MaxModifiers modifiers may precede the key. They are applied left to
right before offset and width:

	L  lowercase        U  uppercase
	E  escape           X  decimal to hex
	R  reverse          H  hash
	M  md5              D  dots to ",dc="

The hash modifier reuses the directive's numbers: the width becomes the
modulus and the offset becomes the minimum number of hex digits, so
"%3.256Hn" yields a zero-padded bucket between "000" and "0ff".

# Failure Behavior

Expansion never fails. Malformed numbers stop at the first non-digit,
unknown modifiers are read as the key, unknown keys expand to nothing and
a directive cut off by the end of the template ends the expansion. Use an
Expander with MissingError when unknown keys must be reported.

# Thread Safety

The modifier registry is read-only and Expander is immutable after
construction, so expansions may run concurrently as long as each uses its
own destination buffer.
*/
package varexpand
