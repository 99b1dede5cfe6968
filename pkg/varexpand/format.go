package varexpand

// appendFormatted applies the offset and width of ctx to value and appends
// the result to dest.
//
// A negative offset counts from the end and is ignored when it is larger
// than the value. A positive offset skips bytes from the front. A width
// without zero padding truncates to at most width bytes; with zero padding
// the value is left-padded with '0' up to width and never truncated.
func appendFormatted(dest Buffer, value string, ctx *Context) {
	switch {
	case ctx.Offset < 0:
		if n := len(value); n > -ctx.Offset {
			value = value[n+ctx.Offset:]
		}
	case ctx.Offset > 0:
		if ctx.Offset >= len(value) {
			value = ""
		} else {
			value = value[ctx.Offset:]
		}
	}

	switch {
	case ctx.Width == 0:
		_, _ = dest.WriteString(value)
	case !ctx.ZeroPadding:
		if len(value) > ctx.Width {
			value = value[:ctx.Width]
		}
		_, _ = dest.WriteString(value)
	default:
		for n := len(value); n < ctx.Width; n++ {
			_ = dest.WriteByte('0')
		}
		_, _ = dest.WriteString(value)
	}
}
