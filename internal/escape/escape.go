// Package escape resolves backslash escapes in string literal bodies.
//
// Unescape is lenient and never fails: unrecognized escapes simply drop the
// backslash. UnescapeStrict reports them instead, for callers that surface
// diagnostics. Both return the input slice unchanged when it holds no
// backslash at all, which is the common case and allocates nothing.
package escape

import "fmt"

// BadEscape describes an escape sequence rejected by UnescapeStrict.
type BadEscape struct {
	Offset int  // offset of the backslash within the input
	Byte   byte // the byte following the backslash
}

func (e *BadEscape) Error() string {
	return fmt.Sprintf("unknown escape sequence '\\%c'", e.Byte)
}

func mapped(c byte) (byte, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	default:
		return 0, false
	}
}

// Unescape resolves escapes in b. When b contains no backslash the input
// slice is returned as-is; otherwise a fresh buffer is built. \n, \t and \r
// become their control bytes, \\ a single backslash, and any other \x keeps
// x and drops the backslash. A trailing lone backslash is dropped.
func Unescape(b []byte) []byte {
	if !Contains(b, '\\') {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		if i+1 == len(b) {
			break
		}
		i++
		if m, ok := mapped(b[i]); ok {
			out = append(out, m)
		} else {
			out = append(out, b[i])
		}
	}
	return out
}

// UnescapeStrict is Unescape restricted to the documented sequences
// (\n \t \r \\ \" \'). The first offending sequence aborts the scan with a
// *BadEscape carrying its offset.
func UnescapeStrict(b []byte) ([]byte, error) {
	if !Contains(b, '\\') {
		return b, nil
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		if i+1 == len(b) {
			return nil, &BadEscape{Offset: i, Byte: '\\'}
		}
		next := b[i+1]
		m, ok := mapped(next)
		if !ok {
			switch next {
			case '\\', '"', '\'':
				m = next
			default:
				return nil, &BadEscape{Offset: i, Byte: next}
			}
		}
		out = append(out, m)
		i++
	}
	return out, nil
}
