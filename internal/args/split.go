// Package args splits a raw method argument list into exactly n elements.
//
// The input is the source text of the list, with or without its surrounding
// parens. Elements are separated by commas at nesting depth zero; commas
// inside (), [], {} or string literals never split. A trailing comma does
// not produce an extra element. String literals are checked for valid
// escape sequences as they are skipped.
package args

import (
	"bytes"
	"errors"
	"fmt"

	"chirp/internal/escape"
)

// ErrUnbalanced is returned when the list closes a bracket it never opened,
// or leaves one open.
var ErrUnbalanced = errors.New("unbalanced delimiters in argument list")

// CountError reports a wrong number of elements. Got saturates at 255.
type CountError struct {
	Expected uint8
	Got      uint8
}

func (e *CountError) Error() string {
	got := fmt.Sprintf("%d", e.Got)
	if e.Got == 255 {
		got = "255 or more"
	}
	return fmt.Sprintf("expected %d arguments, got %s", e.Expected, got)
}

func closerFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

func trim(b []byte) []byte {
	return bytes.Trim(b, " \t\r\n")
}

// Fields splits raw into its top-level comma-separated elements, however
// many there are. One enclosing paren pair is stripped first when present,
// so "(a, b)" and "a, b" are equivalent; "" and "()" both hold zero
// elements. Each element comes back trimmed of ASCII whitespace but
// otherwise verbatim, sub-slicing raw.
func Fields(raw []byte) ([][]byte, error) {
	raw = trim(raw)
	if len(raw) >= 2 && raw[0] == '(' && raw[len(raw)-1] == ')' {
		if balancedAsWhole(raw) {
			raw = trim(raw[1 : len(raw)-1])
		}
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var (
		out   [][]byte
		stack []byte
		start int
	)
	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; c {
		case '"', '\'':
			j, err := skipString(raw, i)
			if err != nil {
				return nil, err
			}
			i = j
		case '(', '[', '{':
			stack = append(stack, closerFor(c))
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return nil, ErrUnbalanced
			}
			stack = stack[:len(stack)-1]
		case ',':
			if len(stack) == 0 {
				out = append(out, trim(raw[start:i]))
				start = i + 1
			}
		}
	}
	if len(stack) != 0 {
		return nil, ErrUnbalanced
	}
	if tail := trim(raw[start:]); len(tail) != 0 {
		out = append(out, tail)
	}
	return out, nil
}

// Split breaks raw into exactly n elements, with the same rules as Fields.
// A wrong element count fails with a *CountError. n must fit in a uint8.
func Split(raw []byte, n int) ([][]byte, error) {
	if n > 255 {
		panic(fmt.Sprintf("args: element count %d out of range", n))
	}
	out, err := Fields(raw)
	if err != nil {
		return nil, err
	}
	if len(out) != n {
		got := len(out)
		if got > 255 {
			got = 255
		}
		return nil, &CountError{Expected: uint8(n), Got: uint8(got)}
	}
	return out, nil
}

// skipString advances past the string literal opening at raw[i], returning
// the index of its closing quote. Escapes inside the literal are checked
// while skipping: anything outside \\ \" \' \n \t \r \u fails with a
// *escape.BadEscape carrying the backslash offset.
func skipString(raw []byte, i int) (int, error) {
	quote := raw[i]
	for j := i + 1; j < len(raw); j++ {
		switch raw[j] {
		case '\\':
			if j+1 == len(raw) {
				return 0, &escape.BadEscape{Offset: j, Byte: '\\'}
			}
			switch next := raw[j+1]; next {
			case '\\', '"', '\'', 'n', 't', 'r', 'u':
			default:
				return 0, &escape.BadEscape{Offset: j, Byte: next}
			}
			j++
		case quote:
			return j, nil
		}
	}
	return 0, ErrUnbalanced
}

// balancedAsWhole reports whether the first byte of raw opens a bracket
// whose matching closer is the last byte, so stripping the pair is safe.
// "(a), (b)" is parenthesized at both ends but must keep its parens.
func balancedAsWhole(raw []byte) bool {
	depth := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '"', '\'':
			j, err := skipString(raw, i)
			if err != nil {
				return false
			}
			i = j
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 && i != len(raw)-1 {
				return false
			}
		}
	}
	return depth == 0
}
