package args

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirp/internal/escape"
)

func strs(fields [][]byte) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}

func TestSplitTwo(t *testing.T) {
	fields, err := Split([]byte("(20%, 21px)"), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"20%", "21px"}, strs(fields))
}

func TestSplitCountMismatch(t *testing.T) {
	_, err := Split([]byte("(hello, world,)"), 0)
	var ce *CountError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, uint8(0), ce.Expected)
	assert.Equal(t, uint8(2), ce.Got)
	assert.Equal(t, "expected 0 arguments, got 2", ce.Error())
}

func TestSplitCommaInsideString(t *testing.T) {
	fields, err := Split([]byte(`("a, b", c)`), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{`"a, b"`, "c"}, strs(fields))
}

func TestSplitEscapedQuoteInsideString(t *testing.T) {
	fields, err := Split([]byte(`("say \" up", done)`), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{`"say \" up"`, "done"}, strs(fields))
}

func TestSplitNestedBrackets(t *testing.T) {
	fields, err := Split([]byte("(float(1.5), [1, 2, 3], {x: y, z: w})"), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"float(1.5)", "[1, 2, 3]", "{x: y, z: w}"}, strs(fields))
}

func TestSplitZeroElements(t *testing.T) {
	for _, in := range []string{"", "()", "  ", "(  )"} {
		fields, err := Split([]byte(in), 0)
		require.NoError(t, err, "input %q", in)
		assert.Empty(t, fields, "input %q", in)
	}
}

func TestFieldsKeepsSiblingParens(t *testing.T) {
	// both ends are parens but they are not one pair
	fields, err := Fields([]byte("(a), (b)"))
	require.NoError(t, err)
	assert.Equal(t, []string{"(a)", "(b)"}, strs(fields))
}

func TestFieldsTrailingCommaDropped(t *testing.T) {
	fields, err := Fields([]byte("(x, y,)"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, strs(fields))
}

func TestFieldsUnbalanced(t *testing.T) {
	for _, in := range []string{"(a, [b)", "a)", "([x], ", `(", a)`} {
		_, err := Fields([]byte(in))
		assert.ErrorIs(t, err, ErrUnbalanced, "input %q", in)
	}
}

func TestFieldsBadEscapeInString(t *testing.T) {
	_, err := Fields([]byte(`("a\z")`))
	var be *escape.BadEscape
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 2, be.Offset)
	assert.Equal(t, byte('z'), be.Byte)

	_, err = Split([]byte(`("ok", "a\z")`), 2)
	assert.True(t, errors.As(err, &be))
}

func TestSplitRoundTrip(t *testing.T) {
	inputs := []string{
		"(20%, 21px)",
		`("a, b", c)`,
		"(float(1.5), [1, 2, 3], {x: y, z: w})",
		"( spaced ,  out )",
		"()",
	}
	for _, in := range inputs {
		first, err := Fields([]byte(in))
		require.NoError(t, err, "input %q", in)
		rejoined := "(" + strings.Join(strs(first), ", ") + ")"
		second, err := Split([]byte(rejoined), len(first))
		require.NoError(t, err, "rejoined %q", rejoined)
		assert.Equal(t, strs(first), strs(second), "input %q", in)
	}
}

func TestSplitCountErrorSaturates(t *testing.T) {
	ce := &CountError{Expected: 1, Got: 255}
	assert.Equal(t, "expected 1 arguments, got 255 or more", ce.Error())
}

func TestSplitPanicsAbove255(t *testing.T) {
	assert.Panics(t, func() { _, _ = Split(nil, 256) })
}
