package escape

import (
	"bytes"
	"testing"
)

func TestContainsMatchesBytesContains(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"hello world",
		"no backslash here at all, long enough for several words",
		`tail\`,
		`\head`,
		"exactly8b",
		"seven7b",
		"0123456\\",
		"01234567 trailing \\ in the tail part",
	}
	for _, in := range inputs {
		for _, what := range []byte{'\\', '"', 'z', 0} {
			want := bytes.IndexByte([]byte(in), what) >= 0
			if got := Contains([]byte(in), what); got != want {
				t.Errorf("Contains(%q, %q) = %v, want %v", in, what, got, want)
			}
		}
	}
}

func TestIndexByteMatchesBytesIndexByte(t *testing.T) {
	inputs := []string{
		"",
		`\`,
		"01234567",
		`0123456\`,
		`\1234567`,
		"a long stretch without the needle and then \\ finally",
		"needle in the word tail abc\\",
	}
	for _, in := range inputs {
		want := bytes.IndexByte([]byte(in), '\\')
		if got := IndexByte([]byte(in), '\\'); got != want {
			t.Errorf("IndexByte(%q) = %d, want %d", in, got, want)
		}
	}
}

// The word trick must not report a hit for bytes that merely neighbor the
// needle value (e.g. 0x5B / 0x5D around 0x5C).
func TestContainsNoFalsePositives(t *testing.T) {
	in := bytes.Repeat([]byte{'[', ']'}, 32)
	if Contains(in, '\\') {
		t.Errorf("Contains reported a backslash in %q", in)
	}
}
