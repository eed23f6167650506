// Package shape implements the template fill: a recursive transform
// over decoded JSON values that replaces {placeholder} tokens in
// string fields with freshly generated fake values.
//
// The fill never fails. Unknown placeholder keys and malformed token
// syntax degrade to omission in the output rather than errors, so a
// sloppy template still produces a stream.
package shape

import (
	"strings"
	"unicode/utf8"

	"github.com/getriverd/riverd/pkg/generator"
)

// Fill returns a copy of value with every placeholder token in string
// fields replaced by generator output. Objects are rebuilt key by key
// to unbounded depth. Numbers, booleans, null, and arrays pass through
// unchanged — array elements are intentionally not scanned.
func Fill(value any, reg *generator.Registry) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, sub := range v {
			out[key] = Fill(sub, reg)
		}
		return out
	case string:
		return fillString(v, reg)
	default:
		return v
	}
}

// fillString scans s left to right, copying literal text and replacing
// {key} tokens with generator output.
//
// The scanner has two states, outside and inside a placeholder, with
// these rules:
//
//   - A backslash produces nothing and consumes the character after it
//     outright; the consumed character is never examined for brace
//     significance. "\{literal\}" therefore fills to "literal".
//   - '{' always enters the inside state with an empty key buffer,
//     even when already inside one.
//   - '}' while inside resolves the buffered key. A known key emits
//     the generator value and returns to the outside state. An unknown
//     key folds the '}' into the key buffer and the placeholder stays
//     open.
//   - '}' while outside is an ordinary character.
//   - Key text still buffered at end of input is discarded.
func fillString(s string, reg *generator.Registry) string {
	var out strings.Builder
	var key strings.Builder
	inside := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			// Swallow the escape and the whole next rune.
			_, size := utf8.DecodeRuneInString(s[i+1:])
			i += size
		case c == '{':
			inside = true
			key.Reset()
		case inside && c == '}':
			if fn, ok := reg.Lookup(key.String()); ok {
				out.WriteString(fn())
				inside = false
				key.Reset()
			} else {
				key.WriteByte('}')
			}
		case inside:
			key.WriteByte(c)
		default:
			out.WriteByte(c)
		}
	}

	return out.String()
}
