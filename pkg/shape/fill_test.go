package shape

import (
	"reflect"
	"regexp"
	"testing"

	"github.com/getriverd/riverd/pkg/generator"
)

// testRegistry returns a registry with deterministic generators.
func testRegistry() *generator.Registry {
	return generator.New(map[string]generator.Func{
		"name": func() string { return "Ada Lovelace" },
		"city": func() string { return "London" },
	})
}

func TestFillString(t *testing.T) {
	reg := testRegistry()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no braces passes through", "plain text", "plain text"},
		{"single token", "{name}", "Ada Lovelace"},
		{"token with surrounding text", "hello {name}!", "hello Ada Lovelace!"},
		{"two tokens", "{name} of {city}", "Ada Lovelace of London"},
		{"empty string", "", ""},
		{"stray closing brace outside is copied", "a}b", "a}b"},
		{"unknown key degrades to omission", "{unknownkey}", ""},
		{"unterminated token is discarded", "{name", ""},
		{"escaped braces are swallowed", `\{literal\}`, "literal"},
		{"escape swallows next character", `a\bc`, "ac"},
		{"double backslash produces nothing", `a\\b`, "ab"},
		{"trailing backslash produces nothing", `ab\`, "ab"},
		{"escaped open brace never opens a token", `\{name}`, "name}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fillString(tt.input, reg)
			if got != tt.want {
				t.Errorf("fillString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestFillStringUnknownKeyStaysOpen pins the scanner's unknown-key
// behavior: the closing brace joins the key buffer and the
// placeholder stays open, so trailing literal text is swallowed until
// the next '{' restarts the token.
func TestFillStringUnknownKeyStaysOpen(t *testing.T) {
	reg := testRegistry()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"text after unknown key is swallowed", "{bogus} trailing", ""},
		{"next open brace restarts the token", "{bogus} then {name}", "Ada Lovelace"},
		{"second close still misses the grown key", "{bogus}}", ""},
		{"open brace inside a token restarts it", "{bo{name}", "Ada Lovelace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fillString(tt.input, reg)
			if got != tt.want {
				t.Errorf("fillString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFillRecursesIntoObjects(t *testing.T) {
	reg := testRegistry()

	input := map[string]any{
		"a": map[string]any{
			"b": "{name}",
			"c": map[string]any{
				"d": "in {city}",
			},
		},
		"top": "{city}",
	}

	got, ok := Fill(input, reg).(map[string]any)
	if !ok {
		t.Fatalf("Fill returned %T, want map[string]any", got)
	}

	a := got["a"].(map[string]any)
	if a["b"] != "Ada Lovelace" {
		t.Errorf("a.b = %v, want Ada Lovelace", a["b"])
	}
	c := a["c"].(map[string]any)
	if c["d"] != "in London" {
		t.Errorf("a.c.d = %v, want 'in London'", c["d"])
	}
	if got["top"] != "London" {
		t.Errorf("top = %v, want London", got["top"])
	}

	// The input template must not be mutated.
	if input["a"].(map[string]any)["b"] != "{name}" {
		t.Error("Fill mutated the input template")
	}
}

func TestFillPassesNonStringsThrough(t *testing.T) {
	reg := testRegistry()

	tests := []struct {
		name  string
		input any
	}{
		{"number", float64(42)},
		{"boolean", true},
		{"null", nil},
		{"array elements are not scanned", []any{"{name}", float64(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fill(tt.input, reg)
			if !reflect.DeepEqual(got, tt.input) {
				t.Errorf("Fill(%v) = %v, want unchanged", tt.input, got)
			}
		})
	}
}

func TestFillWithDefaultRegistry(t *testing.T) {
	reg := generator.Default()

	got, ok := Fill("{uuid}", reg).(string)
	if !ok {
		t.Fatalf("Fill returned non-string")
	}

	uuidRe := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	if !uuidRe.MatchString(got) {
		t.Errorf("filled uuid %q does not match the UUID pattern", got)
	}
}
