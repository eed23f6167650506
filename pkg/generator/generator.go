// Package generator provides the registry of placeholder value
// generators used to fill shape templates.
//
// A Registry is built once at process start and never mutated
// afterwards, so it can be read concurrently by any number of
// streaming sessions without locking. Every generator call produces
// an independently random value; nothing is cached between calls.
package generator

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Func produces one fresh fake value per call.
type Func func() string

// Registry maps placeholder keys to value generators.
type Registry struct {
	generators map[string]Func
	keys       []string
}

// New creates a Registry from the given key → generator mapping.
// The map is copied; the Registry is immutable after construction.
func New(generators map[string]Func) *Registry {
	m := make(map[string]Func, len(generators))
	keys := make([]string, 0, len(generators))
	for key, fn := range generators {
		m[key] = fn
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return &Registry{generators: m, keys: keys}
}

// Default builds the registry of built-in generators.
func Default() *Registry {
	return New(map[string]Func{
		"address":     fakeAddress,
		"boolean":     fakeBoolean,
		"city":        fakeCity,
		"color":       fakeHexColor,
		"credit_card": fakeCreditCard,
		"datetime":    func() string { return time.Now().UTC().Format(time.RFC3339) },
		"email":       fakeEmail,
		"ipv4":        fakeIPv4,
		"name":        fakeName,
		"number":      fakeNumber,
		"paragraph":   fakeParagraph,
		"phone":       fakePhone,
		"uuid":        func() string { return uuid.New().String() },
		"words":       fakeWords,
		"zip":         fakeZip,
	})
}

// Lookup returns the generator for key, if one is registered.
func (r *Registry) Lookup(key string) (Func, bool) {
	fn, ok := r.generators[key]
	return fn, ok
}

// Keys returns the registered placeholder keys in sorted order.
// The returned slice is a copy and safe to modify.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of registered generators.
func (r *Registry) Len() int {
	return len(r.generators)
}
