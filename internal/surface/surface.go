// Package surface checks that a loaded module exposes an expected set of
// symbols: that each one exists, that the ones declared as functions are
// invocable, and that values satisfy simple type predicates.
package surface

import (
	"context"
	"fmt"
	"strings"

	"github.com/almartin82/sdschooldata/internal/symbol"
)

// Kind is the expected shape of a symbol.
type Kind int

const (
	KindUnknown Kind = iota
	KindFunction
	KindValue
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindValue:
		return "value"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind parses "function" or "value", ignoring case and surrounding space.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "function":
		return KindFunction, nil
	case "value":
		return KindValue, nil
	}
	return KindUnknown, fmt.Errorf("unknown symbol kind %q (want function or value)", s)
}

// Descriptor is one expected symbol. Predicate is optional.
type Descriptor struct {
	Name      string
	Kind      Kind
	Predicate *Predicate
}

// Func is shorthand for a function descriptor.
func Func(name string) Descriptor {
	return Descriptor{Name: name, Kind: KindFunction}
}

// Value is shorthand for a value descriptor with an optional predicate.
func Value(name string, p *Predicate) Descriptor {
	return Descriptor{Name: name, Kind: KindValue, Predicate: p}
}

// Symbol is what a Module hands back for a resolved name.
//
// Underlying is the category of the symbol's underlying type using Go's
// spelling for basic types ("string", "int", "float64", "bool", ...) and
// "func", "struct", "slice", "map", "pointer", "interface", "chan", "array"
// otherwise. It is empty when the loader cannot tell. Value is the constant
// or runtime value when the loader knows it.
type Symbol struct {
	Name       string
	Kind       Kind
	Decl       string
	Invocable  bool
	Type       string
	Underlying string
	Value      any
	Location   symbol.SymbolLocation
}

// Module is an opaque, read-only handle on a loaded package.
type Module interface {
	Path() string
	Resolve(name string) (Symbol, bool)
}

// Loader loads a module by reference. Implementations are safe for
// concurrent use.
type Loader interface {
	Name() string
	Load(ctx context.Context, ref string) (Module, error)
}
