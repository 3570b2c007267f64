package surface

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"sync"
)

var _ Loader = (*Registry)(nil)

// Registry is an explicit, in-process module table. A wrapper package
// registers the symbols it exposes and the registry probes them with reflect.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]map[string]any
}

func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]map[string]any)}
}

// Register adds or replaces module. The symbol map is copied.
func (r *Registry) Register(module string, symbols map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules[module] = maps.Clone(symbols)
	if r.modules[module] == nil {
		r.modules[module] = map[string]any{}
	}
}

func (r *Registry) Name() string { return "registry" }

func (r *Registry) Load(ctx context.Context, ref string) (Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	symbols, ok := r.modules[ref]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("module %q is not registered", ref)
	}
	return &registryModule{path: ref, symbols: symbols}, nil
}

type registryModule struct {
	path    string
	symbols map[string]any
}

func (m *registryModule) Path() string { return m.path }

func (m *registryModule) Resolve(name string) (Symbol, bool) {
	v, ok := m.symbols[name]
	if !ok {
		return Symbol{}, false
	}
	return reflectSymbol(name, v), true
}

func reflectSymbol(name string, v any) Symbol {
	sym := Symbol{Name: name, Kind: KindValue, Decl: "var"}
	if v == nil {
		sym.Type = "nil"
		sym.Underlying = "nil"
		return sym
	}

	rv := reflect.ValueOf(v)
	sym.Type = rv.Type().String()
	sym.Underlying = reflectCategory(rv.Kind())
	switch rv.Kind() {
	case reflect.Func:
		sym.Kind = KindFunction
		sym.Decl = "func"
		sym.Invocable = !rv.IsNil()
	case reflect.String:
		sym.Value = rv.String()
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		sym.Value = v
	}
	return sym
}

func reflectCategory(k reflect.Kind) string {
	switch k {
	case reflect.Pointer:
		return "pointer"
	case reflect.UnsafePointer:
		return "unsafe.Pointer"
	default:
		// reflect spells the remaining kinds the way Go does.
		return k.String()
	}
}
