package surface

import (
	"context"
	"errors"
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"github.com/almartin82/sdschooldata/internal/symbol"
)

var _ Loader = (*PackagesLoader)(nil)

const packagesLoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// PackagesLoader loads a Go package with full type information. References
// are package patterns ("./wrapper", "example.com/mod/pkg") resolved from Dir.
type PackagesLoader struct {
	Dir        string
	Env        []string
	BuildFlags []string
}

func (l *PackagesLoader) Name() string { return "packages" }

func (l *PackagesLoader) Load(ctx context.Context, ref string) (Module, error) {
	cfg := &packages.Config{
		Mode:       packagesLoadMode,
		Context:    ctx,
		Dir:        l.Dir,
		Env:        l.Env,
		BuildFlags: l.BuildFlags,
	}
	pkgs, err := packages.Load(cfg, ref)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ref, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("pattern %q matched %d packages, want 1", ref, len(pkgs))
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		errs := make([]error, 0, len(pkg.Errors))
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
		return nil, errors.Join(errs...)
	}
	if pkg.Types == nil || pkg.Types.Scope() == nil {
		return nil, fmt.Errorf("package %s has no type information", pkg.PkgPath)
	}

	root := l.Dir
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &typesModule{pkg: pkg, root: absRoot}, nil
}

type typesModule struct {
	pkg  *packages.Package
	root string
}

func (m *typesModule) Path() string { return m.pkg.PkgPath }

func (m *typesModule) Resolve(name string) (Symbol, bool) {
	if !token.IsExported(name) {
		return Symbol{}, false
	}
	obj := m.pkg.Types.Scope().Lookup(name)
	if obj == nil {
		return Symbol{}, false
	}

	qualifier := types.RelativeTo(m.pkg.Types)
	sym := Symbol{
		Name:     name,
		Kind:     KindValue,
		Type:     types.TypeString(obj.Type(), qualifier),
		Location: m.location(obj.Pos()),
	}

	switch o := obj.(type) {
	case *types.Func:
		sym.Kind = KindFunction
		sym.Decl = "func"
		sym.Invocable = true
		sym.Underlying = "func"
	case *types.Var:
		sym.Decl = "var"
		sym.Underlying = typeCategory(o.Type())
		sym.Invocable = sym.Underlying == "func"
	case *types.Const:
		sym.Decl = "const"
		typ := types.Default(o.Type())
		sym.Type = types.TypeString(typ, qualifier)
		sym.Underlying = typeCategory(typ)
		sym.Value = constantValue(o.Val())
	case *types.TypeName:
		sym.Decl = "type"
		sym.Underlying = typeCategory(o.Type())
	default:
		sym.Underlying = typeCategory(obj.Type())
	}
	return sym, true
}

func (m *typesModule) location(pos token.Pos) symbol.SymbolLocation {
	if m.pkg.Fset == nil || !pos.IsValid() {
		return symbol.SymbolLocation{}
	}
	p := m.pkg.Fset.Position(pos)
	relPath, err := filepath.Rel(m.root, p.Filename)
	if err != nil {
		relPath = p.Filename
	}
	return symbol.SymbolLocation{FilePath: relPath, Line: p.Line, Character: p.Column}
}

func typeCategory(t types.Type) string {
	if t == nil {
		return ""
	}
	switch u := types.Default(t).Underlying().(type) {
	case *types.Basic:
		if u.Kind() == types.UnsafePointer {
			return "unsafe.Pointer"
		}
		return u.Name()
	case *types.Signature:
		return "func"
	case *types.Struct:
		return "struct"
	case *types.Slice:
		return "slice"
	case *types.Array:
		return "array"
	case *types.Map:
		return "map"
	case *types.Pointer:
		return "pointer"
	case *types.Interface:
		return "interface"
	case *types.Chan:
		return "chan"
	}
	return ""
}

func constantValue(v constant.Value) any {
	if v == nil {
		return nil
	}
	switch v.Kind() {
	case constant.String:
		return constant.StringVal(v)
	case constant.Bool:
		return constant.BoolVal(v)
	case constant.Int:
		if i, ok := constant.Int64Val(v); ok {
			return i
		}
	case constant.Float:
		if f, ok := constant.Float64Val(v); ok {
			return f
		}
	}
	return v.ExactString()
}
