package surface

import (
	"context"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/almartin82/sdschooldata/internal/symbol"
)

var _ Loader = (*ASTLoader)(nil)

// ASTLoader loads a package directory by parsing it, without type checking.
// Types are known only as far as the source spells them out, so a value
// declared with a named type reports an empty Underlying.
type ASTLoader struct {
	Root string
}

func (l *ASTLoader) Name() string { return "ast" }

func (l *ASTLoader) Load(ctx context.Context, ref string) (Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root := l.Root
	if root == "" {
		root = "."
	}
	dir := ref
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, ref)
	}

	decls, err := symbol.NewASTResolver(root).Describe(dir)
	if err != nil {
		return nil, err
	}
	return &astModule{path: ref, decls: decls}, nil
}

type astModule struct {
	path  string
	decls map[string]symbol.Declaration
}

func (m *astModule) Path() string { return m.path }

func (m *astModule) Resolve(name string) (Symbol, bool) {
	if !token.IsExported(name) {
		return Symbol{}, false
	}
	decl, ok := m.decls[name]
	if !ok {
		return Symbol{}, false
	}
	return declSymbol(decl), true
}

func declSymbol(decl symbol.Declaration) Symbol {
	sym := Symbol{
		Name:       decl.Name,
		Kind:       KindValue,
		Decl:       decl.Kind.String(),
		Type:       decl.Type,
		Underlying: exprCategory(decl.Type),
		Location:   decl.Location,
	}

	switch decl.Kind {
	case symbol.DeclFunc:
		sym.Kind = KindFunction
		sym.Invocable = true
		sym.Underlying = "func"
	case symbol.DeclVar, symbol.DeclConst:
		if decl.FuncValue {
			sym.Underlying = "func"
		}
		sym.Invocable = sym.Underlying == "func"
		if decl.LiteralKind != token.ILLEGAL {
			if sym.Type == "" {
				sym.Type = literalType(decl.LiteralKind)
				sym.Underlying = sym.Type
			}
			sym.Value = literalValue(decl.LiteralKind, decl.Literal)
		}
	}
	return sym
}

var basicTypeNames = map[string]bool{
	"bool": true, "string": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"byte": true, "rune": true,
	"float32": true, "float64": true, "complex64": true, "complex128": true,
}

// exprCategory classifies a type expression as written in source.
func exprCategory(expr string) string {
	switch {
	case expr == "":
		return ""
	case basicTypeNames[expr]:
		return expr
	case expr == "error", expr == "any":
		return "interface"
	case strings.HasPrefix(expr, "func("):
		return "func"
	case strings.HasPrefix(expr, "[]"):
		return "slice"
	case strings.HasPrefix(expr, "["):
		return "array"
	case strings.HasPrefix(expr, "map["):
		return "map"
	case strings.HasPrefix(expr, "*"):
		return "pointer"
	case strings.HasPrefix(expr, "struct{"):
		return "struct"
	case strings.HasPrefix(expr, "interface{"):
		return "interface"
	case strings.HasPrefix(expr, "chan"), strings.HasPrefix(expr, "<-chan"):
		return "chan"
	}
	return ""
}

func literalType(kind token.Token) string {
	switch kind {
	case token.STRING:
		return "string"
	case token.INT:
		return "int"
	case token.FLOAT:
		return "float64"
	case token.CHAR:
		return "rune"
	case token.IMAG:
		return "complex128"
	case token.IDENT:
		return "bool"
	}
	return ""
}

func literalValue(kind token.Token, lit string) any {
	switch kind {
	case token.STRING:
		if s, err := strconv.Unquote(lit); err == nil {
			return s
		}
	case token.INT:
		if i, err := strconv.ParseInt(lit, 0, 64); err == nil {
			return i
		}
	case token.FLOAT:
		if f, err := strconv.ParseFloat(lit, 64); err == nil {
			return f
		}
	case token.IDENT:
		return lit == "true"
	}
	return nil
}
