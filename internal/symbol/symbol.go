package symbol

import "go/token"

// SymbolLocation represents where a symbol is defined.
type SymbolLocation struct {
	FilePath  string // relative to the resolver root
	Line      int    // 1-based
	Character int    // 1-based
}

// DeclKind classifies a top-level declaration.
type DeclKind int

const (
	DeclFunc DeclKind = iota + 1
	DeclVar
	DeclConst
	DeclType
)

func (k DeclKind) String() string {
	switch k {
	case DeclFunc:
		return "func"
	case DeclVar:
		return "var"
	case DeclConst:
		return "const"
	case DeclType:
		return "type"
	default:
		return "unknown"
	}
}

// Declaration describes a top-level declaration as written in source.
// Type is the declared type expression, empty when the declaration omits it.
// Literal holds the raw basic literal assigned to a var or const, with
// LiteralKind set to its token (STRING, INT, ...). The predeclared true and
// false are recorded with LiteralKind IDENT, and iota as its INT value.
type Declaration struct {
	Name        string
	Kind        DeclKind
	Type        string
	Receiver    string // methods only
	FuncValue   bool   // initialized with a function literal
	Literal     string
	LiteralKind token.Token
	Location    SymbolLocation
}

// Resolver finds symbol definitions by name.
type Resolver interface {
	FindSymbol(name string) ([]SymbolLocation, error)
}

// Describer lists the top-level declarations of a single package directory.
type Describer interface {
	Describe(dir string) (map[string]Declaration, error)
}
