package surface

import (
	"errors"
	"fmt"
)

var (
	ErrModuleLoad      = errors.New("module load failed")
	ErrMissingSymbol   = errors.New("missing symbol")
	ErrNotInvocable    = errors.New("symbol is not invocable")
	ErrPredicateFailed = errors.New("predicate failed")
)

// ModuleLoadError reports that the module itself could not be loaded.
type ModuleLoadError struct {
	Module string
	Err    error
}

func (e *ModuleLoadError) Error() string {
	return fmt.Sprintf("load module %q: %v", e.Module, e.Err)
}

func (e *ModuleLoadError) Unwrap() []error {
	return []error{ErrModuleLoad, e.Err}
}

// MissingSymbolError reports a name the module does not expose.
type MissingSymbolError struct {
	Module string
	Name   string
}

func (e *MissingSymbolError) Error() string {
	return fmt.Sprintf("%s: symbol %q not found", e.Module, e.Name)
}

func (e *MissingSymbolError) Unwrap() error { return ErrMissingSymbol }

// NotInvocableError reports a symbol expected to be a function that cannot be called.
type NotInvocableError struct {
	Module string
	Name   string
	Type   string
}

func (e *NotInvocableError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s: %q is not invocable", e.Module, e.Name)
	}
	return fmt.Sprintf("%s: %q is not invocable (type %s)", e.Module, e.Name, e.Type)
}

func (e *NotInvocableError) Unwrap() error { return ErrNotInvocable }

// PredicateFailedError reports a value of the wrong type or shape.
type PredicateFailedError struct {
	Module    string
	Name      string
	Predicate string
	Type      string
}

func (e *PredicateFailedError) Error() string {
	typ := e.Type
	if typ == "" {
		typ = "unknown type"
	}
	return fmt.Sprintf("%s: %q does not satisfy %q (%s)", e.Module, e.Name, e.Predicate, typ)
}

func (e *PredicateFailedError) Unwrap() error { return ErrPredicateFailed }
