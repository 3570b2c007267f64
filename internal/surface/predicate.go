package surface

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// Predicate is a named check on a resolved symbol.
type Predicate struct {
	Name string
	Fn   func(Symbol) bool
}

// Apply runs the predicate. A nil Fn never passes, and neither does a type
// declaration: predicates describe values.
func (p *Predicate) Apply(s Symbol) bool {
	if p == nil || p.Fn == nil || s.Decl == "type" {
		return false
	}
	return p.Fn(s)
}

var (
	IsString = &Predicate{Name: "string", Fn: func(s Symbol) bool {
		return s.Underlying == "string"
	}}
	IsInt = &Predicate{Name: "int", Fn: func(s Symbol) bool {
		return isInteger(s.Underlying)
	}}
	IsBool = &Predicate{Name: "bool", Fn: func(s Symbol) bool {
		return s.Underlying == "bool"
	}}
	NonEmpty = &Predicate{Name: "nonempty", Fn: func(s Symbol) bool {
		v, ok := s.Value.(string)
		return ok && v != ""
	}}
	SemVer = &Predicate{Name: "semver", Fn: func(s Symbol) bool {
		v, ok := s.Value.(string)
		if !ok || v == "" {
			return false
		}
		if !strings.HasPrefix(v, "v") {
			v = "v" + v
		}
		return semver.IsValid(v)
	}}
)

var builtinPredicates = map[string]*Predicate{
	IsString.Name: IsString,
	IsInt.Name:    IsInt,
	IsBool.Name:   IsBool,
	NonEmpty.Name: NonEmpty,
	SemVer.Name:   SemVer,
}

// LookupPredicate returns the built-in predicate registered under name.
func LookupPredicate(name string) (*Predicate, bool) {
	p, ok := builtinPredicates[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// PredicateNames lists the built-in predicate names in sorted order.
func PredicateNames() []string {
	names := make([]string, 0, len(builtinPredicates))
	for name := range builtinPredicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isInteger(underlying string) bool {
	switch underlying {
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"byte", "rune":
		return true
	}
	return false
}
