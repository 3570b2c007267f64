package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_builtinPredicates(t *testing.T) {
	tests := []struct {
		name string
		pred *Predicate
		sym  Symbol
		want bool
	}{
		{"string passes", IsString, Symbol{Underlying: "string"}, true},
		{"string rejects int", IsString, Symbol{Underlying: "int"}, false},
		{"string rejects unknown", IsString, Symbol{}, false},
		{"string rejects type declaration", IsString, Symbol{Decl: "type", Underlying: "string"}, false},
		{"nonempty rejects type declaration", NonEmpty, Symbol{Decl: "type", Value: "x"}, false},
		{"int accepts int64", IsInt, Symbol{Underlying: "int64"}, true},
		{"int accepts byte", IsInt, Symbol{Underlying: "byte"}, true},
		{"int rejects float", IsInt, Symbol{Underlying: "float64"}, false},
		{"bool", IsBool, Symbol{Underlying: "bool"}, true},
		{"nonempty passes", NonEmpty, Symbol{Value: "x"}, true},
		{"nonempty rejects empty", NonEmpty, Symbol{Value: ""}, false},
		{"nonempty rejects unknown value", NonEmpty, Symbol{Underlying: "string"}, false},
		{"semver bare", SemVer, Symbol{Value: "1.2.0"}, true},
		{"semver prefixed", SemVer, Symbol{Value: "v0.3.1-rc.1"}, true},
		{"semver rejects text", SemVer, Symbol{Value: "dev"}, false},
		{"semver rejects int", SemVer, Symbol{Value: 42}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred.Apply(tt.sym))
		})
	}
}

func Test_Predicate_nilNeverPasses(t *testing.T) {
	var p *Predicate
	assert.False(t, p.Apply(Symbol{Underlying: "string"}))
	assert.False(t, (&Predicate{Name: "empty"}).Apply(Symbol{}))
}

func Test_LookupPredicate(t *testing.T) {
	p, ok := LookupPredicate(" String ")
	assert.True(t, ok)
	assert.Same(t, IsString, p)

	_, ok = LookupPredicate("callable")
	assert.False(t, ok)

	assert.Equal(t, []string{"bool", "int", "nonempty", "semver", "string"}, PredicateNames())
}
