package function

import (
	"fmt"
	"strings"
)

// Key is a normalized (upper-cased) function name or alias.
// It is never used for display.
type Key string

// Normalize upper-cases a raw identifier into a lookup key.
func Normalize(name string) Key {
	return Key(strings.ToUpper(name))
}

// Kind classifies a function for listing purposes.
type Kind int

const (
	KindScalar Kind = iota
	KindAggregate
)

var kindNames = map[Kind]string{
	KindScalar:    "SCALAR",
	KindAggregate: "AGGREGATE",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Definition pairs a function's declared names with its builder.
// Definitions are immutable once created.
type Definition struct {
	name    string
	key     Key
	aliases []string
	kind    Kind
	builder Builder
}

// Def declares a scalar function. name is the primary name.
func Def(name string, b Builder, aliases ...string) *Definition {
	return newDefinition(name, KindScalar, b, aliases)
}

// DefAggregate declares an aggregate function.
func DefAggregate(name string, b Builder, aliases ...string) *Definition {
	return newDefinition(name, KindAggregate, b, aliases)
}

func newDefinition(name string, kind Kind, b Builder, aliases []string) *Definition {
	if name == "" {
		panic("function definition requires a name")
	}
	if b == nil {
		panic(fmt.Sprintf("function %s has no builder", name))
	}
	return &Definition{
		name:    name,
		key:     Normalize(name),
		aliases: append([]string(nil), aliases...),
		kind:    kind,
		builder: b,
	}
}

// Name returns the primary name as declared.
func (d *Definition) Name() string { return d.name }

// Key returns the canonical lookup key.
func (d *Definition) Key() Key { return d.key }

// Aliases returns the declared aliases.
func (d *Definition) Aliases() []string { return append([]string(nil), d.aliases...) }

// Kind returns the function kind.
func (d *Definition) Kind() Kind { return d.kind }

// Builder returns the constructor the definition wraps.
func (d *Definition) Builder() Builder { return d.builder }

// Shape returns the builder's signature tag.
func (d *Definition) Shape() Shape { return d.builder.Shape() }

// Datetime reports whether the function is time zone aware.
func (d *Definition) Datetime() bool { return d.builder.Shape() == ShapeUnaryDatetime }

// declaredAlias returns the alias of d, as declared, that normalizes to key.
// The primary name is not an alias.
func (d *Definition) declaredAlias(key Key) (string, bool) {
	for _, a := range d.aliases {
		if Normalize(a) == key {
			return a, true
		}
	}
	return "", false
}

func (d *Definition) String() string {
	return d.name
}
