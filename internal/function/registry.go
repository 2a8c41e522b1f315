package function

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// Registry maps canonical names to definitions and aliases to canonical names.
//
// A Registry is built once and then only read. Lookups take no locks, so every
// call to Add must happen before the registry is shared between goroutines.
type Registry struct {
	byName  map[Key]*Definition
	byAlias map[Key]Key
}

// NewRegistry builds a registry from batches, applied in order.
func NewRegistry(batches ...[]*Definition) (*Registry, error) {
	r := &Registry{
		byName:  make(map[Key]*Definition),
		byAlias: make(map[Key]Key),
	}
	for _, batch := range batches {
		if err := r.Add(batch...); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers a batch of definitions. The name and every alias of each
// definition must be unused, case-insensitively, across the registry and the
// rest of the batch. On the first collision nothing from the batch is applied.
func (r *Registry) Add(batch ...*Definition) error {
	pending := make(map[Key]*Definition)

	for _, d := range batch {
		for _, raw := range append([]string{d.name}, d.aliases...) {
			key := Normalize(raw)

			if prev, ok := pending[key]; ok {
				existing := prev.name
				if alias, ok := prev.declaredAlias(key); ok {
					existing += "(" + alias + ")"
				}
				return &AliasConflictError{Alias: raw, Existing: existing, Incoming: d.name}
			}
			if owner, ok := r.byAlias[key]; ok {
				return &AliasConflictError{Alias: raw, Existing: r.byName[owner].name, Incoming: d.name}
			}
			pending[key] = d
		}
	}

	for key, d := range pending {
		r.byName[d.key] = d
		r.byAlias[key] = d.key
	}
	return nil
}

// ResolveAlias maps a name or alias, in any case, to its canonical name.
// Unknown names are returned upper-cased; ResolveFunction reports them.
func (r *Registry) ResolveAlias(name string) string {
	key := Normalize(name)
	if canonical, ok := r.byAlias[key]; ok {
		return string(canonical)
	}
	return string(key)
}

// ResolveFunction returns the definition registered under a canonical name.
// A miss means analysis let an unknown name through, so the error is marked
// as an assertion failure.
func (r *Registry) ResolveFunction(name string) (*Definition, error) {
	key := Normalize(name)
	d, ok := r.byName[key]
	if !ok {
		return nil, errors.WithAssertionFailure(&UnknownFunctionError{Name: key})
	}
	return d, nil
}

// Exists reports whether name, or the function it aliases, is registered.
func (r *Registry) Exists(name string) bool {
	_, ok := r.byName[Key(r.ResolveAlias(name))]
	return ok
}

// Len returns the number of registered functions.
func (r *Registry) Len() int { return len(r.byName) }

// Names returns every canonical name and alias, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byAlias))
	for key := range r.byAlias {
		names = append(names, string(key))
	}
	sort.Strings(names)
	return names
}

// List returns definitions whose canonical name matches a SQL LIKE pattern,
// sorted by name. An empty pattern matches everything.
func (r *Registry) List(pattern string) ([]*Definition, error) {
	var match *regexp.Regexp
	if pattern != "" {
		var err error
		if match, err = likeToRegexp(pattern); err != nil {
			return nil, err
		}
	}

	defs := make([]*Definition, 0, len(r.byName))
	for key, d := range r.byName {
		if match == nil || match.MatchString(string(key)) {
			defs = append(defs, d)
		}
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].key < defs[j].key })
	return defs, nil
}

// likeToRegexp converts a LIKE pattern (% any run, _ any char, \ escape) into a
// case-insensitive anchored regular expression.
func likeToRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?is)^")
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch ch := runes[i]; ch {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		case '\\':
			if i+1 >= len(runes) {
				return nil, errors.Newf("invalid pattern [%s]: escape character at end of pattern", pattern)
			}
			i++
			b.WriteString(regexp.QuoteMeta(string(runes[i])))
		default:
			b.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
