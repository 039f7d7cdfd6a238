package names

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Collision records a variant claimed by two different canonical names.
// The later name keeps the variant.
type Collision struct {
	Variant  string
	Previous string
	Winner   string
}

// Resolver maps alternate spellings of player names back to the canonical
// "First Last" form used by the lineups. It is built once per run and is
// read-only afterwards.
type Resolver struct {
	variants   []string
	canonical  map[string]string
	folded     map[string]string
	collisions []Collision
}

// NewResolver generates variants for every name. Empty names are skipped.
func NewResolver(canonicalNames []string) *Resolver {
	r := &Resolver{
		canonical: make(map[string]string),
		folded:    make(map[string]string),
	}
	for _, name := range canonicalNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		for _, variant := range Variants(name) {
			r.add(variant, name)
		}
	}
	return r
}

func (r *Resolver) add(variant, name string) {
	if prev, ok := r.canonical[variant]; ok && prev != name {
		r.collisions = append(r.collisions, Collision{Variant: variant, Previous: prev, Winner: name})
	}
	r.variants = append(r.variants, variant)
	r.canonical[variant] = name
	r.folded[strings.ToLower(variant)] = name
}

// Variants returns every generated variant, duplicates included.
func (r *Resolver) Variants() []string {
	out := make([]string, len(r.variants))
	copy(out, r.variants)
	return out
}

// Canonical maps a variant back to its canonical name. Exact matches win over
// case-insensitive ones.
func (r *Resolver) Canonical(variant string) (string, bool) {
	if name, ok := r.canonical[variant]; ok {
		return name, true
	}
	name, ok := r.folded[strings.ToLower(strings.TrimSpace(variant))]
	return name, ok
}

// Mapping returns a copy of the variant to canonical mapping
func (r *Resolver) Mapping() map[string]string {
	return maps.Clone(r.canonical)
}

// Collisions lists variants that were overwritten by a later name
func (r *Resolver) Collisions() []Collision {
	return r.collisions
}

// Len returns the number of distinct variants
func (r *Resolver) Len() int {
	return len(r.canonical)
}

// Variants generates the alternate representations of one "First Last" style
// name in a fixed order. The name itself is always the first element.
func Variants(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	out := []string{name}
	push := func(v string) {
		if v != "" {
			out = append(out, v)
		}
	}

	normalized := Normalize(name)
	if normalized != name {
		push(normalized)
	}
	if lower := strings.ToLower(normalized); lower != normalized {
		push(lower)
	}

	parts := strings.Fields(name)
	switch {
	case len(parts) == 2:
		first, last := parts[0], parts[1]
		inverted := fmt.Sprintf("%s, %s", last, first)
		push(inverted)

		normFirst, normLast := Normalize(first), Normalize(last)
		if normFirst != "" && normLast != "" {
			if normInverted := fmt.Sprintf("%s, %s", normLast, normFirst); normInverted != inverted {
				push(normInverted)
			}
		}
		push(fmt.Sprintf("%s, %s.", last, firstRune(first)))

	case len(parts) == 3 && IsSuffix(parts[2]):
		first, last, suffix := parts[0], parts[1], parts[2]
		push(fmt.Sprintf("%s %s, %s", last, suffix, first))
		push(fmt.Sprintf("%s, %s", last, first))

	case len(parts) == 3:
		first, middle, last := parts[0], parts[1], parts[2]
		push(fmt.Sprintf("%s, %s %s", last, first, middle))
		push(fmt.Sprintf("%s, %s", last, first))
	}

	if len(parts) >= 2 {
		out = append(out, nicknameVariants(parts)...)
	}
	return out
}

// nicknameVariants swaps the first token for its nickname or full form
func nicknameVariants(parts []string) []string {
	first := strings.ToLower(parts[0])
	last := parts[len(parts)-1]
	if IsSuffix(last) && len(parts) > 2 {
		last = parts[len(parts)-2]
	}
	title := cases.Title(language.English)

	var out []string
	if full, ok := fullName(first); ok {
		full = title.String(full)
		out = append(out, fmt.Sprintf("%s, %s", last, full), fmt.Sprintf("%s %s", full, last))
	}
	for _, nick := range shortNames(first) {
		nick = title.String(nick)
		out = append(out, fmt.Sprintf("%s, %s", last, nick), fmt.Sprintf("%s %s", nick, last))
	}
	return out
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// Remap re-keys records whose key is any known variant onto the canonical
// name. Keys already present in dst are kept, so callers merge the preferred
// source first. Source keys are visited in sorted order. It returns the number
// of records added.
func Remap[T any](r *Resolver, src map[string]T, dst map[string]T) int {
	added := 0
	for _, key := range slices.Sorted(maps.Keys(src)) {
		record := src[key]
		name, ok := r.Canonical(key)
		if !ok {
			continue
		}
		if _, exists := dst[name]; exists {
			continue
		}
		dst[name] = record
		added++
	}
	return added
}
