package domain

import (
	"sort"
	"strings"
)

// Filter describes which subset of the catalog a hydration should load.
//
// Exactly one field drives acquisition, chosen in fixed priority order:
// SetID, Series, Names, Name, then Rarities or Category. All other fields
// narrow the fetched cards afterwards. Types never drives acquisition.
type Filter struct {
	// SetID restricts to one set.
	SetID string `json:"set_id,omitempty"`

	// Series restricts to sets whose series name matches exactly.
	Series []string `json:"series,omitempty"`

	// Names matches cards whose name contains any entry.
	Names []string `json:"names,omitempty"`

	// Name is a single-name shorthand for Names.
	Name string `json:"name,omitempty"`

	// Category matches the card category exactly (case-insensitive).
	Category string `json:"category,omitempty"`

	// Rarities matches cards whose rarity label contains any entry.
	Rarities []string `json:"rarities,omitempty"`

	// Types matches cards carrying any of the given energy types.
	Types []string `json:"types,omitempty"`
}

// Normalize returns a copy with surrounding whitespace trimmed and blank
// values dropped.
func (f Filter) Normalize() Filter {
	return Filter{
		SetID:    strings.TrimSpace(f.SetID),
		Series:   cleanValues(f.Series),
		Names:    cleanValues(f.Names),
		Name:     strings.TrimSpace(f.Name),
		Category: strings.TrimSpace(f.Category),
		Rarities: cleanValues(f.Rarities),
		Types:    cleanValues(f.Types),
	}
}

// Validate returns ErrInvalidFilter if no field can drive acquisition.
func (f Filter) Validate() error {
	n := f.Normalize()
	if n.SetID == "" && len(n.Series) == 0 && len(n.Names) == 0 &&
		n.Name == "" && len(n.Rarities) == 0 && n.Category == "" {
		return ErrInvalidFilter
	}
	return nil
}

// NameTerms returns every requested name, Names first then Name.
func (f Filter) NameTerms() []string {
	terms := make([]string, 0, len(f.Names)+1)
	terms = append(terms, f.Names...)
	if f.Name != "" {
		terms = append(terms, f.Name)
	}
	return terms
}

// Key returns a canonical, order-independent representation of the filter.
// Two filters selecting the same cards produce the same key.
func (f Filter) Key() string {
	n := f.Normalize()
	parts := []string{
		"set=" + n.SetID,
		"series=" + joinSorted(n.Series, false),
		"names=" + joinSorted(n.NameTerms(), true),
		"category=" + strings.ToLower(n.Category),
		"rarities=" + joinSorted(n.Rarities, true),
		"types=" + joinSorted(n.Types, true),
	}
	return strings.Join(parts, ";")
}

// String returns a short human-readable description.
func (f Filter) String() string {
	n := f.Normalize()
	var parts []string
	if n.SetID != "" {
		parts = append(parts, "set "+n.SetID)
	}
	if len(n.Series) > 0 {
		parts = append(parts, "series "+strings.Join(n.Series, ", "))
	}
	if terms := n.NameTerms(); len(terms) > 0 {
		parts = append(parts, "name "+strings.Join(terms, ", "))
	}
	if len(n.Rarities) > 0 {
		parts = append(parts, "rarity "+strings.Join(n.Rarities, ", "))
	}
	if n.Category != "" {
		parts = append(parts, "category "+n.Category)
	}
	if len(n.Types) > 0 {
		parts = append(parts, "type "+strings.Join(n.Types, ", "))
	}
	if len(parts) == 0 {
		return "empty filter"
	}
	return strings.Join(parts, "; ")
}

func cleanValues(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func joinSorted(values []string, fold bool) string {
	sorted := make([]string, len(values))
	for i, v := range values {
		if fold {
			v = strings.ToLower(v)
		}
		sorted[i] = v
	}
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
