// Package domain defines the five closed typological feature domains and
// their one-hot encodings.
//
// Every domain is described by a single Domain value: an ordered category
// list whose last entry is the domain's unknown category, plus a mapping from
// raw WALS domain-element codes to category indices. Unmapped codes parse to
// the unknown category, so parsing never fails.
package domain

import "fmt"

// ID identifies one of the five domains. The numeric order is the column
// order of every encoded row.
type ID int

const (
	ConsonantVowelRatio ID = iota
	Case
	ObjectVerb
	GenitiveNoun
	AdjectiveNoun
)

// Count is the number of domains.
const Count = 5

// Category is an index into a domain's ordered category list.
type Category int

// Domain describes one closed categorical feature.
type Domain struct {
	id         ID
	name       string
	feature    string
	suffix     string
	categories []string
	codes      map[string]Category
}

func newDomain(id ID, name, feature, suffix string, categories []string, codes map[string]Category) *Domain {
	if len(categories) < 2 {
		panic(fmt.Sprintf("domain %s: need at least one known category plus unknown", name))
	}
	for code, c := range codes {
		if c < 0 || int(c) >= len(categories)-1 {
			panic(fmt.Sprintf("domain %s: code %q maps outside the known categories", name, code))
		}
	}
	return &Domain{
		id:         id,
		name:       name,
		feature:    feature,
		suffix:     suffix,
		categories: categories,
		codes:      codes,
	}
}

// ID returns the domain's position in the fixed domain order.
func (d *Domain) ID() ID { return d.id }

// Name returns a human readable domain name.
func (d *Domain) Name() string { return d.name }

// Feature returns the WALS feature identifier of the domain's source table.
func (d *Domain) Feature() string { return d.feature }

// Suffix returns the column-name suffix shared by the domain's categories.
func (d *Domain) Suffix() string { return d.suffix }

// Arity returns the number of categories including unknown.
func (d *Domain) Arity() int { return len(d.categories) }

// Unknown returns the domain's unknown category.
func (d *Domain) Unknown() Category { return Category(len(d.categories) - 1) }

// IsUnknown reports whether c is the unknown category.
func (d *Domain) IsUnknown(c Category) bool { return c == d.Unknown() }

// Parse maps a raw domain-element code to a category. Codes outside the
// mapping resolve to Unknown.
func (d *Domain) Parse(code string) Category {
	if c, ok := d.codes[code]; ok {
		return c
	}
	return d.Unknown()
}

// CategoryName returns the column name of c, e.g. "LowCVR".
func (d *Domain) CategoryName(c Category) string {
	if !d.valid(c) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return d.categories[c]
}

// EncodeFull returns the one-hot vector of c over all categories, unknown
// included. The vector has Arity() entries and exactly one 1.
func (d *Domain) EncodeFull(c Category) []float64 {
	if !d.valid(c) {
		c = d.Unknown()
	}
	v := make([]float64, d.Arity())
	v[c] = 1
	return v
}

// EncodeCollapsed returns the one-hot vector of c over the known categories
// only. Unknown has no slot and encodes as the all-zero vector.
func (d *Domain) EncodeCollapsed(c Category) []float64 {
	v := make([]float64, d.Arity()-1)
	if d.valid(c) && !d.IsUnknown(c) {
		v[c] = 1
	}
	return v
}

// InputColumns returns the column names of the full encoding.
func (d *Domain) InputColumns() []string {
	return append([]string(nil), d.categories...)
}

// OutputColumns returns the column names of the collapsed encoding.
func (d *Domain) OutputColumns() []string {
	return append([]string(nil), d.categories[:len(d.categories)-1]...)
}

func (d *Domain) valid(c Category) bool {
	return c >= 0 && int(c) < len(d.categories)
}

func (d *Domain) String() string { return d.name }
