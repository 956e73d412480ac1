// Package profile merges per-feature table records into one profile per
// language.
//
// A Draft collects an optional category per domain while the tables are
// folded in. Finalize turns a Draft into a Profile only when every domain is
// set; incomplete drafts are expected and are dropped without error.
package profile

import (
	"strings"

	"github.com/jamesainslie/go-typology/domain"
)

// Draft is an in-progress profile keyed by join key.
type Draft struct {
	Name   string
	values [domain.Count]domain.Category
	set    [domain.Count]bool
}

// NewDraft returns an empty draft named key.
func NewDraft(key string) *Draft {
	return &Draft{Name: key}
}

// Get returns the category stored for id and whether one is set.
func (d *Draft) Get(id domain.ID) (domain.Category, bool) {
	return d.values[id], d.set[id]
}

// Set stores c for id, or clears the slot when c is the domain's unknown
// category. Clearing revokes any value stored earlier.
func (d *Draft) Set(id domain.ID, c domain.Category) {
	if domain.Get(id).IsUnknown(c) {
		d.Clear(id)
		return
	}
	d.values[id] = c
	d.set[id] = true
}

// Clear removes the value stored for id.
func (d *Draft) Clear(id domain.ID) {
	d.values[id] = 0
	d.set[id] = false
}

// Complete reports whether every domain is set.
func (d *Draft) Complete() bool {
	for _, ok := range d.set {
		if !ok {
			return false
		}
	}
	return true
}

// Profile is a completed language profile. It is a plain value: copies are
// independent and With never touches the receiver.
type Profile struct {
	Name   string
	Values [domain.Count]domain.Category
}

// Finalize returns the completed profile for d, or false when any domain is
// unset.
func Finalize(d *Draft) (Profile, bool) {
	if d == nil || !d.Complete() {
		return Profile{}, false
	}
	return Profile{Name: d.Name, Values: d.values}, true
}

// New builds a profile from explicit categories, one per domain in ID order.
func New(name string, values [domain.Count]domain.Category) Profile {
	return Profile{Name: name, Values: values}
}

// Get returns the category of domain id.
func (p Profile) Get(id domain.ID) domain.Category {
	return p.Values[id]
}

// With returns a copy of p with domain id set to c.
func (p Profile) With(id domain.ID, c domain.Category) Profile {
	p.Values[id] = c
	return p
}

// Masked returns a copy of p with domain id set to its unknown category.
func (p Profile) Masked(id domain.ID) Profile {
	return p.With(id, domain.Get(id).Unknown())
}

func (p Profile) String() string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteByte('{')
	for i, d := range domain.All() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d.CategoryName(p.Values[i]))
	}
	b.WriteByte('}')
	return b.String()
}
