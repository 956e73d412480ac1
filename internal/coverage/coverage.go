// Package coverage summarizes how well the merged tables cover each feature
// domain.
package coverage

import (
	"fmt"
	"io"
	"strings"

	"github.com/jamesainslie/go-typology/domain"
	"github.com/jamesainslie/go-typology/profile"
)

// Domain holds coverage counts for one feature domain.
type Domain struct {
	Domain *domain.Domain
	Known  int
	Unset  int
	// Counts holds the number of languages per known category, in category order.
	Counts []int
}

// Rate is the fraction of languages with a known value.
func (d Domain) Rate() float64 {
	total := d.Known + d.Unset
	if total == 0 {
		return 0
	}
	return float64(d.Known) / float64(total)
}

// Report holds coverage for a merged set of drafts.
type Report struct {
	Languages int
	Complete  int
	Domains   []Domain
}

// CompleteRate is the fraction of languages with every feature known.
func (r Report) CompleteRate() float64 {
	if r.Languages == 0 {
		return 0
	}
	return float64(r.Complete) / float64(r.Languages)
}

// Compute tallies drafts.
func Compute(drafts []profile.Draft) Report {
	r := Report{Languages: len(drafts)}
	for _, d := range domain.All() {
		r.Domains = append(r.Domains, Domain{
			Domain: d,
			Counts: make([]int, d.Arity()-1),
		})
	}

	for i := range drafts {
		if drafts[i].Complete() {
			r.Complete++
		}
		for j, d := range domain.All() {
			c, ok := drafts[i].Get(d.ID())
			if !ok {
				r.Domains[j].Unset++
				continue
			}
			r.Domains[j].Known++
			r.Domains[j].Counts[c]++
		}
	}
	return r
}

// Print writes r as an aligned text table.
func Print(w io.Writer, r Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%-24s %-8s %-8s %-8s  %s\n", "Domain", "Known", "Unset", "Rate", "Categories")
	b.WriteString(strings.Repeat("-", 78))
	b.WriteByte('\n')
	for _, dc := range r.Domains {
		cats := make([]string, 0, len(dc.Counts))
		for i, n := range dc.Counts {
			cats = append(cats, fmt.Sprintf("%s=%d", dc.Domain.CategoryName(domain.Category(i)), n))
		}
		fmt.Fprintf(&b, "%-24s %-8d %-8d %-8.2f  %s\n",
			dc.Domain.Name(), dc.Known, dc.Unset, dc.Rate(), strings.Join(cats, " "))
	}
	b.WriteString(strings.Repeat("-", 78))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Languages: %d  Complete: %d (%.2f)\n", r.Languages, r.Complete, r.CompleteRate())

	_, err := io.WriteString(w, b.String())
	return err
}
