package profile

import (
	"iter"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-typology/domain"
	"github.com/jamesainslie/go-typology/table"
)

// Set maps join keys to drafts. It is safe for concurrent use, so the five
// table passes may run in parallel; each pass writes only its own domain
// slot, which makes the result independent of pass interleaving.
type Set struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{drafts: make(map[string]*Draft)}
}

// Merge folds one record of domain id into the set. The draft for the
// record's join key is created on first sight. A code that parses to unknown
// clears the slot, revoking any earlier value for that key.
func (s *Set) Merge(id domain.ID, rec table.Record) error {
	key, err := rec.JoinKey()
	if err != nil {
		return err
	}
	c := domain.Get(id).Parse(rec.DomainElementKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[key]
	if !ok {
		d = NewDraft(key)
		s.drafts[key] = d
	}
	d.Set(id, c)
	return nil
}

// MergeTable folds every record of a parsed table into the set and returns
// the number of records merged. It stops at the first parse or key error.
func (s *Set) MergeTable(id domain.ID, records iter.Seq2[table.Record, error]) (int, error) {
	n := 0
	for rec, err := range records {
		if err != nil {
			return n, err
		}
		if err := s.Merge(id, rec); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Len returns the number of distinct join keys seen.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

// Draft returns a copy of the draft stored under key.
func (s *Set) Draft(key string) (Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[key]
	if !ok {
		return Draft{}, false
	}
	return *d, true
}

// Drafts returns copies of all drafts sorted by name.
func (s *Set) Drafts() []Draft {
	s.mu.Lock()
	drafts := lo.MapToSlice(s.drafts, func(_ string, d *Draft) Draft { return *d })
	s.mu.Unlock()

	sort.Slice(drafts, func(i, j int) bool { return drafts[i].Name < drafts[j].Name })
	return drafts
}

// Finalize returns the completed profiles sorted by name. Incomplete drafts
// are left out.
func (s *Set) Finalize() []Profile {
	return lo.FilterMap(s.Drafts(), func(d Draft, _ int) (Profile, bool) {
		return Finalize(&d)
	})
}
