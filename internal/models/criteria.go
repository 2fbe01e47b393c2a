package models

import "time"

// StringSet is a membership set over group values. A nil set matches nothing,
// mirroring a multiselect with every option deselected.
type StringSet map[string]struct{}

func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return out
}

// FilterCriteria narrows the transaction table. Start and End are inclusive
// date bounds; Regions and Categories are conjunctive membership filters.
type FilterCriteria struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Regions    StringSet `json:"regions"`
	Categories StringSet `json:"categories"`
}
