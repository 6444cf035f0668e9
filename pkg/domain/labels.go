package domain

import (
	"encoding/json"
	"sort"
)

// LabelSet is an unordered set of transaction labels.
type LabelSet map[string]struct{}

// NewLabelSet builds a set from the given labels, dropping duplicates.
func NewLabelSet(labels ...string) LabelSet {
	s := make(LabelSet, len(labels))
	for _, l := range labels {
		s[l] = struct{}{}
	}
	return s
}

func (s LabelSet) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// Intersects reports whether s and o share at least one label.
func (s LabelSet) Intersects(o LabelSet) bool {
	small, big := s, o
	if len(small) > len(big) {
		small, big = big, small
	}
	for l := range small {
		if big.Has(l) {
			return true
		}
	}
	return false
}

// Disjoint is the negation of Intersects; two empty sets are disjoint.
func (s LabelSet) Disjoint(o LabelSet) bool {
	return !s.Intersects(o)
}

// Clone returns an independent copy; the copy of a nil set is empty, not nil.
func (s LabelSet) Clone() LabelSet {
	c := make(LabelSet, len(s))
	for l := range s {
		c[l] = struct{}{}
	}
	return c
}

// Sorted returns the labels in lexical order.
func (s LabelSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func (s LabelSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *LabelSet) UnmarshalJSON(data []byte) error {
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	*s = NewLabelSet(labels...)
	return nil
}
