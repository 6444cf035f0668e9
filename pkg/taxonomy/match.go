package taxonomy

import (
	"github.com/voidshard/beanbook/pkg/domain"
)

// Matches reports whether tx belongs to the leaf described by s: its category
// must be one of s.Categories, and its labels must pass the label test.
//
// With no labels configured every in-category transaction passes. Otherwise
// Include needs a shared label and Exclude needs none, so an unlabelled
// transaction lands in Exclude leaves but never in Include leaves.
func (s FlowSelector) Matches(tx domain.Transaction) bool {
	return s.hasCategory(tx.Category) && s.passesLabels(tx.Labels)
}

func (s FlowSelector) hasCategory(category string) bool {
	for _, c := range s.Categories {
		if c == category {
			return true
		}
	}
	return false
}

func (s FlowSelector) passesLabels(labels domain.LabelSet) bool {
	if len(s.Labels) == 0 {
		return true
	}
	if s.Logic == Exclude {
		return labels.Disjoint(s.Labels)
	}
	return labels.Intersects(s.Labels)
}
