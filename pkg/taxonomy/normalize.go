package taxonomy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/voidshard/beanbook/pkg/domain"
)

// Kind tells which statement family a taxonomy serves.
type Kind int

const (
	Unknown Kind = iota
	Balances
	Flows
)

func (k Kind) String() string {
	switch k {
	case Balances:
		return "balance"
	case Flows:
		return "flow"
	default:
		return "unknown"
	}
}

// Kind reports the selector kind shared by every leaf, or Unknown for an empty
// or mixed taxonomy.
func (t Taxonomy) Kind() Kind {
	kind := Unknown
	mixed := false
	t.Walk(func(_ Key, sel Selector) {
		k := selectorKind(sel)
		if kind == Unknown {
			kind = k
		} else if k != kind {
			mixed = true
		}
	})
	if mixed {
		return Unknown
	}
	return kind
}

func selectorKind(sel Selector) Kind {
	switch sel.(type) {
	case BalanceSelector, *BalanceSelector:
		return Balances
	case FlowSelector, *FlowSelector:
		return Flows
	default:
		return Unknown
	}
}

// Normalize validates t and returns an independent, fully populated copy with
// sections, groups and leaves in lexical order. Flow selectors get an empty
// (non-nil) label set and de-duplicated, sorted categories. The caller's value
// is never modified.
func Normalize(t Taxonomy) (Taxonomy, error) {
	var problems []string
	fail := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	out := Taxonomy{Sections: make([]Section, 0, len(t.Sections))}
	kind := Unknown
	leaves := 0

	seenSections := map[string]bool{}
	for _, s := range t.Sections {
		switch {
		case strings.TrimSpace(s.Name) == "":
			fail("category with empty name")
			continue
		case s.Name == Net:
			fail("category %q is reserved", Net)
			continue
		case seenSections[s.Name]:
			fail("duplicate category %q", s.Name)
			continue
		}
		seenSections[s.Name] = true

		section := Section{Name: s.Name, Groups: make([]Group, 0, len(s.Groups))}
		seenGroups := map[string]bool{}
		for _, g := range s.Groups {
			switch {
			case strings.TrimSpace(g.Name) == "":
				fail("%s: type with empty name", s.Name)
				continue
			case g.Name == Total:
				fail("%s: type %q is reserved", s.Name, Total)
				continue
			case seenGroups[g.Name]:
				fail("%s: duplicate type %q", s.Name, g.Name)
				continue
			}
			seenGroups[g.Name] = true

			group := Group{Name: g.Name, Leaves: make([]Leaf, 0, len(g.Leaves))}
			seenLeaves := map[string]bool{}
			for _, l := range g.Leaves {
				key := Key{Category: s.Name, Type: g.Name, Item: l.Name}
				switch {
				case strings.TrimSpace(l.Name) == "":
					fail("%s / %s: item with empty name", s.Name, g.Name)
					continue
				case l.Name == Total:
					fail("%s: item %q is reserved", key, Total)
					continue
				case seenLeaves[l.Name]:
					fail("duplicate item %s", key)
					continue
				}
				seenLeaves[l.Name] = true

				sel, err := normalizeSelector(l.Selector)
				if err != nil {
					fail("%s: %v", key, err)
					continue
				}
				k := selectorKind(sel)
				if kind == Unknown {
					kind = k
				} else if k != kind {
					fail("%s: %s selector in a %s taxonomy", key, k, kind)
					continue
				}

				group.Leaves = append(group.Leaves, Leaf{Name: l.Name, Selector: sel})
				leaves++
			}
			sort.Slice(group.Leaves, func(i, j int) bool { return group.Leaves[i].Name < group.Leaves[j].Name })
			section.Groups = append(section.Groups, group)
		}
		sort.Slice(section.Groups, func(i, j int) bool { return section.Groups[i].Name < section.Groups[j].Name })
		out.Sections = append(out.Sections, section)
	}
	sort.Slice(out.Sections, func(i, j int) bool { return out.Sections[i].Name < out.Sections[j].Name })

	if leaves == 0 && len(problems) == 0 {
		fail("taxonomy has no items")
	}
	if len(problems) > 0 {
		return Taxonomy{}, fmt.Errorf("%w:\n- %s", ErrInvalid, strings.Join(problems, "\n- "))
	}
	return out, nil
}

func normalizeSelector(sel Selector) (Selector, error) {
	switch s := sel.(type) {
	case BalanceSelector:
		return BalanceSelector{Columns: append([]domain.AccountKey{}, s.Columns...)}, nil
	case *BalanceSelector:
		if s == nil {
			return nil, fmt.Errorf("missing selector")
		}
		return normalizeSelector(*s)
	case FlowSelector:
		return normalizeFlow(s)
	case *FlowSelector:
		if s == nil {
			return nil, fmt.Errorf("missing selector")
		}
		return normalizeFlow(*s)
	default:
		return nil, fmt.Errorf("missing selector")
	}
}

func normalizeFlow(s FlowSelector) (FlowSelector, error) {
	if len(s.Categories) == 0 {
		return FlowSelector{}, fmt.Errorf("flow selector requires %q", "categories")
	}
	if s.Logic != Include && s.Logic != Exclude {
		return FlowSelector{}, fmt.Errorf("unknown label logic %d", s.Logic)
	}
	if s.Source != Transactions && s.Source != Paychecks {
		return FlowSelector{}, fmt.Errorf("unknown source %d", s.Source)
	}

	seen := map[string]bool{}
	cats := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		if !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}
	sort.Strings(cats)

	return FlowSelector{
		Categories: cats,
		Labels:     s.Labels.Clone(),
		Logic:      s.Logic,
		Source:     s.Source,
	}, nil
}
