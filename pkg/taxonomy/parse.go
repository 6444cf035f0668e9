package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/voidshard/beanbook/pkg/domain"
)

// flowLeaf is the wire form of a flow leaf.
type flowLeaf struct {
	Categories *[]string `json:"categories"`
	Labels     []string  `json:"labels"`
	Logic      string    `json:"logic"`
	Source     string    `json:"source"`
}

// ParseBalance reads a balance taxonomy, a nested mapping whose items are lists
// of account keys:
//
//	{"Assets": {"Current": {"Cash": [["Cash", "Checking"], ["Cash", "Savings"]]}}}
func ParseBalance(data []byte) (Taxonomy, error) {
	return parse(data, func(raw json.RawMessage) (Selector, error) {
		var cols []domain.AccountKey
		if err := json.Unmarshal(raw, &cols); err != nil {
			return nil, err
		}
		return BalanceSelector{Columns: cols}, nil
	})
}

// ParseFlow reads an income or cashflow taxonomy whose items are flow selectors:
//
//	{"Revenue": {"Operating": {"Salary": {"categories": ["Paycheck"], "source": "paycheck"}}}}
//
// "labels", "logic" ("include", or "exclude"/"not") and "source" ("transactions"
// or "paycheck") are optional; "categories" is required.
func ParseFlow(data []byte) (Taxonomy, error) {
	return parse(data, func(raw json.RawMessage) (Selector, error) {
		var fl flowLeaf
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&fl); err != nil {
			return nil, err
		}
		if fl.Categories == nil {
			return nil, fmt.Errorf("flow selector requires %q", "categories")
		}

		sel := FlowSelector{
			Categories: *fl.Categories,
			Labels:     domain.NewLabelSet(fl.Labels...),
		}

		switch strings.ToLower(strings.TrimSpace(fl.Logic)) {
		case "", "include":
			sel.Logic = Include
		case "exclude", "not":
			sel.Logic = Exclude
		default:
			return nil, fmt.Errorf("unknown logic %q", fl.Logic)
		}

		switch strings.ToLower(strings.TrimSpace(fl.Source)) {
		case "", "transactions":
			sel.Source = Transactions
		case "paycheck", "paychecks":
			sel.Source = Paychecks
		default:
			return nil, fmt.Errorf("unknown source %q", fl.Source)
		}
		return sel, nil
	})
}

func parse(data []byte, leaf func(json.RawMessage) (Selector, error)) (Taxonomy, error) {
	var t Taxonomy
	err := members(data, func(cat string, body json.RawMessage) error {
		sec := Section{Name: cat}
		err := members(body, func(typ string, body json.RawMessage) error {
			g := Group{Name: typ}
			err := members(body, func(item string, body json.RawMessage) error {
				sel, err := leaf(body)
				if err != nil {
					return fmt.Errorf("%s: %v", Key{cat, typ, item}, err)
				}
				g.Leaves = append(g.Leaves, Leaf{Name: item, Selector: sel})
				return nil
			})
			sec.Groups = append(sec.Groups, g)
			return err
		})
		t.Sections = append(t.Sections, sec)
		return err
	})
	if err != nil {
		return Taxonomy{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return Normalize(t)
}

// members calls fn for each member of the JSON object in data, in document
// order. A name repeated within the object is an error.
func members(data []byte, fn func(string, json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("want an object, got %v", tok)
	}

	seen := map[string]bool{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name := tok.(string)
		if seen[name] {
			return fmt.Errorf("duplicate key %q", name)
		}
		seen[name] = true

		var body json.RawMessage
		if err := dec.Decode(&body); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := fn(name, body); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
