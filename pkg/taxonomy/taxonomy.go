// Package taxonomy describes the three level Category > Type > Item trees that
// map raw financial records onto statement lines.
package taxonomy

import (
	"errors"

	"github.com/voidshard/beanbook/pkg/domain"
)

const (
	// Net is the synthetic category holding cross-category results.
	Net = "Net"
	// Total names synthetic subtotal rows.
	Total = "Total"
	// Blank fills the Item of a category total row.
	Blank = " "
)

// ErrInvalid wraps every configuration error found in a taxonomy.
var ErrInvalid = errors.New("invalid taxonomy")

// Logic decides how a flow selector's labels filter transactions.
type Logic int

const (
	// Include keeps transactions carrying at least one of the labels.
	Include Logic = iota
	// Exclude keeps transactions carrying none of the labels.
	Exclude
)

func (l Logic) String() string {
	if l == Exclude {
		return "exclude"
	}
	return "include"
}

// Source names the record table a flow selector reads.
type Source int

const (
	Transactions Source = iota
	Paychecks
)

func (s Source) String() string {
	if s == Paychecks {
		return "paycheck"
	}
	return "transactions"
}

// Selector is implemented only by BalanceSelector and FlowSelector.
type Selector interface {
	isSelector()
}

// BalanceSelector picks accounts table columns; their balances are summed.
// An empty selector yields a zero series.
type BalanceSelector struct {
	Columns []domain.AccountKey
}

// FlowSelector picks transactions (or paycheck fields, when Source is Paychecks).
// For paychecks, Categories names the paycheck fields to sum.
type FlowSelector struct {
	Categories []string
	Labels     domain.LabelSet
	Logic      Logic
	Source     Source
}

func (BalanceSelector) isSelector() {}
func (FlowSelector) isSelector()    {}

// Key addresses a statement line: (Category, Type, Item).
type Key struct {
	Category string `json:"category"`
	Type     string `json:"type"`
	Item     string `json:"item"`
}

// Less orders keys lexicographically by their three parts.
func (k Key) Less(o Key) bool {
	if k.Category != o.Category {
		return k.Category < o.Category
	}
	if k.Type != o.Type {
		return k.Type < o.Type
	}
	return k.Item < o.Item
}

func (k Key) String() string {
	return k.Category + " / " + k.Type + " / " + k.Item
}

type (
	Taxonomy struct {
		Sections []Section
	}

	Section struct {
		Name   string
		Groups []Group
	}

	Group struct {
		Name   string
		Leaves []Leaf
	}

	Leaf struct {
		Name     string
		Selector Selector
	}
)

// Keys lists every leaf key in taxonomy order.
func (t Taxonomy) Keys() []Key {
	var keys []Key
	t.Walk(func(k Key, _ Selector) {
		keys = append(keys, k)
	})
	return keys
}

// Walk visits every leaf in taxonomy order.
func (t Taxonomy) Walk(fn func(Key, Selector)) {
	for _, s := range t.Sections {
		for _, g := range s.Groups {
			for _, l := range g.Leaves {
				fn(Key{Category: s.Name, Type: g.Name, Item: l.Name}, l.Selector)
			}
		}
	}
}
