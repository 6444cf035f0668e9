package domain

import (
	"encoding/json"
	"fmt"
	"sort"

	"cloud.google.com/go/civil"
)

// AccountKey identifies an accounts table column. Name may be empty when the key
// is used as a selector for every account of Type.
type AccountKey struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

func (k AccountKey) String() string {
	if k.Name == "" {
		return k.Type
	}
	return k.Type + "/" + k.Name
}

func (k AccountKey) Less(o AccountKey) bool {
	if k.Type != o.Type {
		return k.Type < o.Type
	}
	return k.Name < o.Name
}

// UnmarshalJSON accepts "Type", ["Type"], ["Type", "Name"] or {"type": .., "name": ..}.
func (k *AccountKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*k = AccountKey{Type: s}
		return nil
	}

	var parts []string
	if err := json.Unmarshal(data, &parts); err == nil {
		switch len(parts) {
		case 1:
			*k = AccountKey{Type: parts[0]}
		case 2:
			*k = AccountKey{Type: parts[0], Name: parts[1]}
		default:
			return fmt.Errorf("account key %s: want 1 or 2 parts, got %d", string(data), len(parts))
		}
		return nil
	}

	type plain AccountKey
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("account key %s: %w", string(data), err)
	}
	*k = AccountKey(p)
	return nil
}

// Balance is one observed account balance on one date.
type Balance struct {
	Date    civil.Date `json:"date"`
	Account AccountKey `json:"account"`
	Amount  float64    `json:"amount"`
}

// UnmarshalJSON requires both a date and an account.
func (b *Balance) UnmarshalJSON(data []byte) error {
	var p struct {
		Date    *civil.Date `json:"date"`
		Account *AccountKey `json:"account"`
		Amount  float64     `json:"amount"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	switch {
	case p.Date == nil:
		return fmt.Errorf("balance: missing required field %q", "date")
	case p.Account == nil:
		return fmt.Errorf("balance %s: missing required field %q", p.Date, "account")
	}
	*b = Balance{Date: *p.Date, Account: *p.Account, Amount: p.Amount}
	return nil
}

// Accounts is a date-indexed table of balances, one column per account.
// Values is column-major: Values[col][row]. Unobserved cells hold 0.
type Accounts struct {
	Dates  []civil.Date
	Keys   []AccountKey
	Values [][]float64
}

// NewAccounts pivots balance records into a table. Dates and keys are sorted;
// repeated (date, account) records are summed.
func NewAccounts(balances []Balance) *Accounts {
	dateIdx := map[civil.Date]int{}
	keyIdx := map[AccountKey]int{}
	a := &Accounts{}

	for _, b := range balances {
		if _, ok := dateIdx[b.Date]; !ok {
			dateIdx[b.Date] = 0
			a.Dates = append(a.Dates, b.Date)
		}
		if _, ok := keyIdx[b.Account]; !ok {
			keyIdx[b.Account] = 0
			a.Keys = append(a.Keys, b.Account)
		}
	}

	sort.Slice(a.Dates, func(i, j int) bool { return a.Dates[i].Before(a.Dates[j]) })
	sort.Slice(a.Keys, func(i, j int) bool { return a.Keys[i].Less(a.Keys[j]) })
	for i, d := range a.Dates {
		dateIdx[d] = i
	}
	for i, k := range a.Keys {
		keyIdx[k] = i
	}

	a.Values = make([][]float64, len(a.Keys))
	for i := range a.Values {
		a.Values[i] = make([]float64, len(a.Dates))
	}
	for _, b := range balances {
		a.Values[keyIdx[b.Account]][dateIdx[b.Date]] += b.Amount
	}
	return a
}

// Len is the number of dated rows.
func (a *Accounts) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Dates)
}

// Select returns the column indexes matched by sel. A key with an empty Name
// matches every account of that Type. ok is false when nothing matches.
func (a *Accounts) Select(sel AccountKey) (cols []int, ok bool) {
	for i, k := range a.Keys {
		if k.Type != sel.Type {
			continue
		}
		if sel.Name == "" || k.Name == sel.Name {
			cols = append(cols, i)
		}
	}
	return cols, len(cols) > 0
}

// Row returns every column's value on row i.
func (a *Accounts) Row(i int) []float64 {
	out := make([]float64, len(a.Keys))
	for c := range a.Keys {
		out[c] = a.Values[c][i]
	}
	return out
}
