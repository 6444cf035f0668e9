package domain

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/civil"
)

// Transaction is a single dated cash movement. Amount is signed, outflows are negative.
type Transaction struct {
	ID string `json:"id,omitempty"`

	Account     string     `json:"account,omitempty"`
	Date        civil.Date `json:"date"`
	Description string     `json:"description,omitempty"`
	Amount      float64    `json:"amount"`
	Category    string     `json:"category"`

	Labels LabelSet `json:"labels"`
}

func (t *Transaction) JSON() ([]byte, error) {
	return json.Marshal(t)
}

// UnmarshalJSON requires a date; everything else may be omitted.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type plain Transaction
	var p struct {
		plain
		Date *civil.Date `json:"date"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Date == nil {
		return fmt.Errorf("transaction: missing required field %q", "date")
	}
	*t = Transaction(p.plain)
	t.Date = *p.Date
	return nil
}
