package domain

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/civil"
)

// Paycheck is one pay period's named numeric fields, e.g. "Base Rate" or "Federal Tax".
// On the wire it is a flat object: {"date": "2020-01-15", "Base Rate": 4000, ...}.
type Paycheck struct {
	Date   civil.Date
	Fields map[string]float64
}

// Sum adds the named fields; absent fields count as zero.
func (p Paycheck) Sum(fields []string) float64 {
	total := 0.0
	for _, f := range fields {
		total += p.Fields[f]
	}
	return total
}

func (p Paycheck) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(p.Fields)+1)
	for k, v := range p.Fields {
		m[k] = v
	}
	m["date"] = p.Date
	return json.Marshal(m)
}

func (p *Paycheck) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d, ok := raw["date"]
	if !ok {
		return fmt.Errorf("paycheck: missing required field %q", "date")
	}
	if err := json.Unmarshal(d, &p.Date); err != nil {
		return fmt.Errorf("paycheck: invalid date %s: %w", string(d), err)
	}
	delete(raw, "date")

	p.Fields = make(map[string]float64, len(raw))
	for k, v := range raw {
		var f float64
		if err := json.Unmarshal(v, &f); err != nil {
			return fmt.Errorf("paycheck %s: field %q is not numeric: %w", p.Date, k, err)
		}
		p.Fields[k] = f
	}
	return nil
}
