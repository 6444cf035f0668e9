package domain

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Entry is one flattened report cell, the unit written to a store.
type Entry struct {
	ID string `json:"id"`

	Report string `json:"report"`
	Period string `json:"period,omitempty"`
	Date   string `json:"date,omitempty"`

	Category string `json:"category,omitempty"`
	Type     string `json:"type,omitempty"`
	Item     string `json:"item,omitempty"`

	Metric string   `json:"metric"`
	Value  *float64 `json:"value"`
}

// NewEntry builds an entry whose ID is derived from its coordinates, so writing
// the same report twice overwrites rather than duplicates. NaN and ±Inf become a nil Value.
func NewEntry(report, period, date, category, typ, item, metric string, value float64) *Entry {
	e := &Entry{
		Report:   report,
		Period:   period,
		Date:     date,
		Category: category,
		Type:     typ,
		Item:     item,
		Metric:   metric,
	}
	if !math.IsNaN(value) && !math.IsInf(value, 0) {
		v := value
		e.Value = &v
	}
	key := strings.Join([]string{report, period, date, category, typ, item, metric}, "\x1f")
	e.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
	return e
}

func (e *Entry) JSON() ([]byte, error) {
	return json.Marshal(e)
}
