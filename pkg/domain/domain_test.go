package domain

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m int, d int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func TestLabelSet(t *testing.T) {
	a := NewLabelSet("work", "travel", "work")
	b := NewLabelSet("travel")
	empty := NewLabelSet()

	assert.Len(t, a, 2)
	assert.True(t, a.Intersects(b))
	assert.False(t, a.Disjoint(b))
	assert.True(t, a.Disjoint(empty))
	assert.True(t, empty.Disjoint(empty))
	assert.False(t, empty.Intersects(a))
	assert.Equal(t, []string{"travel", "work"}, a.Sorted())

	var nilSet LabelSet
	c := nilSet.Clone()
	assert.NotNil(t, c)
	assert.Len(t, c, 0)
}

func TestLabelSetJSON(t *testing.T) {
	var tx Transaction
	err := json.Unmarshal([]byte(`{"date":"2020-03-01","amount":-50,"category":"Food","labels":["b","a","b"]}`), &tx)
	require.NoError(t, err)

	assert.Equal(t, day(2020, 3, 1), tx.Date)
	assert.Equal(t, -50.0, tx.Amount)
	assert.Equal(t, NewLabelSet("a", "b"), tx.Labels)

	data, err := tx.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"labels":["a","b"]`)
}

func TestAccountKeyJSON(t *testing.T) {
	cases := []struct {
		in   string
		want AccountKey
		err  bool
	}{
		{`"Cash"`, AccountKey{Type: "Cash"}, false},
		{`["Cash"]`, AccountKey{Type: "Cash"}, false},
		{`["Cash", "BofA Checking"]`, AccountKey{Type: "Cash", Name: "BofA Checking"}, false},
		{`{"type": "Loan", "name": "Car"}`, AccountKey{Type: "Loan", Name: "Car"}, false},
		{`["a", "b", "c"]`, AccountKey{}, true},
		{`42`, AccountKey{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var k AccountKey
			err := json.Unmarshal([]byte(tc.in), &k)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, k)
		})
	}
}

func TestNewAccounts(t *testing.T) {
	a := NewAccounts([]Balance{
		{Date: day(2020, 2, 29), Account: AccountKey{"Cash", "B"}, Amount: 60},
		{Date: day(2020, 1, 31), Account: AccountKey{"Cash", "A"}, Amount: 100},
		{Date: day(2020, 1, 31), Account: AccountKey{"Cash", "B"}, Amount: 50},
		{Date: day(2020, 1, 31), Account: AccountKey{"Credit", "Visa"}, Amount: -20},
		{Date: day(2020, 1, 31), Account: AccountKey{"Cash", "A"}, Amount: 1},
	})

	require.Equal(t, []civil.Date{day(2020, 1, 31), day(2020, 2, 29)}, a.Dates)
	require.Equal(t, []AccountKey{{"Cash", "A"}, {"Cash", "B"}, {"Credit", "Visa"}}, a.Keys)
	assert.Equal(t, []float64{101, 0}, a.Values[0])
	assert.Equal(t, []float64{50, 60}, a.Values[1])
	assert.Equal(t, []float64{101, 50, -20}, a.Row(0))
	assert.Equal(t, 2, a.Len())

	cols, ok := a.Select(AccountKey{Type: "Cash"})
	assert.True(t, ok)
	assert.Equal(t, []int{0, 1}, cols)

	cols, ok = a.Select(AccountKey{Type: "Cash", Name: "B"})
	assert.True(t, ok)
	assert.Equal(t, []int{1}, cols)

	_, ok = a.Select(AccountKey{Type: "Brokerage"})
	assert.False(t, ok)
}

func TestPaycheckJSON(t *testing.T) {
	var p Paycheck
	err := json.Unmarshal([]byte(`{"date":"2020-01-15","Base Rate":4000,"Federal Tax":-600}`), &p)
	require.NoError(t, err)

	assert.Equal(t, day(2020, 1, 15), p.Date)
	assert.Equal(t, 4000.0, p.Fields["Base Rate"])
	assert.Equal(t, 3400.0, p.Sum([]string{"Base Rate", "Federal Tax", "Bonus"}))

	assert.Error(t, json.Unmarshal([]byte(`{"Base Rate":4000}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"date":"2020-01-15","Memo":"x"}`), &p))
}

func TestNewEntry(t *testing.T) {
	a := NewEntry("balance-sheet", "2020", "", "Assets", "Current", "Cash", "$", 150)
	b := NewEntry("balance-sheet", "2020", "", "Assets", "Current", "Cash", "$", 175)
	c := NewEntry("balance-sheet", "2020", "", "Assets", "Current", "Cash", "%", 100)

	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)
	require.NotNil(t, a.Value)
	assert.Equal(t, 150.0, *a.Value)

	nan := NewEntry("balance-sheet", "2020", "", "Assets", "Current", "Cash", "%", math.NaN())
	assert.Nil(t, nan.Value)
}

func TestTransactionJSON(t *testing.T) {
	var tx Transaction
	err := json.Unmarshal([]byte(`{"date":"2020-03-01","amount":-50,"category":"Food","labels":["work"]}`), &tx)
	require.NoError(t, err)
	assert.Equal(t, day(2020, 3, 1), tx.Date)
	assert.Equal(t, -50.0, tx.Amount)
	assert.Equal(t, "Food", tx.Category)
	assert.True(t, tx.Labels.Has("work"))

	data, err := tx.JSON()
	require.NoError(t, err)
	var back Transaction
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, tx, back)

	var txns []Transaction
	err = json.Unmarshal([]byte(`[{"date":"2020-03-01","amount":1},{"amount":-5,"category":"Food"}]`), &txns)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"date"`)

	assert.Error(t, json.Unmarshal([]byte(`{"date":null,"amount":1}`), &tx))
	assert.Error(t, json.Unmarshal([]byte(`{"date":"March","amount":1}`), &tx))
}

func TestBalanceJSON(t *testing.T) {
	var b Balance
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2020-01-31","account":["Cash","A"],"amount":100}`), &b))
	assert.Equal(t, Balance{Date: day(2020, 1, 31), Account: AccountKey{Type: "Cash", Name: "A"}, Amount: 100}, b)

	err := json.Unmarshal([]byte(`{"account":["Cash","A"],"amount":100}`), &b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"date"`)

	err = json.Unmarshal([]byte(`{"date":"2020-01-31","amount":100}`), &b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"account"`)
}
