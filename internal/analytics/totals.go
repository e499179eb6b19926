package analytics

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CategoryTotals sums amounts per category and remembers the order in
// which categories were first seen. It encodes as a JSON object in that
// order.
type CategoryTotals struct {
	keys []string
	sums map[string]decimal.Decimal
}

func NewCategoryTotals() *CategoryTotals {
	return &CategoryTotals{sums: make(map[string]decimal.Decimal)}
}

func (c *CategoryTotals) Add(category string, amount decimal.Decimal) {
	if c.sums == nil {
		c.sums = make(map[string]decimal.Decimal)
	}
	cur, ok := c.sums[category]
	if !ok {
		c.keys = append(c.keys, category)
	}
	c.sums[category] = cur.Add(amount)
}

// Get returns the total for category, zero when absent. Lookups are exact
// and case-sensitive.
func (c *CategoryTotals) Get(category string) decimal.Decimal {
	if c == nil {
		return decimal.Zero
	}
	return c.sums[category]
}

func (c *CategoryTotals) Keys() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.keys...)
}

func (c *CategoryTotals) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Top returns the category with the largest total. Ties keep the category
// seen first.
func (c *CategoryTotals) Top() (string, decimal.Decimal, bool) {
	if c.Len() == 0 {
		return "", decimal.Zero, false
	}
	best := c.keys[0]
	for _, k := range c.keys[1:] {
		if c.sums[k].GreaterThan(c.sums[best]) {
			best = k
		}
	}
	return best, c.sums[best], true
}

func (c *CategoryTotals) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if c != nil {
		for i, k := range c.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(c.sums[k])
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
