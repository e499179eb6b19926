package models

import "github.com/shopspring/decimal"

func init() {
	// Amounts travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// DefaultCategory groups transactions that carry no category.
const DefaultCategory = "Outros"
