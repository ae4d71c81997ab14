package model

import "github.com/shopspring/decimal"

// Product is an immutable catalog record. Products are defined in the
// catalog fixture and never created or mutated at runtime.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Rating      float64         `json:"rating"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Featured    bool            `json:"featured"`
	Description string          `json:"description"`
	Details     []string        `json:"details"`
}
