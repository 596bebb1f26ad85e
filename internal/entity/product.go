package entity

import "github.com/shopspring/decimal"

// Product represents a record in the products collection.
type Product struct {
	Id          int             `json:"id"`
	Name        string          `json:"name" valid:"required"`
	Category    string          `json:"category" valid:"required"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	ImageUrl    string          `json:"imageUrl,omitempty"`
	InStock     bool            `json:"inStock"`
}

func (p *Product) PriceDecimal() decimal.Decimal {
	return p.Price.Round(2)
}
