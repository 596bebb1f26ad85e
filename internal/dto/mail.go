package dto

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sipstop/backend/internal/entity"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// OrderConfirmation is the template payload for the order confirmation email.
type OrderConfirmation struct {
	OrderNumber     string
	Items           []OrderConfirmationItem
	Total           string
	ShippingAddress string
}

type OrderConfirmationItem struct {
	Name     string
	Quantity int
	Price    string
}

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders a decimal amount the way the storefront displays it,
// with thousands separators.
func FormatMoney(d decimal.Decimal) string {
	return moneyPrinter.Sprintf("$%.2f", d.InexactFloat64())
}

// OrderConfirmationFromOrder reduces an order to the email payload.
func OrderConfirmationFromOrder(o *entity.Order) *OrderConfirmation {
	oc := &OrderConfirmation{
		OrderNumber: o.OrderNumber,
		Total:       FormatMoney(o.TotalDecimal()),
	}
	for _, item := range o.Items {
		oc.Items = append(oc.Items, OrderConfirmationItem{
			Name:     item.Product.Name,
			Quantity: item.Quantity,
			Price:    FormatMoney(item.Product.PriceDecimal()),
		})
	}
	if si := o.ShippingInfo; si != nil {
		parts := []string{}
		for _, p := range []string{si.Address, si.City, si.State, si.ZipCode, si.Country} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		oc.ShippingAddress = strings.Join(parts, ", ")
	}
	return oc
}
