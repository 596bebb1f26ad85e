package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusName is the custom type to enforce enum-like behavior
type OrderStatusName string

func (osn OrderStatusName) String() string {
	return string(osn)
}

const (
	Pending    OrderStatusName = "Pending"
	Processing OrderStatusName = "Processing"
	Shipped    OrderStatusName = "Shipped"
	Delivered  OrderStatusName = "Delivered"
	Completed  OrderStatusName = "Completed"
	Cancelled  OrderStatusName = "Cancelled"
)

// ValidOrderStatusNames is a set of valid order status names
var ValidOrderStatusNames = map[OrderStatusName]bool{
	Pending:    true,
	Processing: true,
	Shipped:    true,
	Delivered:  true,
	Completed:  true,
	Cancelled:  true,
}

// IsRevenueStatus reports whether orders with this status count towards
// headline revenue.
func (osn OrderStatusName) IsRevenueStatus() bool {
	return osn == Completed || osn == Delivered
}

// LineItem is a product snapshot taken at order time plus a quantity.
// The embedded product is not a live catalog reference: it keeps the price
// and name the customer actually saw.
type LineItem struct {
	Product  Product `json:"product" valid:"required"`
	Quantity int     `json:"quantity" valid:"required"`
}

// ShippingInfo is the recipient address attached to an order.
type ShippingInfo struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
	Country  string `json:"country"`
	Phone    string `json:"phone,omitempty"`
}

// Order represents a record in the orders collection. Orders are immutable
// once stored; the analytics engine never writes them back.
type Order struct {
	Id           int             `json:"id"`
	OrderNumber  string          `json:"orderNumber,omitempty"`
	UserId       int             `json:"userId" valid:"required"`
	Date         time.Time       `json:"date"`
	Status       OrderStatusName `json:"status"`
	Total        decimal.Decimal `json:"total"`
	Items        []LineItem      `json:"items" valid:"required"`
	ShippingInfo *ShippingInfo   `json:"shippingInfo,omitempty"`
}

func (o *Order) TotalDecimal() decimal.Decimal {
	return o.Total.Round(2)
}

// orderAlias avoids recursion in the custom date handling below.
type orderAlias Order

type orderJSON struct {
	orderAlias
	Date string `json:"date"`
}

// MarshalJSON writes the order date as an ISO-8601 string, the format the
// flat-file collections use. A zero date marshals to an empty string.
func (o Order) MarshalJSON() ([]byte, error) {
	oj := orderJSON{orderAlias: orderAlias(o)}
	if !o.Date.IsZero() {
		oj.Date = o.Date.Format(time.RFC3339Nano)
	}
	return json.Marshal(oj)
}

// UnmarshalJSON tolerates malformed date strings: the order is still loaded,
// with a zero Date. Such orders count in all-time totals but are excluded
// from every window-bucketed computation.
func (o *Order) UnmarshalJSON(data []byte) error {
	var oj orderJSON
	if err := json.Unmarshal(data, &oj); err != nil {
		return err
	}
	*o = Order(oj.orderAlias)
	o.Date = parseOrderDate(oj.Date)
	return nil
}

var orderDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseOrderDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
