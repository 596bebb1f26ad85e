package report

import (
	"github.com/shopspring/decimal"
	"github.com/sipstop/backend/internal/entity"
	"golang.org/x/exp/slices"
)

// Summary is the result of folding a set of orders. Products and Categories
// are deterministic: products ascend by id, categories by name, so a later
// stable rank resolves revenue ties predictably.
type Summary struct {
	// Revenue is the sum of order totals, no status filtering. Status
	// filtering is the caller's concern and differs by use case.
	Revenue    decimal.Decimal
	OrderCount int

	// Products holds per-product aggregates joined to the live catalog.
	// Line items whose product no longer exists are excluded here but
	// still counted in SoldUnits and ItemRevenue.
	Products   []ProductSales
	Categories []CategorySales

	SoldUnits   int
	ItemRevenue decimal.Decimal
}

type productAcc struct {
	sold     int
	revenue  decimal.Decimal
	orderIDs map[int]struct{}
}

type categoryAcc struct {
	revenue  decimal.Decimal
	orderIDs map[int]struct{}
}

// Aggregate folds the given orders into revenue, count and per-product /
// per-category sums. It is a pure function: inputs are never mutated and
// the same multiset of orders produces identical output regardless of
// input order.
//
// Line-item revenue uses the price embedded in the order snapshot, not the
// live catalog price. Categories come from the live catalog join, since the
// snapshot's category may be stale and deleted products have none.
func Aggregate(orders []entity.Order, products []entity.Product) Summary {
	catalog := make(map[int]entity.Product, len(products))
	for _, p := range products {
		catalog[p.Id] = p
	}

	sum := Summary{
		Revenue:     decimal.Zero,
		ItemRevenue: decimal.Zero,
	}
	byProduct := map[int]*productAcc{}
	byCategory := map[string]*categoryAcc{}

	for _, o := range orders {
		sum.Revenue = sum.Revenue.Add(o.Total)
		sum.OrderCount++

		for _, item := range o.Items {
			lineRevenue := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			sum.SoldUnits += item.Quantity
			sum.ItemRevenue = sum.ItemRevenue.Add(lineRevenue)

			acc, ok := byProduct[item.Product.Id]
			if !ok {
				acc = &productAcc{revenue: decimal.Zero, orderIDs: map[int]struct{}{}}
				byProduct[item.Product.Id] = acc
			}
			acc.sold += item.Quantity
			acc.revenue = acc.revenue.Add(lineRevenue)
			acc.orderIDs[o.Id] = struct{}{}

			live, ok := catalog[item.Product.Id]
			if !ok {
				// deleted product: no category to attribute the line to
				continue
			}
			cacc, ok := byCategory[live.Category]
			if !ok {
				cacc = &categoryAcc{revenue: decimal.Zero, orderIDs: map[int]struct{}{}}
				byCategory[live.Category] = cacc
			}
			cacc.revenue = cacc.revenue.Add(lineRevenue)
			cacc.orderIDs[o.Id] = struct{}{}
		}
	}

	ids := make([]int, 0, len(byProduct))
	for id := range byProduct {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		live, ok := catalog[id]
		if !ok {
			continue
		}
		acc := byProduct[id]
		sum.Products = append(sum.Products, ProductSales{
			Product: live,
			Sold:    acc.sold,
			Revenue: acc.revenue,
			Orders:  len(acc.orderIDs),
		})
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		cacc := byCategory[name]
		sum.Categories = append(sum.Categories, CategorySales{
			Category: name,
			Revenue:  cacc.revenue,
			Orders:   len(cacc.orderIDs),
		})
	}

	return sum
}
