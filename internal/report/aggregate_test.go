package report

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sipstop/backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id int, name, category string, price float64) entity.Product {
	return entity.Product{
		Id:       id,
		Name:     name,
		Category: category,
		Price:    decimal.NewFromFloat(price),
		InStock:  true,
	}
}

func testOrder(id int, date time.Time, status entity.OrderStatusName, total float64, items ...entity.LineItem) entity.Order {
	return entity.Order{
		Id:     id,
		UserId: 1,
		Date:   date,
		Status: status,
		Total:  decimal.NewFromFloat(total),
		Items:  items,
	}
}

func line(p entity.Product, qty int) entity.LineItem {
	return entity.LineItem{Product: p, Quantity: qty}
}

func TestAggregateSingleOrder(t *testing.T) {
	cola := testProduct(1, "Cola", "Soda", 10)
	orders := []entity.Order{
		testOrder(1, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), entity.Completed, 100, line(cola, 2)),
	}

	sum := Aggregate(orders, []entity.Product{cola})

	assert.True(t, sum.Revenue.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, sum.OrderCount)
	assert.Equal(t, 2, sum.SoldUnits)
	assert.True(t, sum.ItemRevenue.Equal(decimal.NewFromInt(20)))

	require.Len(t, sum.Products, 1)
	assert.Equal(t, "Cola", sum.Products[0].Product.Name)
	assert.Equal(t, 2, sum.Products[0].Sold)
	assert.True(t, sum.Products[0].Revenue.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 1, sum.Products[0].Orders)

	require.Len(t, sum.Categories, 1)
	assert.Equal(t, "Soda", sum.Categories[0].Category)
	assert.True(t, sum.Categories[0].Revenue.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 1, sum.Categories[0].Orders)
}

func TestAggregateEmpty(t *testing.T) {
	sum := Aggregate(nil, nil)
	assert.True(t, sum.Revenue.IsZero())
	assert.Zero(t, sum.OrderCount)
	assert.Empty(t, sum.Products)
	assert.Empty(t, sum.Categories)
}

func TestAggregateDistinctOrdersPerProduct(t *testing.T) {
	cola := testProduct(1, "Cola", "Soda", 10)
	day := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	// two line items of the same product in one order count as one order
	orders := []entity.Order{
		testOrder(1, day, entity.Completed, 30, line(cola, 1), line(cola, 2)),
		testOrder(2, day, entity.Pending, 10, line(cola, 1)),
	}

	sum := Aggregate(orders, []entity.Product{cola})
	require.Len(t, sum.Products, 1)
	assert.Equal(t, 4, sum.Products[0].Sold)
	assert.Equal(t, 2, sum.Products[0].Orders)
	assert.Equal(t, 2, sum.Categories[0].Orders)
}

func TestAggregateUsesSnapshotPrice(t *testing.T) {
	// catalog price changed after the order was placed
	snapshot := testProduct(1, "Cola", "Soda", 10)
	live := testProduct(1, "Cola", "Soda", 12)
	day := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	sum := Aggregate(
		[]entity.Order{testOrder(1, day, entity.Completed, 20, line(snapshot, 2))},
		[]entity.Product{live},
	)

	require.Len(t, sum.Products, 1)
	assert.True(t, sum.Products[0].Revenue.Equal(decimal.NewFromInt(20)),
		"line revenue must come from the snapshot price, got %s", sum.Products[0].Revenue)
}

func TestAggregateDeletedProduct(t *testing.T) {
	deleted := testProduct(99, "Discontinued Fizz", "Soda", 8)
	day := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	sum := Aggregate(
		[]entity.Order{testOrder(1, day, entity.Completed, 40, line(deleted, 5))},
		nil, // product 99 no longer in the catalog
	)

	assert.True(t, sum.Revenue.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 1, sum.OrderCount)
	assert.Equal(t, 5, sum.SoldUnits)
	assert.True(t, sum.ItemRevenue.Equal(decimal.NewFromInt(40)))
	assert.Empty(t, sum.Products, "deleted products never appear in rankings")
	assert.Empty(t, sum.Categories)
}

func TestAggregateOrderPermutationInvariant(t *testing.T) {
	cola := testProduct(1, "Cola", "Soda", 10)
	ginger := testProduct(2, "Ginger Ale", "Mixers", 5)
	tonic := testProduct(3, "Tonic", "Mixers", 4)
	catalog := []entity.Product{cola, ginger, tonic}

	day := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	orders := []entity.Order{
		testOrder(1, day, entity.Completed, 25, line(cola, 2), line(ginger, 1)),
		testOrder(2, day.AddDate(0, 0, 1), entity.Pending, 8, line(tonic, 2)),
		testOrder(3, day.AddDate(0, 0, 2), entity.Delivered, 20, line(cola, 1), line(tonic, 1)),
		testOrder(4, day.AddDate(0, 0, 3), entity.Cancelled, 5, line(ginger, 1)),
	}

	want, err := json.Marshal(Aggregate(orders, catalog))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]entity.Order, len(orders))
		copy(shuffled, orders)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got, err := json.Marshal(Aggregate(shuffled, catalog))
		require.NoError(t, err)
		assert.JSONEq(t, string(want), string(got))
	}
}
