package report

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sipstop/backend/internal/entity"
)

// Report is the full analytics payload for the owner dashboard.
type Report struct {
	Stats        Stats           `json:"stats"`
	CategoryData []CategorySales `json:"categoryData"`
	TopProducts  []ProductSales  `json:"topProducts"`
	RecentOrders []RecentOrder   `json:"recentOrders"`

	WeeklySeries  []SeriesPoint `json:"weeklySeries"`
	MonthlySeries []SeriesPoint `json:"monthlySeries"`
	YearlySeries  []SeriesPoint `json:"yearlySeries"`

	TopProductsWeek  []ProductSales `json:"topProductsWeek"`
	TopProductsMonth []ProductSales `json:"topProductsMonth"`
	TopProductsYear  []ProductSales `json:"topProductsYear"`

	GeneratedAt time.Time `json:"generatedAt"`
}

// Stats are the headline figures. TotalRevenue counts only Completed and
// Delivered orders; TotalOrders counts every order regardless of status.
type Stats struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalOrders       int             `json:"totalOrders"`
	TotalProducts     int             `json:"totalProducts"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	RevenueGrowth     decimal.Decimal `json:"revenueGrowth"`
	OrdersGrowth      decimal.Decimal `json:"ordersGrowth"`
}

// ProductSales is one ranked product entry, joined to the live catalog.
type ProductSales struct {
	Product entity.Product  `json:"product"`
	Sold    int             `json:"sold"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

// CategorySales is one ranked category entry.
type CategorySales struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
	Orders   int             `json:"orders"`
}

// RecentOrder is the display-safe projection of an order for the recent
// orders feed.
type RecentOrder struct {
	OrderNumber  string                 `json:"orderNumber"`
	CustomerName string                 `json:"customerName"`
	Total        decimal.Decimal        `json:"total"`
	Status       entity.OrderStatusName `json:"status"`
	Date         time.Time              `json:"date"`
}

// SeriesPoint is one window of a trailing series, oldest first in the
// series slice.
type SeriesPoint struct {
	Label          string          `json:"label"`
	Revenue        decimal.Decimal `json:"revenue"`
	OrderCount     int             `json:"orderCount"`
	TopProductName string          `json:"topProductName,omitempty"`
}
