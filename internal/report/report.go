package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sipstop/backend/internal/dependency"
	"github.com/sipstop/backend/internal/entity"
	gerr "github.com/sipstop/backend/internal/errors"
	"golang.org/x/sync/errgroup"
)

const (
	weeklyPoints  = 8
	monthlyPoints = 12
	yearlyPoints  = 5

	topAllTimeLimit   = 5
	topPerWindowLimit = 10
	recentFeedSize    = 10

	growthWindow = 30 * 24 * time.Hour
)

// Service builds analytics reports from record store snapshots.
type Service struct {
	rep dependency.Repository
}

func New(rep dependency.Repository) *Service {
	return &Service{rep: rep}
}

// BuildReport fetches a fresh snapshot and assembles the report. If either
// collection cannot be read the whole build fails with ErrDataUnavailable:
// a report over half a snapshot would have inconsistent windows.
func (s *Service) BuildReport(ctx context.Context) (*Report, error) {
	var (
		orders   []entity.Order
		products []entity.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.rep.Orders().GetAllOrders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.rep.Products().GetAllProducts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", gerr.ErrDataUnavailable, err)
	}

	return Build(orders, products, time.Now()), nil
}

// Build assembles the full report from an immutable snapshot. now is taken
// exactly once, so every window in one report is mutually consistent even
// if the wall clock advances during the build. Build is pure: same snapshot
// and now, same report.
func Build(orders []entity.Order, products []entity.Product, now time.Time) *Report {
	allTime := Aggregate(orders, products)

	r := &Report{
		Stats:        headlineStats(orders, products, allTime, now),
		CategoryData: RankCategories(allTime.Categories),
		TopProducts:  RankProducts(allTime.Products, topAllTimeLimit),
		RecentOrders: recentOrders(orders),

		WeeklySeries:  series(Week, weeklyPoints, orders, products, now),
		MonthlySeries: series(Month, monthlyPoints, orders, products, now),
		YearlySeries:  series(Year, yearlyPoints, orders, products, now),

		GeneratedAt: now,
	}

	r.TopProductsWeek = topForWindow(Week, orders, products, now)
	r.TopProductsMonth = topForWindow(Month, orders, products, now)
	r.TopProductsYear = topForWindow(Year, orders, products, now)

	return r
}

// topForWindow ranks products inside the current period of the given kind.
func topForWindow(kind Kind, orders []entity.Order, products []entity.Product, now time.Time) []ProductSales {
	sum := Aggregate(filterWindow(orders, Resolve(kind, 0, now)), products)
	return RankProducts(sum.Products, topPerWindowLimit)
}

func headlineStats(orders []entity.Order, products []entity.Product, allTime Summary, now time.Time) Stats {
	completedRevenue := decimal.Zero
	completedCount := 0
	for _, o := range orders {
		if o.Status.IsRevenueStatus() {
			completedRevenue = completedRevenue.Add(o.Total)
			completedCount++
		}
	}

	avg := decimal.Zero
	if completedCount > 0 {
		avg = completedRevenue.Div(decimal.NewFromInt(int64(completedCount)))
	}

	// growth compares the trailing 30 days against the 30 days before
	// them, all statuses. Orders with no parsable date fall outside both
	// windows.
	thirtyAgo := now.Add(-growthWindow)
	sixtyAgo := now.Add(-2 * growthWindow)

	recentRevenue, previousRevenue := decimal.Zero, decimal.Zero
	recentCount, previousCount := 0, 0
	for _, o := range orders {
		if o.Date.IsZero() {
			continue
		}
		switch {
		case !o.Date.Before(thirtyAgo):
			recentRevenue = recentRevenue.Add(o.Total)
			recentCount++
		case !o.Date.Before(sixtyAgo):
			previousRevenue = previousRevenue.Add(o.Total)
			previousCount++
		}
	}

	return Stats{
		TotalRevenue:      completedRevenue,
		TotalOrders:       allTime.OrderCount,
		TotalProducts:     len(products),
		AverageOrderValue: avg,
		RevenueGrowth:     Growth(recentRevenue, previousRevenue),
		OrdersGrowth:      GrowthCount(recentCount, previousCount),
	}
}

func recentOrders(orders []entity.Order) []RecentOrder {
	sorted := make([]entity.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > recentFeedSize {
		sorted = sorted[:recentFeedSize]
	}

	feed := make([]RecentOrder, 0, len(sorted))
	for _, o := range sorted {
		number := o.OrderNumber
		if number == "" {
			number = fmt.Sprintf("#%d", o.Id)
		}
		customer := "N/A"
		if o.ShippingInfo != nil && o.ShippingInfo.FullName != "" {
			customer = o.ShippingInfo.FullName
		}
		feed = append(feed, RecentOrder{
			OrderNumber:  number,
			CustomerName: customer,
			Total:        o.Total,
			Status:       o.Status,
			Date:         o.Date,
		})
	}
	return feed
}

// series builds a trailing sequence of points, oldest first, with the
// current period (offset 0) always last.
func series(kind Kind, points int, orders []entity.Order, products []entity.Product, now time.Time) []SeriesPoint {
	out := make([]SeriesPoint, 0, points)
	for offset := points - 1; offset >= 0; offset-- {
		w := Resolve(kind, offset, now)
		sum := Aggregate(filterWindow(orders, w), products)

		topName := ""
		if top := RankProducts(sum.Products, 1); len(top) > 0 {
			topName = top[0].Product.Name
		}

		out = append(out, SeriesPoint{
			Label:          w.Label,
			Revenue:        sum.Revenue,
			OrderCount:     sum.OrderCount,
			TopProductName: topName,
		})
	}
	return out
}

// filterWindow keeps orders whose date falls inside the window. Orders with
// a zero (unparsable) date are excluded from every window.
func filterWindow(orders []entity.Order, w Window) []entity.Order {
	sub := []entity.Order{}
	for _, o := range orders {
		if o.Date.IsZero() {
			continue
		}
		if w.Contains(o.Date) {
			sub = append(sub, o)
		}
	}
	return sub
}
