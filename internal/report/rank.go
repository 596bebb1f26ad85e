package report

import "sort"

// RankProducts sorts entries by revenue descending and truncates to the top
// limit. The sort is stable, so entries with equal revenue keep the order
// they were aggregated in (ascending product id). A limit of zero or less
// yields an empty ranking.
func RankProducts(entries []ProductSales, limit int) []ProductSales {
	if limit <= 0 {
		return []ProductSales{}
	}
	ranked := RankAllProducts(entries)
	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}

// RankAllProducts returns the full ranking, revenue descending, without
// truncation. The input slice is not modified.
func RankAllProducts(entries []ProductSales) []ProductSales {
	ranked := make([]ProductSales, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue.GreaterThan(ranked[j].Revenue)
	})
	return ranked
}

// RankCategories returns the full category ranking, revenue descending.
func RankCategories(entries []CategorySales) []CategorySales {
	ranked := make([]CategorySales, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue.GreaterThan(ranked[j].Revenue)
	})
	return ranked
}
