package analytics

import "spendbook/internal/core"

// ChartSettings are the inputs to RecentChartSeries that a caller usually
// reads from configuration.
type ChartSettings struct {
	Size         int
	MaxBarHeight float64
	MinBarHeight float64
	Recency      Recency
}

// DefaultChartSettings charts the ten most recent records 150 units tall.
func DefaultChartSettings() ChartSettings {
	return ChartSettings{
		Size:         10,
		MaxBarHeight: 150,
		MinBarHeight: DefaultMinBarHeight,
		Recency:      MostRecentFirst,
	}
}

// Report bundles every derived view of one record set.
type Report struct {
	Summary    Summary
	Categories []CategoryTotal
	Chart      []ChartBar
}

// BuildReport computes the summary, category totals and chart series of
// records in one call.
func BuildReport(records []core.Expense, cs ChartSettings) Report {
	return Report{
		Summary:    Summarize(records),
		Categories: CategoryTotals(records),
		Chart: RecentChartSeries(records, cs.Size, cs.MaxBarHeight,
			WithMinBarHeight(cs.MinBarHeight),
			WithRecency(cs.Recency)),
	}
}
