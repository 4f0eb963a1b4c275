package analytics

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"spendbook/internal/core"
)

const (
	// MostRecentFirst charts the first n records of a date-descending ledger.
	MostRecentFirst Recency = iota
	// LastInserted charts the last n records added to the ledger, in the
	// order they were added.
	LastInserted
)

// DefaultMinBarHeight keeps tiny amounts visible as a sliver.
const DefaultMinBarHeight = 5.0

// Recency selects which n records feed the chart.
type Recency int

func (r Recency) String() string {
	switch r {
	case MostRecentFirst:
		return "most-recent"
	case LastInserted:
		return "last-inserted"
	default:
		return "unknown"
	}
}

// ParseRecency maps a configuration value onto a Recency policy.
func ParseRecency(s string) (Recency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "most-recent":
		return MostRecentFirst, nil
	case "last-inserted":
		return LastInserted, nil
	default:
		return MostRecentFirst, fmt.Errorf("unknown chart recency %q", s)
	}
}

// BarLabel carries what a presentation layer needs for a bar tooltip.
type BarLabel struct {
	Name     string
	Category core.Category
	Amount   decimal.Decimal
	Date     core.Date
}

// ChartBar is one bar of the recent-expenses chart. Height is in the same
// units as the maxBarHeight it was computed with.
type ChartBar struct {
	Label  BarLabel
	Height float64
}

type chartOptions struct {
	minBarHeight float64
	recency      Recency
}

type ChartOption func(*chartOptions)

// WithMinBarHeight sets the floor applied to every bar height.
func WithMinBarHeight(h float64) ChartOption {
	return func(o *chartOptions) {
		o.minBarHeight = h
	}
}

// WithRecency selects the records that feed the chart.
func WithRecency(r Recency) ChartOption {
	return func(o *chartOptions) {
		o.recency = r
	}
}

// RecentChartSeries scales the amounts of n recent records to bar heights
// no taller than maxBarHeight. The largest selected amount gets the full
// height; every bar is at least the minimum height, itself capped at
// maxBarHeight. A non-finite maxBarHeight or minimum yields no bars.
func RecentChartSeries(records []core.Expense, n int, maxBarHeight float64, opts ...ChartOption) []ChartBar {
	o := chartOptions{minBarHeight: DefaultMinBarHeight, recency: MostRecentFirst}
	for _, opt := range opts {
		opt(&o)
	}
	if n <= 0 || !finite(maxBarHeight) || maxBarHeight <= 0 || !finite(o.minBarHeight) {
		return nil
	}

	selected := selectRecent(records, n, o.recency)
	maxAmount := decimal.NewFromInt(1)
	for i, e := range selected {
		if i == 0 || e.Amount().GreaterThan(maxAmount) {
			maxAmount = e.Amount()
		}
	}
	floor := min(max(o.minBarHeight, 0), maxBarHeight)
	scale := decimal.NewFromFloat(maxBarHeight)

	bars := make([]ChartBar, 0, len(selected))
	for _, e := range selected {
		h := e.Amount().Mul(scale).Div(maxAmount).InexactFloat64()
		bars = append(bars, ChartBar{
			Label: BarLabel{
				Name:     e.Name(),
				Category: e.Category(),
				Amount:   e.Amount(),
				Date:     e.Date(),
			},
			Height: max(min(h, maxBarHeight), floor),
		})
	}
	return bars
}

func selectRecent(records []core.Expense, n int, r Recency) []core.Expense {
	if n > len(records) {
		n = len(records)
	}
	if r == LastInserted {
		// Records that never went through a ledger share sequence zero and
		// keep their given order.
		byInsertion := slices.SortedStableFunc(slices.Values(records), func(a, b core.Expense) int {
			return cmp.Compare(a.Seq(), b.Seq())
		})
		return byInsertion[len(byInsertion)-n:]
	}
	return records[:n]
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
