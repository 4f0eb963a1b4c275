package shell

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"spendbook/internal/analytics"
	"spendbook/internal/core"
)

const (
	nameWidth     = 20
	categoryWidth = 14
	chartWidth    = 40
	labelWidth    = 16
)

func (sh *Shell) money(e core.Expense) string {
	return core.FormatAmount(sh.currency, e.Amount())
}

func (sh *Shell) renderList(records []core.Expense) {
	if len(records) == 0 {
		fmt.Fprintln(sh.out, sh.styles.muted.Render("No expenses found."))
		return
	}
	for _, e := range records {
		var b strings.Builder
		if !e.Date().IsZero() {
			b.WriteString(sh.styles.muted.Render(e.Date().Format("02 Jan 2006")) + "  ")
		}
		b.WriteString(pad(e.Name(), nameWidth) + "  ")
		if e.Category() != "" {
			b.WriteString(pad(string(e.Category()), categoryWidth) + "  ")
		}
		b.WriteString(sh.styles.amount.Render(sh.money(e)))
		fmt.Fprintln(sh.out, b.String())
	}
}

func (sh *Shell) renderReport(r analytics.Report) {
	fmt.Fprintln(sh.out, sh.styles.title.Render("Summary Statistics"))
	if r.Summary.Empty() {
		fmt.Fprintln(sh.out, sh.styles.muted.Render("No expense data available to analyze."))
		return
	}

	s := r.Summary
	rows := [][2]string{
		{"Total Expenses", core.FormatAmount(sh.currency, s.Total)},
		{"Number of Expenses", fmt.Sprint(s.Count)},
		{"Average Expense", core.FormatAmount(sh.currency, s.Average)},
		{"Highest Expense", fmt.Sprintf("%s (%s)", sh.money(s.Highest), s.Highest.Name())},
		{"Lowest Expense", fmt.Sprintf("%s (%s)", sh.money(s.Lowest), s.Lowest.Name())},
	}
	for _, row := range rows {
		fmt.Fprintf(sh.out, "  %s %s\n", pad(row[0]+":", 20), row[1])
	}

	fmt.Fprintln(sh.out, sh.styles.title.Render("Spending by Category"))
	for _, ct := range r.Categories {
		fmt.Fprintf(sh.out, "  %s %s\n", pad(ct.Category.String()+":", 20), core.FormatAmount(sh.currency, ct.Total))
	}

	sh.renderChart(r.Chart)
}

// renderChart draws bars horizontally. The tallest bar always has the
// chart's full height, so lengths are scaled against it.
func (sh *Shell) renderChart(bars []analytics.ChartBar) {
	fmt.Fprintln(sh.out, sh.styles.title.Render(fmt.Sprintf("Recent Expense Chart (Last %d)", len(bars))))
	if len(bars) == 0 {
		fmt.Fprintln(sh.out, sh.styles.muted.Render("Nothing to chart."))
		return
	}

	var full float64
	for _, b := range bars {
		full = max(full, b.Height)
	}
	for _, b := range bars {
		n := max(int(math.Round(b.Height/full*chartWidth)), 1)
		fmt.Fprintf(sh.out, "  %s %s %s\n",
			pad(b.Label.Name, labelWidth),
			sh.styles.bar.Render(strings.Repeat("█", n)),
			sh.styles.muted.Render(tooltip(sh.currency, b.Label)))
	}
}

func tooltip(currency string, l analytics.BarLabel) string {
	amount := core.FormatAmount(currency, l.Amount)
	if l.Date.IsZero() {
		return amount
	}
	return fmt.Sprintf("%s %s %s", amount, l.Category, l.Date.Format("02-Jan-2006"))
}

// pad truncates or right-pads s to exactly width cells.
func pad(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
