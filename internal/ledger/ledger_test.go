package ledger

import (
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendbook/internal/core"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func newLedger(t *testing.T, schema core.Schema) *Ledger {
	t.Helper()
	return New(schema, WithClock(&fixedClock{now: time.Date(2025, time.March, 14, 18, 30, 0, 0, time.UTC)}))
}

func mustAdd(t *testing.T, l *Ledger, c core.Candidate) core.Expense {
	t.Helper()
	e, err := l.Add(c)
	require.NoError(t, err)
	return e
}

func names(records []core.Expense) []string {
	out := make([]string, 0, len(records))
	for _, e := range records {
		out = append(out, e.Name())
	}
	return out
}

func TestAddKeepsDateDescendingOrder(t *testing.T) {
	l := newLedger(t, core.SchemaFull)

	days := rand.New(rand.NewSource(42)).Perm(28)
	for _, d := range days {
		mustAdd(t, l, core.Candidate{
			Name:     "day",
			Amount:   "1",
			Category: "Food",
			Date:     core.NewDate(2025, 2, d+1).String(),
		})
		snap := l.Snapshot()
		assert.True(t, slices.IsSortedFunc(snap, func(a, b core.Expense) int {
			return b.Date().Compare(a.Date().Time)
		}), "snapshot not date-descending after adding day %d", d+1)
	}
	assert.Equal(t, 28, l.Len())
}

func TestAddSameDatePutsNewerFirst(t *testing.T) {
	l := newLedger(t, core.SchemaFull)
	mustAdd(t, l, core.Candidate{Name: "first", Amount: "1", Category: "Food", Date: "2025-01-01"})
	mustAdd(t, l, core.Candidate{Name: "second", Amount: "1", Category: "Food", Date: "2025-01-01"})
	mustAdd(t, l, core.Candidate{Name: "older", Amount: "1", Category: "Food", Date: "2024-12-31"})

	assert.Equal(t, []string{"second", "first", "older"}, names(l.Snapshot()))
}

func TestAddDefaultsToToday(t *testing.T) {
	l := newLedger(t, core.SchemaFull)
	e := mustAdd(t, l, core.Candidate{Name: "Tea", Amount: "10", Category: "Food"})
	assert.Equal(t, "2025-03-14", e.Date().String())
}

func TestAddRejectsInvalidInputWithoutMutation(t *testing.T) {
	l := newLedger(t, core.SchemaFull)
	mustAdd(t, l, core.Candidate{Name: "Tea", Amount: "10", Category: "Food"})

	cases := []struct {
		in   core.Candidate
		want error
	}{
		{core.Candidate{Name: "", Amount: "10", Category: "Food"}, core.ErrEmptyName},
		{core.Candidate{Name: "Tea", Amount: "-5", Category: "Food"}, core.ErrNonPositiveAmount},
		{core.Candidate{Name: "Tea", Amount: "abc", Category: "Food"}, core.ErrInvalidAmount},
		{core.Candidate{Name: "Tea", Amount: "5"}, core.ErrMissingCategory},
	}
	for _, tc := range cases {
		_, err := l.Add(tc.in)
		assert.ErrorIs(t, err, tc.want)
		assert.Equal(t, 1, l.Len())
	}
}

func TestRemoveMostRecent(t *testing.T) {
	l := newLedger(t, core.SchemaFull)
	mustAdd(t, l, core.Candidate{Name: "Lunch", Amount: "100", Category: "Food", Date: "2025-01-01"})
	mustAdd(t, l, core.Candidate{Name: "Bus", Amount: "50", Category: "Transportation", Date: "2025-01-02"})

	peek, ok := l.MostRecent()
	require.True(t, ok)
	assert.Equal(t, "Bus", peek.Name())

	removed, err := l.RemoveMostRecent()
	require.NoError(t, err)
	assert.Equal(t, peek.ID(), removed.ID())
	assert.Equal(t, "2025-01-02", removed.Date().String())

	removed, err = l.RemoveMostRecent()
	require.NoError(t, err)
	assert.Equal(t, "Lunch", removed.Name())

	_, err = l.RemoveMostRecent()
	assert.ErrorIs(t, err, ErrEmptyLedger)
	_, ok = l.MostRecent()
	assert.False(t, ok)
}

func TestBasicSchemaUsesInsertionOrder(t *testing.T) {
	l := newLedger(t, core.SchemaBasic)
	mustAdd(t, l, core.Candidate{Name: "a", Amount: "1"})
	mustAdd(t, l, core.Candidate{Name: "b", Amount: "2"})
	mustAdd(t, l, core.Candidate{Name: "c", Amount: "3"})

	assert.Equal(t, []string{"a", "b", "c"}, names(l.Snapshot()))

	removed, err := l.RemoveMostRecent()
	require.NoError(t, err)
	assert.Equal(t, "c", removed.Name())
	assert.Equal(t, []string{"a", "b"}, names(l.Snapshot()))
}

func TestClear(t *testing.T) {
	l := newLedger(t, core.SchemaFull)
	assert.Equal(t, 0, l.Clear())
	assert.Equal(t, 0, l.Len())

	mustAdd(t, l, core.Candidate{Name: "Tea", Amount: "10", Category: "Food"})
	mustAdd(t, l, core.Candidate{Name: "Bus", Amount: "5", Category: "Transportation"})
	assert.Equal(t, 2, l.Clear())
	assert.Empty(t, l.Snapshot())
	assert.Equal(t, 0, l.Clear())
}

func TestSnapshotIsDefensiveCopy(t *testing.T) {
	l := newLedger(t, core.SchemaFull)
	mustAdd(t, l, core.Candidate{Name: "Tea", Amount: "10", Category: "Food"})

	snap := l.Snapshot()
	snap[0] = core.Expense{}

	again := l.Snapshot()
	require.Len(t, again, 1)
	assert.Equal(t, "Tea", again[0].Name())
}

func TestFilter(t *testing.T) {
	l := newLedger(t, core.SchemaFull)
	mustAdd(t, l, core.Candidate{Name: "Groceries", Amount: "100", Category: "Food", Date: "2025-01-01"})
	mustAdd(t, l, core.Candidate{Name: "Pizza", Amount: "200", Category: "Food", Date: "2025-01-03"})
	mustAdd(t, l, core.Candidate{Name: "Metro card", Amount: "50", Category: "Transportation", Date: "2025-01-02"})

	cases := []struct {
		query string
		want  []string
	}{
		{"food", []string{"Pizza", "Groceries"}},
		{"FOOD", []string{"Pizza", "Groceries"}},
		{"", []string{"Pizza", "Metro card", "Groceries"}},
		{"  ", []string{"Pizza", "Metro card", "Groceries"}},
		{"metro", []string{"Metro card"}},
		{"2025-01-02", []string{"Metro card"}},
		{"2025-01", []string{"Pizza", "Metro card", "Groceries"}},
		{"rent", []string{}},
	}
	for _, tc := range cases {
		got := names(slices.Collect(l.Filter(tc.query)))
		assert.Equal(t, tc.want, got, "query %q", tc.query)
	}
}

func TestFilterIsRestartableAndFresh(t *testing.T) {
	l := newLedger(t, core.SchemaFull)
	mustAdd(t, l, core.Candidate{Name: "Tea", Amount: "10", Category: "Food"})

	seq := l.Filter("tea")
	assert.Len(t, slices.Collect(seq), 1)
	assert.Len(t, slices.Collect(seq), 1)

	mustAdd(t, l, core.Candidate{Name: "Green tea", Amount: "12", Category: "Food"})
	assert.Len(t, slices.Collect(seq), 2)

	l.Clear()
	assert.Empty(t, slices.Collect(seq))
}

func TestFilterStopsEarly(t *testing.T) {
	l := newLedger(t, core.SchemaFull)
	for range 5 {
		mustAdd(t, l, core.Candidate{Name: "Tea", Amount: "1", Category: "Food"})
	}
	n := 0
	for range l.Filter("") {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
	assert.Equal(t, 5, l.Len())
}

func TestAddStampsInsertionSequence(t *testing.T) {
	l := newLedger(t, core.SchemaFull)
	for _, d := range []string{"2025-01-01", "2025-01-05", "2025-01-20", "2025-01-10"} {
		mustAdd(t, l, core.Candidate{Name: d, Amount: "1", Category: "Food", Date: d})
	}

	// Ledger order is by date; the sequence still records arrival order.
	got := make(map[string]uint64)
	for _, e := range l.Snapshot() {
		got[e.Name()] = e.Seq()
	}
	assert.Equal(t, map[string]uint64{
		"2025-01-01": 1,
		"2025-01-05": 2,
		"2025-01-20": 3,
		"2025-01-10": 4,
	}, got)

	l.Clear()
	e := mustAdd(t, l, core.Candidate{Name: "after clear", Amount: "1", Category: "Food"})
	assert.Equal(t, uint64(5), e.Seq())
}
