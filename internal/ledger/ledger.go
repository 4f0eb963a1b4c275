// Package ledger keeps the ordered, validated expense records of one session.
package ledger

import (
	"errors"
	"iter"
	"slices"
	"strings"
	"time"

	"spendbook/internal/core"
)

var ErrEmptyLedger = errors.New("ledger is empty")

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type Option func(*Ledger)

// WithClock sets the clock used to date records submitted without a date.
func WithClock(c Clock) Option {
	return func(l *Ledger) {
		l.clock = c
	}
}

// Ledger owns the records of a session. Under SchemaFull records are kept
// date-descending with newer insertions first among equal dates; under
// SchemaBasic they are kept in insertion order.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	schema  core.Schema
	clock   Clock
	records []core.Expense
	seq     uint64
}

func New(schema core.Schema, opts ...Option) *Ledger {
	l := &Ledger{schema: schema, clock: SystemClock{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) Schema() core.Schema {
	return l.schema
}

func (l *Ledger) Len() int {
	return len(l.records)
}

// Add validates c and stores the resulting record. The ledger is left
// untouched when validation fails.
func (l *Ledger) Add(c core.Candidate) (core.Expense, error) {
	e, err := core.NewExpense(c, l.schema, core.DateOf(l.clock.Now()))
	if err != nil {
		return core.Expense{}, err
	}
	l.seq++
	e = e.Sequenced(l.seq)

	if !l.schema.HasDates() {
		l.records = append(l.records, e)
		return e, nil
	}

	// First position whose date is not after e's date.
	i, _ := slices.BinarySearchFunc(l.records, e, func(have, want core.Expense) int {
		if have.Date().After(want.Date().Time) {
			return -1
		}
		return 1
	})
	l.records = slices.Insert(l.records, i, e)
	return e, nil
}

// MostRecent returns the record RemoveMostRecent would remove.
func (l *Ledger) MostRecent() (core.Expense, bool) {
	if len(l.records) == 0 {
		return core.Expense{}, false
	}
	return l.records[l.mostRecentIndex()], true
}

// RemoveMostRecent removes and returns the most recent record: the head of
// a dated ledger, or the last insertion of a basic one.
func (l *Ledger) RemoveMostRecent() (core.Expense, error) {
	if len(l.records) == 0 {
		return core.Expense{}, ErrEmptyLedger
	}
	i := l.mostRecentIndex()
	e := l.records[i]
	l.records = slices.Delete(l.records, i, i+1)
	return e, nil
}

func (l *Ledger) mostRecentIndex() int {
	if l.schema.HasDates() {
		return 0
	}
	return len(l.records) - 1
}

// Clear removes every record and reports how many there were.
func (l *Ledger) Clear() int {
	n := len(l.records)
	l.records = nil
	return n
}

// Snapshot returns a copy of the records in ledger order.
func (l *Ledger) Snapshot() []core.Expense {
	return slices.Clone(l.records)
}

// Filter yields the records whose name, category or YYYY-MM-DD date
// contain query, ignoring case. An empty query yields every record. Each
// iteration reads the ledger as it is at that moment.
func (l *Ledger) Filter(query string) iter.Seq[core.Expense] {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(yield func(core.Expense) bool) {
		for _, e := range l.Snapshot() {
			if !matches(e, q) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

func matches(e core.Expense, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name()), q) ||
		strings.Contains(strings.ToLower(string(e.Category())), q) ||
		strings.Contains(e.Date().String(), q)
}
