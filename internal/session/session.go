// Package session connects a ledger to a presentation layer. It gates
// destructive operations behind a Confirmer, turns outcomes into notices
// and logs every operation.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"spendbook/internal/analytics"
	"spendbook/internal/core"
	"spendbook/internal/ledger"
	applog "spendbook/internal/log"
)

var ErrCancelled = errors.New("cancelled by user")

type Level int

const (
	LevelSuccess Level = iota
	LevelInfo
	LevelError
)

// Notice is a message for the user, shown however the presentation layer
// sees fit.
type Notice struct {
	Level   Level
	Message string
}

type (
	// Confirmer asks the user to approve a destructive operation.
	Confirmer interface {
		Confirm(prompt string) bool
	}

	// Notifier reports the outcome of an operation to the user.
	Notifier interface {
		Notify(n Notice)
	}
)

// Session is the single owner of a ledger for the lifetime of the process.
type Session struct {
	ledger    *ledger.Ledger
	chart     analytics.ChartSettings
	currency  string
	confirmer Confirmer
	notifier  Notifier
	logger    *applog.Logger
}

type Config struct {
	Chart    analytics.ChartSettings
	Currency string
}

func New(l *ledger.Ledger, cfg Config, confirmer Confirmer, notifier Notifier, logger *applog.Logger) *Session {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Session{
		ledger:    l,
		chart:     cfg.Chart,
		currency:  cfg.Currency,
		confirmer: confirmer,
		notifier:  notifier,
		logger:    logger.WithComponent(applog.ComponentSession),
	}
}

func (s *Session) Schema() core.Schema {
	return s.ledger.Schema()
}

// AddExpense stores a new expense built from user input. Validation
// failures are reported to the notifier and returned unchanged so the
// caller can keep the input for correction.
func (s *Session) AddExpense(c core.Candidate) (core.Expense, error) {
	e, err := s.ledger.Add(c)
	if err != nil {
		s.notify(LevelError, validationMessage(err))
		s.logger.Fields(slog.LevelInfo, "Expense rejected", applog.NewFields().
			WithOperation(applog.OpAdd).
			WithError(err).
			WithErrorType(applog.ErrorTypeValidation))
		return core.Expense{}, err
	}

	s.notify(LevelSuccess, "Expense added successfully!")
	s.logger.Fields(slog.LevelInfo, "Expense added", expenseFields(e).WithOperation(applog.OpAdd))
	return e, nil
}

// DeleteMostRecent removes the most recent expense once the user confirms.
func (s *Session) DeleteMostRecent() (core.Expense, error) {
	target, ok := s.ledger.MostRecent()
	if !ok {
		s.notify(LevelInfo, "No expenses to delete!")
		s.logEmpty(applog.OpDelete)
		return core.Expense{}, ledger.ErrEmptyLedger
	}

	if !s.confirm(s.deletePrompt(target)) {
		s.logCancelled(applog.OpDelete)
		return core.Expense{}, ErrCancelled
	}

	removed, err := s.ledger.RemoveMostRecent()
	if err != nil {
		return core.Expense{}, fmt.Errorf("remove most recent: %w", err)
	}
	s.notify(LevelSuccess, "Most recent expense deleted")
	s.logger.Fields(slog.LevelInfo, "Expense deleted", expenseFields(removed).WithOperation(applog.OpDelete))
	return removed, nil
}

// ClearAll removes every expense once the user confirms and returns how
// many were removed.
func (s *Session) ClearAll() (int, error) {
	if s.ledger.Len() == 0 {
		s.notify(LevelInfo, "No expenses to clear!")
		s.logEmpty(applog.OpClear)
		return 0, ledger.ErrEmptyLedger
	}

	if !s.confirm("Are you sure you want to clear ALL expenses? This cannot be undone.") {
		s.logCancelled(applog.OpClear)
		return 0, ErrCancelled
	}

	n := s.ledger.Clear()
	s.notify(LevelSuccess, "All expenses cleared")
	s.logger.Fields(slog.LevelInfo, "Ledger cleared", applog.NewFields().
		WithOperation(applog.OpClear).
		WithCount(n))
	return n, nil
}

// Expenses returns every record in ledger order.
func (s *Session) Expenses() []core.Expense {
	return s.ledger.Snapshot()
}

// Search returns the records matching query in ledger order.
func (s *Session) Search(query string) []core.Expense {
	found := slices.Collect(s.ledger.Filter(query))
	s.logger.Fields(slog.LevelDebug, "Expenses searched", applog.NewFields().
		WithOperation(applog.OpSearch).
		WithQuery(query).
		WithCount(len(found)))
	return found
}

// Report computes the analytics views over the current records.
func (s *Session) Report() analytics.Report {
	records := s.ledger.Snapshot()
	s.logger.Fields(slog.LevelDebug, "Report built", applog.NewFields().
		WithOperation(applog.OpReport).
		WithCount(len(records)))
	return analytics.BuildReport(records, s.chart)
}

func (s *Session) deletePrompt(e core.Expense) string {
	amount := core.FormatAmount(s.currency, e.Amount())
	if e.Date().IsZero() {
		return fmt.Sprintf("Delete '%s' (%s)?", e.Name(), amount)
	}
	return fmt.Sprintf("Delete '%s' (%s) added on %s?", e.Name(), amount, e.Date())
}

func (s *Session) confirm(prompt string) bool {
	if s.confirmer == nil {
		return false
	}
	return s.confirmer.Confirm(prompt)
}

func (s *Session) notify(level Level, msg string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(Notice{Level: level, Message: msg})
}

func (s *Session) logEmpty(op string) {
	s.logger.Fields(slog.LevelDebug, "Nothing to remove", applog.NewFields().
		WithOperation(op).
		WithErrorType(applog.ErrorTypeEmpty))
}

func (s *Session) logCancelled(op string) {
	s.logger.Fields(slog.LevelInfo, "Operation cancelled", applog.NewFields().
		WithOperation(op).
		WithErrorType(applog.ErrorTypeCancelled))
}

func expenseFields(e core.Expense) applog.LogFields {
	return applog.NewFields().WithExpense(
		e.ID().String(),
		e.Name(),
		e.Amount().String(),
		string(e.Category()),
		e.Date().String(),
	)
}

// validationMessage turns an Add failure into the text shown to the user.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyName):
		return "Please enter an expense name!"
	case errors.Is(err, core.ErrInvalidAmount):
		return "Enter a valid number for the amount!"
	case errors.Is(err, core.ErrNonPositiveAmount):
		return "Amount must be positive!"
	case errors.Is(err, core.ErrMissingCategory):
		return "Please select a category!"
	case errors.Is(err, core.ErrInvalidDate):
		return "Enter the date as YYYY-MM-DD!"
	default:
		return err.Error()
	}
}
