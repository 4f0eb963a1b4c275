package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	Food           Category = "Food"
	Transportation Category = "Transportation"
	Entertainment  Category = "Entertainment"
	Utilities      Category = "Utilities"
	Others         Category = "Others"
)

const (
	// SchemaFull tracks name, amount, category and date.
	SchemaFull Schema = iota
	// SchemaBasic tracks only name and amount.
	SchemaBasic
)

const dateLayout = "2006-01-02"

type (
	// Category is one of the fixed expense categories. The zero value means
	// uncategorized and only occurs under SchemaBasic.
	Category string

	// Schema selects which fields a record carries.
	Schema int

	Date struct {
		time.Time
	}

	// Candidate is raw user input for a new expense.
	Candidate struct {
		Name     string
		Amount   string
		Category string
		Date     string // YYYY-MM-DD, empty means today
	}

	// Expense is a validated, immutable expense record.
	Expense struct {
		id       uuid.UUID
		name     string
		amount   decimal.Decimal
		category Category
		date     Date
		seq      uint64
	}
)

var (
	ErrEmptyName         = errors.New("empty name")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrMissingCategory   = errors.New("missing category")
	ErrInvalidDate       = errors.New("invalid date")
)

var categories = []Category{Food, Transportation, Entertainment, Utilities, Others}

// ValidationError reports which input field was rejected.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// Categories returns the selectable categories in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseCategory matches s against the category set, ignoring case.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrMissingCategory
	}
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrMissingCategory
}

func (c Category) String() string {
	if c == "" {
		return "Uncategorized"
	}
	return string(c)
}

func (s Schema) String() string {
	switch s {
	case SchemaBasic:
		return "basic"
	case SchemaFull:
		return "full"
	default:
		return "unknown"
	}
}

// ParseSchema maps a configuration value onto a Schema.
func ParseSchema(s string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full":
		return SchemaFull, nil
	case "basic":
		return SchemaBasic, nil
	default:
		return SchemaFull, errors.New("unknown schema " + s)
	}
}

// HasDates reports whether records under this schema carry category and date.
func (s Schema) HasDates() bool {
	return s == SchemaFull
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// NewExpense validates c against schema and builds the record. today is
// used when the schema tracks dates and c.Date is empty.
func NewExpense(c Candidate, schema Schema, today Date) (Expense, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return Expense{}, invalid("name", ErrEmptyName)
	}
	amount, err := ParseAmount(c.Amount)
	if err != nil {
		return Expense{}, invalid("amount", err)
	}

	e := Expense{id: uuid.New(), name: name, amount: amount}
	if !schema.HasDates() {
		return e, nil
	}

	if e.category, err = ParseCategory(c.Category); err != nil {
		return Expense{}, invalid("category", err)
	}
	e.date = today
	if strings.TrimSpace(c.Date) != "" {
		if e.date, err = ParseDate(c.Date); err != nil {
			return Expense{}, invalid("date", err)
		}
	}
	return e, nil
}

func (e Expense) ID() uuid.UUID           { return e.id }
func (e Expense) Name() string            { return e.name }
func (e Expense) Amount() decimal.Decimal { return e.amount }
func (e Expense) Category() Category      { return e.category }
func (e Expense) Date() Date              { return e.date }

// Seq is the insertion sequence a ledger assigned to e, zero when e was
// never stored.
func (e Expense) Seq() uint64 { return e.seq }

// Sequenced returns a copy of e stamped with insertion sequence n.
func (e Expense) Sequenced(n uint64) Expense {
	e.seq = n
	return e
}

// IsZero reports whether e is the zero sentinel rather than a real record.
func (e Expense) IsZero() bool {
	return e.id == uuid.Nil
}
