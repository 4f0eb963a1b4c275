// Package shell is a line-oriented terminal front end for a session. It
// implements session.Confirmer and session.Notifier on top of an
// io.Reader/io.Writer pair.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"spendbook/internal/core"
	applog "spendbook/internal/log"
	"spendbook/internal/session"
)

const (
	// cancelWord abandons the add form at any prompt.
	cancelWord = "cancel"
	// clearWord empties a form field that holds a rejected value.
	clearWord = "-"
)

var errEOF = errors.New("input closed")

type Shell struct {
	in       *bufio.Scanner
	out      io.Writer
	currency string
	logger   *applog.Logger
	styles   styles
}

type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	info    lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
	amount  lipgloss.Style
	bar     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3")),
		success: r.NewStyle().Foreground(lipgloss.Color("#4CAF50")),
		info:    r.NewStyle().Foreground(lipgloss.Color("#7f849c")),
		err:     r.NewStyle().Foreground(lipgloss.Color("#f38ba8")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#757575")),
		amount:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3")),
		bar:     r.NewStyle().Foreground(lipgloss.Color("#5c9ced")),
	}
}

func New(in io.Reader, out io.Writer, currency string, logger *applog.Logger) *Shell {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Shell{
		in:       bufio.NewScanner(in),
		out:      out,
		currency: currency,
		logger:   logger.WithComponent(applog.ComponentShell),
		styles:   newStyles(lipgloss.NewRenderer(out)),
	}
}

// Confirm implements session.Confirmer. Only an explicit yes confirms.
func (sh *Shell) Confirm(prompt string) bool {
	answer, err := sh.prompt(prompt + " [y/N]: ")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Notify implements session.Notifier.
func (sh *Shell) Notify(n session.Notice) {
	style := sh.styles.info
	switch n.Level {
	case session.LevelSuccess:
		style = sh.styles.success
	case session.LevelError:
		style = sh.styles.err
	}
	fmt.Fprintln(sh.out, style.Render(n.Message))
}

// Run reads commands until quit or end of input.
func (sh *Shell) Run(s *session.Session) error {
	fmt.Fprintln(sh.out, sh.styles.title.Render("Expense Tracker")+sh.styles.muted.Render("  (type 'help' for commands)"))
	for {
		line, err := sh.prompt("> ")
		if errors.Is(err, errEOF) {
			return nil
		}
		if err != nil {
			return err
		}

		cmd, arg, _ := strings.Cut(line, " ")
		switch strings.ToLower(cmd) {
		case "":
		case "help", "?":
			sh.help(s.Schema())
		case "add":
			if err := sh.add(s); err != nil {
				if errors.Is(err, errEOF) {
					return nil
				}
				return err
			}
		case "list", "ls":
			sh.renderList(s.Expenses())
		case "search", "find":
			sh.renderList(s.Search(arg))
		case "delete", "del":
			// Outcomes are reported through Notify.
			_, _ = s.DeleteMostRecent()
		case "clear":
			_, _ = s.ClearAll()
		case "stats", "analytics":
			sh.renderReport(s.Report())
		case "chart":
			sh.renderChart(s.Report().Chart)
		case "quit", "exit", "q":
			return nil
		default:
			sh.Notify(session.Notice{Level: session.LevelError, Message: fmt.Sprintf("Unknown command %q, type 'help'", cmd)})
		}
	}
}

// add runs the expense form. A rejected submission keeps its values as
// the defaults of the next attempt.
func (sh *Shell) add(s *session.Session) error {
	var c core.Candidate
	for {
		var ok bool
		var err error
		if c.Name, ok, err = sh.field("Name", c.Name); !ok {
			return err
		}
		if c.Amount, ok, err = sh.field("Amount", c.Amount); !ok {
			return err
		}
		if s.Schema().HasDates() {
			if c.Category, ok, err = sh.field("Category ("+categoryList()+")", c.Category); !ok {
				return err
			}
			if c.Date, ok, err = sh.field("Date YYYY-MM-DD (blank for today)", c.Date); !ok {
				return err
			}
		}

		if _, err := s.AddExpense(c); err == nil {
			return nil
		}
		sh.logger.Fields(slog.LevelDebug, "Retrying add form", applog.NewFields().WithOperation(applog.OpAdd))
	}
}

// field prompts for one form value. Blank input keeps current and "-"
// clears it; ok is false when the form was cancelled or input ended.
func (sh *Shell) field(label, current string) (value string, ok bool, err error) {
	p := label + ": "
	if current != "" {
		p = fmt.Sprintf("%s [%s]: ", label, current)
	}
	v, err := sh.prompt(p)
	if err != nil {
		return "", false, err
	}
	if strings.EqualFold(v, cancelWord) {
		sh.Notify(session.Notice{Level: session.LevelInfo, Message: "Add cancelled"})
		return "", false, nil
	}
	switch v {
	case "":
		return current, true, nil
	case clearWord:
		return "", true, nil
	}
	return v, true, nil
}

func (sh *Shell) prompt(p string) (string, error) {
	fmt.Fprint(sh.out, p)
	if !sh.in.Scan() {
		fmt.Fprintln(sh.out)
		if err := sh.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errEOF
	}
	return strings.TrimSpace(sh.in.Text()), nil
}

func (sh *Shell) help(schema core.Schema) {
	search := "search <text>  filter by name"
	if schema.HasDates() {
		search += ", category or date"
	}
	lines := []string{
		"add            add an expense (blank keeps a value, '-' clears it, 'cancel' aborts)",
		"list           show all expenses",
		search,
		"delete         delete the most recent expense",
		"clear          delete every expense",
		"stats          summary, category totals and chart",
		"chart          recent expense chart",
		"quit           leave",
	}
	for _, l := range lines {
		fmt.Fprintln(sh.out, "  "+l)
	}
}

func categoryList() string {
	cats := core.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
