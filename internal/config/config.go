package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"spendbook/internal/analytics"
	"spendbook/internal/core"
	applog "spendbook/internal/log"
)

type Config struct {
	// Ledger
	Schema string

	// Logging
	LogLevel string

	// Recent-expense chart
	ChartSize         int
	ChartMaxBarHeight float64
	ChartMinBarHeight float64
	ChartRecency      string

	// Display
	Currency string

	// Numeric values Load could not parse, reported by Validate.
	parseErrors []string
}

func Load() *Config {
	c := &Config{
		Schema:   getEnv("SPENDBOOK_SCHEMA", "full"),
		LogLevel: getEnv("SPENDBOOK_LOG_LEVEL", "warn"),

		ChartRecency: getEnv("SPENDBOOK_CHART_RECENCY", "most-recent"),

		Currency: getEnv("SPENDBOOK_CURRENCY", "₹"),
	}
	c.ChartSize = c.getEnvInt("SPENDBOOK_CHART_SIZE", 10)
	c.ChartMaxBarHeight = c.getEnvFloat("SPENDBOOK_CHART_MAX_HEIGHT", 150)
	c.ChartMinBarHeight = c.getEnvFloat("SPENDBOOK_CHART_MIN_HEIGHT", analytics.DefaultMinBarHeight)
	return c
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	errors := append([]string(nil), c.parseErrors...)

	if _, err := core.ParseSchema(c.Schema); err != nil {
		errors = append(errors, fmt.Sprintf("invalid schema '%s': must be one of [full basic]", c.Schema))
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if c.ChartSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid chart size %d: must be at least 1", c.ChartSize))
	} else if c.ChartSize > 100 {
		errors = append(errors, fmt.Sprintf("invalid chart size %d: must be at most 100", c.ChartSize))
	}

	maxOK := finite(c.ChartMaxBarHeight) && c.ChartMaxBarHeight > 0
	if !finite(c.ChartMaxBarHeight) {
		errors = append(errors, fmt.Sprintf("invalid chart max height %g: must be a finite number", c.ChartMaxBarHeight))
	} else if c.ChartMaxBarHeight <= 0 {
		errors = append(errors, fmt.Sprintf("invalid chart max height %g: must be positive", c.ChartMaxBarHeight))
	}
	if !finite(c.ChartMinBarHeight) {
		errors = append(errors, fmt.Sprintf("invalid chart min height %g: must be a finite number", c.ChartMinBarHeight))
	} else if c.ChartMinBarHeight < 0 {
		errors = append(errors, fmt.Sprintf("invalid chart min height %g: must not be negative", c.ChartMinBarHeight))
	} else if maxOK && c.ChartMinBarHeight > c.ChartMaxBarHeight {
		errors = append(errors, fmt.Sprintf("invalid chart min height %g: must not exceed max height %g", c.ChartMinBarHeight, c.ChartMaxBarHeight))
	}

	if _, err := analytics.ParseRecency(c.ChartRecency); err != nil {
		errors = append(errors, fmt.Sprintf("invalid chart recency '%s': must be 'most-recent' or 'last-inserted'", c.ChartRecency))
	}

	if strings.TrimSpace(c.Currency) == "" {
		errors = append(errors, "currency symbol cannot be empty")
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// LedgerSchema returns the parsed schema. Call Validate first.
func (c *Config) LedgerSchema() core.Schema {
	s, _ := core.ParseSchema(c.Schema)
	return s
}

// ChartSettings returns the parsed chart settings. Call Validate first.
func (c *Config) ChartSettings() analytics.ChartSettings {
	r, _ := analytics.ParseRecency(c.ChartRecency)
	return analytics.ChartSettings{
		Size:         c.ChartSize,
		MaxBarHeight: c.ChartMaxBarHeight,
		MinBarHeight: c.ChartMinBarHeight,
		Recency:      r,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		c.parseErrors = append(c.parseErrors, fmt.Sprintf("invalid %s '%s': must be an integer", key, value))
		return defaultValue
	}
	return i
}

func (c *Config) getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		c.parseErrors = append(c.parseErrors, fmt.Sprintf("invalid %s '%s': must be a number", key, value))
		return defaultValue
	}
	return f
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
