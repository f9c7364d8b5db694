package timeparse

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
)

// foldCase lowercases s the way month names are compared.
func foldCase(s string) string {
	return cases.Fold().String(s)
}

// normalize trims s, collapses inner whitespace runs to one space and folds
// case.
func normalize(s string) string {
	return foldCase(strings.Join(strings.Fields(s), " "))
}

// trial runs s through the catalog of kind and hands each match to build
// until build accepts one.
func (c *Config) trial(kind Kind, s string, build func(fields) bool) error {
	text := normalize(s)
	if text == "" {
		return parseErr(kind, s, ErrEmpty)
	}
	cat := c.catalog(c.snapshot(), kind)
	for _, p := range cat.patterns {
		f, ok := p.match(text)
		if ok && build(f) {
			return nil
		}
	}
	return parseErr(kind, s, ErrNoMatch)
}

// ParseTime parses s as a time of day, e.g. "23:44", "23.44.10", "2344".
func (c *Config) ParseTime(s string) (Time, error) {
	var t Time
	err := c.trial(KindTime, s, func(f fields) bool {
		t = Time{f.hour, f.minute, f.second, f.nsec}
		return true
	})
	return t, err
}

// ParseDate parses s as a date. A year or month missing from s is taken from
// the reference today.
func (c *Config) ParseDate(s string) (Date, error) {
	return c.ParseDateFrom(s, c.Today())
}

// ParseDateFrom is like ParseDate with an explicit reference today.
func (c *Config) ParseDateFrom(s string, today Date) (Date, error) {
	var d Date
	err := c.trial(KindDate, s, func(f fields) bool {
		got, ok := f.date(today)
		if ok {
			d = got
		}
		return ok
	})
	return d, err
}

// date completes f with today's year and month where the pattern omitted
// them. It fails when the day does not exist in the resulting month.
func (f fields) date(today Date) (Date, bool) {
	d := Date{Year: f.year, Month: f.month, Day: f.day}
	if !f.hasYear {
		d.Year = today.Year
	}
	if !f.hasMonth {
		d.Month = today.Month
	}
	return d, d.Valid()
}

// ParseDateTime parses s as a date followed by a time, joined by one of the
// datetime connectors, e.g. "24.3.2013 23:44" or "24.3.2013,23:44".
func (c *Config) ParseDateTime(s string) (DateTime, error) {
	today := c.Today()
	var dt DateTime
	err := c.trial(KindDateTime, s, func(f fields) bool {
		d, ok := f.date(today)
		if !ok {
			return false
		}
		dt = Combine(d, Time{f.hour, f.minute, f.second, f.nsec})
		return true
	})
	return dt, err
}

// ParseDateTimeTokens parses a datetime given as separate tokens. Two tokens
// are parsed as a date and a time; any other count is joined with spaces and
// handed to ParseDateTime.
func (c *Config) ParseDateTimeTokens(tokens []string) (DateTime, error) {
	if len(tokens) == 2 {
		return c.combine(tokens[0], tokens[1])
	}
	return c.ParseDateTime(strings.Join(tokens, " "))
}

func (c *Config) combine(date, clock string) (DateTime, error) {
	d, err := c.ParseDate(date)
	if err != nil {
		return DateTime{}, err
	}
	t, err := c.ParseTime(clock)
	if err != nil {
		return DateTime{}, err
	}
	return Combine(d, t), nil
}

// TimeOrDateTime parses a single token as a Time and two tokens as a date
// and a time combined into a DateTime.
func (c *Config) TimeOrDateTime(tokens []string) (Value, error) {
	switch len(tokens) {
	case 1:
		t, err := c.ParseTime(tokens[0])
		if err != nil {
			return nil, err
		}
		return t, nil
	case 2:
		dt, err := c.combine(tokens[0], tokens[1])
		if err != nil {
			return nil, err
		}
		return dt, nil
	default:
		return nil, parseErr(KindTimeOrDateTime, strings.Join(tokens, " "),
			errors.Wrapf(ErrTokenCount, "got %d, want 1 or 2", len(tokens)))
	}
}

// Convert parses input as kind. Input may be a string, a []string of tokens,
// a []byte or a fmt.Stringer; anything else yields a *TypeError. A valid
// Value of the requested kind is returned unchanged. Durations are read with
// the days key.
func (c *Config) Convert(kind Kind, input any) (any, error) {
	return c.convert(kind, DurationDays, input)
}

func (c *Config) convert(kind Kind, key DurationField, input any) (any, error) {
	if v, ok := input.(Value); ok && accepts(kind, v) {
		return v, nil
	}
	tokens, err := tokensOf(kind, input)
	if err != nil {
		return nil, err
	}
	text := strings.Join(tokens, " ")
	var v any
	switch kind {
	case KindTime:
		v, err = c.ParseTime(text)
	case KindDate:
		v, err = c.ParseDate(text)
	case KindDateTime:
		v, err = c.ParseDateTimeTokens(tokens)
	case KindDuration:
		v, err = parseDuration(text, key)
	case KindTimeOrDateTime:
		v, err = c.TimeOrDateTime(tokens)
	default:
		return nil, &TypeError{Kind: kind, Value: input}
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func accepts(kind Kind, v Value) bool {
	if !v.Valid() {
		return false
	}
	if kind == KindTimeOrDateTime {
		return v.Kind() == KindTime || v.Kind() == KindDateTime
	}
	return v.Kind() == kind
}

// tokensOf splits string-like input on whitespace.
func tokensOf(kind Kind, input any) ([]string, error) {
	switch v := input.(type) {
	case string:
		return strings.Fields(v), nil
	case []byte:
		return strings.Fields(string(v)), nil
	case []string:
		var out []string
		for _, s := range v {
			out = append(out, strings.Fields(s)...)
		}
		return out, nil
	case fmt.Stringer:
		return strings.Fields(v.String()), nil
	}
	return nil, &TypeError{Kind: kind, Value: input}
}

func ParseTime(s string) (Time, error) {
	return Default.ParseTime(s)
}

func ParseDate(s string) (Date, error) {
	return Default.ParseDate(s)
}

func ParseDateFrom(s string, today Date) (Date, error) {
	return Default.ParseDateFrom(s, today)
}

func ParseDateTime(s string) (DateTime, error) {
	return Default.ParseDateTime(s)
}

func ParseDateTimeTokens(tokens []string) (DateTime, error) {
	return Default.ParseDateTimeTokens(tokens)
}

func TimeOrDateTime(tokens []string) (Value, error) {
	return Default.TimeOrDateTime(tokens)
}

func Convert(kind Kind, input any) (any, error) {
	return Default.Convert(kind, input)
}
