package timeparse

import (
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// catalogCacheSize bounds how many configuration snapshots keep their
// generated catalogs around.
const catalogCacheSize = 16

// Config holds the settings that steer the parsers: date field order, the
// reference today and the generation options of each catalog.
//
// A Config is safe for concurrent use, though it is meant to be configured
// once and then only read.
type Config struct {
	mu       sync.RWMutex
	endian   Endian
	today    *Date
	now      func() time.Time
	time     FormatOptions
	date     FormatOptions
	datetime FormatOptions

	catalogs *lru.Cache[string, *Catalog]
}

// Default is the Config used by the package-level functions.
var Default = NewConfig()

// NewConfig returns a Config with default settings.
func NewConfig() *Config {
	catalogs, err := lru.New[string, *Catalog](catalogCacheSize)
	if err != nil {
		panic(err)
	}
	c := &Config{catalogs: catalogs, now: time.Now}
	c.reset()
	return c
}

func defaultTimeOptions() FormatOptions {
	return FormatOptions{
		Separators: []string{":", "."},
		Figures:    [3]bool{true, true, true},
		AllowNoSep: true,
	}
}

func defaultDateOptions() FormatOptions {
	return FormatOptions{
		Separators:     []string{".", "/", "-", " "},
		Figures:        [3]bool{true, true, true},
		AllowNoSep:     true,
		AllowMonthName: true,
	}
}

func defaultDateTimeOptions() FormatOptions {
	return FormatOptions{
		Separators: []string{" ", ","},
		Figures:    [3]bool{true, true, true},
		AllowNoSep: true,
	}
}

func (c *Config) reset() {
	c.endian = EndianAuto
	c.today = nil
	c.time = defaultTimeOptions()
	c.date = defaultDateOptions()
	c.datetime = defaultDateTimeOptions()
}

// Reset restores every setting to its default. The clock is kept.
func (c *Config) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// SetEndian selects the date field order.
func (c *Config) SetEndian(e Endian) error {
	if !e.Valid() {
		return &ConfigError{Setting: "endian", Value: e.String()}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endian = e
	return nil
}

// Endian returns the configured field order with EndianAuto resolved.
func (c *Config) Endian() Endian {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endian.resolve()
}

// SetToday fixes the reference date used to fill in omitted years and
// months.
func (c *Config) SetToday(d Date) error {
	if !d.Valid() {
		return &ConfigError{Setting: "today", Value: d.String(), Reason: "no such day"}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = &d
	return nil
}

// ResetToday makes the reference date follow the clock again.
func (c *Config) ResetToday() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = nil
}

// SetClock replaces the source of the current date. It is mostly useful in
// tests.
func (c *Config) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Today returns the reference date.
func (c *Config) Today() Date {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.today != nil {
		return *c.today
	}
	return DateOf(c.now())
}

// FormatOption changes one setting of a catalog's FormatOptions.
type FormatOption func(kind Kind, o *FormatOptions) error

// Separators replaces the separators of a catalog. For datetimes these are
// the connectors between the date and the time. Digit-run patterns are
// enabled with AllowNoSep, not with an empty separator.
func Separators(seps ...string) FormatOption {
	return func(kind Kind, o *FormatOptions) error {
		out := make([]string, 0, len(seps))
		for _, s := range seps {
			if s == "" {
				return &ConfigError{Setting: "separators", Value: s, Reason: "use AllowNoSep for patterns without separator"}
			}
			if strings.ContainsAny(s, "0123456789") {
				return &ConfigError{Setting: "separators", Value: s, Reason: "separators cannot contain digits"}
			}
			out = append(out, foldCase(s))
		}
		o.Separators = out
		return nil
	}
}

// Figures sets the width flags of the three fields; see FormatOptions.
func Figures(a, b, c bool) FormatOption {
	return func(kind Kind, o *FormatOptions) error {
		o.Figures = [3]bool{a, b, c}
		return nil
	}
}

func AllowNoSep(allow bool) FormatOption {
	return func(kind Kind, o *FormatOptions) error {
		o.AllowNoSep = allow
		return nil
	}
}

// AllowMonthName adds patterns spelling the month as "Apr" or "April". It
// only applies to the date catalog.
func AllowMonthName(allow bool) FormatOption {
	return func(kind Kind, o *FormatOptions) error {
		if kind != KindDate {
			return &ConfigError{Setting: "allow_month_name", Value: kind.String(), Reason: "only dates have month names"}
		}
		o.AllowMonthName = allow
		return nil
	}
}

func (c *Config) ConfigureTime(opts ...FormatOption) error {
	return c.configure(KindTime, opts)
}

func (c *Config) ConfigureDate(opts ...FormatOption) error {
	return c.configure(KindDate, opts)
}

func (c *Config) ConfigureDateTime(opts ...FormatOption) error {
	return c.configure(KindDateTime, opts)
}

// configure applies opts to a copy of the kind's options and commits the
// copy only when every option succeeded.
func (c *Config) configure(kind Kind, opts []FormatOption) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	target := c.options(kind)
	o := target.clone()
	for _, opt := range opts {
		if err := opt(kind, &o); err != nil {
			return err
		}
	}
	*target = o
	return nil
}

func (c *Config) options(kind Kind) *FormatOptions {
	switch kind {
	case KindTime:
		return &c.time
	case KindDate:
		return &c.date
	default:
		return &c.datetime
	}
}

// Options returns a copy of the generation options of a catalog kind.
func (c *Config) Options(kind Kind) FormatOptions {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.options(kind).clone()
}

// snapshot captures everything a catalog of one kind depends on.
type snapshot struct {
	endian   Endian
	time     FormatOptions
	date     FormatOptions
	datetime FormatOptions
}

func (c *Config) snapshot() snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return snapshot{
		endian:   c.endian.resolve(),
		time:     c.time.clone(),
		date:     c.date.clone(),
		datetime: c.datetime.clone(),
	}
}

func (s snapshot) key(kind Kind) string {
	switch kind {
	case KindTime:
		return "time " + s.time.key()
	case KindDate:
		return "date " + s.endian.String() + " " + s.date.key()
	default:
		return "datetime " + s.datetime.key() + " " + s.key(KindDate) + " " + s.key(KindTime)
	}
}

// Catalog returns the patterns tried for kind under the current settings.
// Catalogs are generated on first use and shared until the settings change.
func (c *Config) Catalog(kind Kind) (*Catalog, error) {
	switch kind {
	case KindTime, KindDate, KindDateTime:
	default:
		return nil, &ConfigError{Setting: "catalog", Value: kind.String(), Reason: "no catalog for this kind"}
	}
	return c.catalog(c.snapshot(), kind), nil
}

func (c *Config) catalog(s snapshot, kind Kind) *Catalog {
	key := s.key(kind)
	if cat, ok := c.catalogs.Get(key); ok {
		return cat
	}
	var cat *Catalog
	switch kind {
	case KindTime:
		cat = buildTimeCatalog(s.time)
	case KindDate:
		cat = buildDateCatalog(s.date, s.endian)
	default:
		cat = buildDateTimeCatalog(s.datetime, c.catalog(s, KindDate), c.catalog(s, KindTime))
	}
	c.catalogs.Add(key, cat)
	return cat
}
