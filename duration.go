package timeparse

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/dlclark/regexp2"
	"github.com/pkg/errors"
)

// DurationField is one of the units a duration is built from.
type DurationField int

const (
	DurationWeeks DurationField = iota
	DurationDays
	DurationHours
	DurationMinutes
	DurationSeconds
	numDurationFields
)

var durationFieldNames = [numDurationFields]string{"weeks", "days", "hours", "minutes", "seconds"}

var durationFieldUnits = [numDurationFields]time.Duration{
	7 * 24 * time.Hour,
	24 * time.Hour,
	time.Hour,
	time.Minute,
	time.Second,
}

func (f DurationField) String() string {
	if f < 0 || f >= numDurationFields {
		return "unknown"
	}
	return durationFieldNames[f]
}

// Unit returns the length of one f.
func (f DurationField) Unit() time.Duration {
	return durationFieldUnits[f]
}

var durationUnits = map[string]DurationField{
	"w":       DurationWeeks,
	"wk":      DurationWeeks,
	"wks":     DurationWeeks,
	"week":    DurationWeeks,
	"weeks":   DurationWeeks,
	"d":       DurationDays,
	"day":     DurationDays,
	"days":    DurationDays,
	"h":       DurationHours,
	"hr":      DurationHours,
	"hrs":     DurationHours,
	"hour":    DurationHours,
	"hours":   DurationHours,
	"m":       DurationMinutes,
	"min":     DurationMinutes,
	"mins":    DurationMinutes,
	"minute":  DurationMinutes,
	"minutes": DurationMinutes,
	"s":       DurationSeconds,
	"sec":     DurationSeconds,
	"secs":    DurationSeconds,
	"second":  DurationSeconds,
	"seconds": DurationSeconds,
}

// ResolveDurationKey maps a key such as "hours", "H", "min" or "delta-hours"
// to the field bare numbers start filling. Only the part after the last "-"
// or "_" counts. It must be a unit abbreviation or a prefix of exactly one
// field name. The empty key selects days.
func ResolveDurationKey(key string) (DurationField, error) {
	seg := key
	if i := strings.LastIndexAny(seg, "-_"); i >= 0 {
		seg = seg[i+1:]
	}
	seg = strings.ToLower(strings.TrimSpace(seg))
	if seg == "" {
		return DurationDays, nil
	}
	if f, ok := durationUnits[seg]; ok {
		return f, nil
	}
	match := DurationField(-1)
	for f, name := range durationFieldNames {
		if !strings.HasPrefix(name, seg) {
			continue
		}
		if match >= 0 {
			return DurationDays, &ConfigError{Setting: "duration key", Value: key, Reason: "ambiguous"}
		}
		match = DurationField(f)
	}
	if match < 0 {
		return DurationDays, &ConfigError{Setting: "duration key", Value: key, Reason: "matches none of weeks, days, hours, minutes, seconds"}
	}
	return match, nil
}

const number = `[+-]?(?:\d+(?:\.\d*)?|\.\d+)`

var (
	bareRegex      = regexp2.MustCompile(`\A`+number+`\z`, regexp2.None)
	unitFirstRegex = regexp2.MustCompile(`\A([a-z]+)(`+number+`)\z`, regexp2.IgnoreCase)
	unitLastRegex  = regexp2.MustCompile(`\A(?:`+number+`[a-z]+)+\z`, regexp2.IgnoreCase)
	groupRegex     = regexp2.MustCompile(`(`+number+`)([a-z]+)`, regexp2.IgnoreCase)
)

type durationGroup struct {
	magnitude string
	unit      string
}

// ParseDuration parses s as a duration.
//
// With unit letters ("3w 4h 20s", "w3 h4 s20", "1h30m") every field may be
// given once and key is ignored. Bare numbers ("1 2 3", "1,2,3") fill
// consecutive fields starting at the field key resolves to, so "1 2 3" with
// key "hours" is 1h2m3s. Both forms cannot be mixed.
func ParseDuration(s, key string) (time.Duration, error) {
	field, err := ResolveDurationKey(key)
	if err != nil {
		return 0, err
	}
	return parseDuration(s, field)
}

func parseDuration(s string, key DurationField) (time.Duration, error) {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	if len(tokens) == 0 {
		return 0, parseErr(KindDuration, s, ErrEmpty)
	}

	var bare []string
	var groups []durationGroup
	for _, tok := range tokens {
		if ok, _ := bareRegex.MatchString(tok); ok {
			bare = append(bare, tok)
			continue
		}
		if m, _ := unitFirstRegex.FindStringMatch(tok); m != nil {
			g := m.Groups()
			groups = append(groups, durationGroup{magnitude: g[2].String(), unit: g[1].String()})
			continue
		}
		if ok, _ := unitLastRegex.MatchString(tok); ok {
			m, _ := groupRegex.FindStringMatch(tok)
			for m != nil {
				g := m.Groups()
				groups = append(groups, durationGroup{magnitude: g[1].String(), unit: g[2].String()})
				m, _ = groupRegex.FindNextMatch(m)
			}
			continue
		}
		return 0, parseErr(KindDuration, s, errors.Wrapf(ErrBadNumber, "%q", tok))
	}
	if len(bare) > 0 && len(groups) > 0 {
		return 0, parseErr(KindDuration, s, ErrMixedForms)
	}

	var total time.Duration
	if len(groups) > 0 {
		var seen [numDurationFields]bool
		for _, g := range groups {
			f, ok := durationUnits[strings.ToLower(g.unit)]
			if !ok {
				return 0, parseErr(KindDuration, s, errors.Wrapf(ErrUnknownUnit, "%q", g.unit))
			}
			if seen[f] {
				return 0, parseErr(KindDuration, s, errors.Wrapf(ErrDuplicateUnit, "%s", f))
			}
			seen[f] = true
			d, err := f.scale(g.magnitude)
			if err != nil {
				return 0, parseErr(KindDuration, s, err)
			}
			if total, err = add(total, d); err != nil {
				return 0, parseErr(KindDuration, s, err)
			}
		}
		return total, nil
	}

	if int(key)+len(bare) > int(numDurationFields) {
		return 0, parseErr(KindDuration, s,
			errors.Wrapf(ErrTooManyValues, "%d values starting at %s", len(bare), key))
	}
	for i, mag := range bare {
		d, err := (key + DurationField(i)).scale(mag)
		if err != nil {
			return 0, parseErr(KindDuration, s, err)
		}
		if total, err = add(total, d); err != nil {
			return 0, parseErr(KindDuration, s, err)
		}
	}
	return total, nil
}

// add returns total+d, failing instead of wrapping around.
func add(total, d time.Duration) (time.Duration, error) {
	if (d > 0 && total > math.MaxInt64-d) || (d < 0 && total < math.MinInt64-d) {
		return 0, errors.Wrap(ErrBadNumber, "out of range")
	}
	return total + d, nil
}

// scale converts a magnitude of f into a duration.
func (f DurationField) scale(mag string) (time.Duration, error) {
	unit := f.Unit()
	if n, err := strconv.ParseInt(mag, 10, 64); err == nil {
		if n > math.MaxInt64/int64(unit) || n < math.MinInt64/int64(unit) {
			return 0, errors.Wrapf(ErrBadNumber, "%s %s out of range", mag, f)
		}
		return time.Duration(n) * unit, nil
	}
	x, err := strconv.ParseFloat(mag, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrBadNumber, "%q", mag)
	}
	ns := x * float64(unit)
	if math.Abs(ns) >= math.MaxInt64 {
		return 0, errors.Wrapf(ErrBadNumber, "%s %s out of range", mag, f)
	}
	return time.Duration(math.Round(ns)), nil
}
