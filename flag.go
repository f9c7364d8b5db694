package timeparse

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/c2nes/timeparse/log"
)

// Flag is a pflag.Value that parses its argument with one of the parsers
// and stores the result through a destination pointer.
//
//	var start timeparse.Date
//	timeparse.Var(fs, &start, "start", "date", "first day")
//
// The destination must match the action: *Time, *Date, *DateTime,
// *time.Duration or *Value (time-or-datetime), and a pointer to a slice of
// those for append actions.
type Flag struct {
	action Action
	cfg    *Config
	key    DurationField
	keySet bool
	dest   any
}

type FlagOption func(f *Flag) error

// WithConfig makes the flag parse with cfg instead of Default.
func WithConfig(cfg *Config) FlagOption {
	return func(f *Flag) error {
		f.cfg = cfg
		return nil
	}
}

// WithDurationKey sets the field bare numbers start at; see ParseDuration.
func WithDurationKey(key string) FlagOption {
	return func(f *Flag) error {
		field, err := ResolveDurationKey(key)
		if err != nil {
			return err
		}
		f.key = field
		f.keySet = true
		return nil
	}
}

// NewFlag returns a Flag performing the named action.
func NewFlag(action string, dest any, opts ...FlagOption) (*Flag, error) {
	a, err := LookupAction(action)
	if err != nil {
		return nil, err
	}
	if !destFits(a, dest) {
		return nil, &ConfigError{
			Setting: "flag destination",
			Value:   fmt.Sprintf("%T", dest),
			Reason:  "does not fit action " + a.Name,
		}
	}
	f := &Flag{action: a, cfg: Default, key: DurationDays, dest: dest}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Var registers a Flag for action on fs. Duration flags without
// WithDurationKey take their key from name when it resolves, so "--weeks 1 2"
// is one week and two days.
func Var(fs *pflag.FlagSet, dest any, name, action, usage string, opts ...FlagOption) (*Flag, error) {
	f, err := NewFlag(action, dest, opts...)
	if err != nil {
		return nil, err
	}
	if f.action.Kind == KindDuration && !f.keySet {
		if field, err := ResolveDurationKey(name); err == nil {
			f.key = field
		}
	}
	fs.Var(f, name, usage)
	return f, nil
}

func destFits(a Action, dest any) bool {
	switch dest.(type) {
	case *Time:
		return a.Kind == KindTime && !a.Append
	case *[]Time:
		return a.Kind == KindTime && a.Append
	case *Date:
		return a.Kind == KindDate && !a.Append
	case *[]Date:
		return a.Kind == KindDate && a.Append
	case *DateTime:
		return a.Kind == KindDateTime && !a.Append
	case *[]DateTime:
		return a.Kind == KindDateTime && a.Append
	case *time.Duration:
		return a.Kind == KindDuration && !a.Append
	case *[]time.Duration:
		return a.Kind == KindDuration && a.Append
	case *Value:
		return a.Kind == KindTimeOrDateTime && !a.Append
	case *[]Value:
		return a.Kind == KindTimeOrDateTime && a.Append
	}
	return false
}

func (f *Flag) Action() Action {
	return f.action
}

// Set parses s and stores the result. Arguments holding several tokens, such
// as "22.4 220316", are split on whitespace.
func (f *Flag) Set(s string) error {
	if f.action.Deprecated {
		log.Warn().
			Str("action", f.action.Name).
			Str("replacement", f.action.Replacement).
			Msg("deprecated flag action")
	}
	v, err := f.cfg.convert(f.action.Kind, f.key, s)
	if err != nil {
		return &ArgumentError{Action: f.action.Name, Input: s, Kind: f.action.Kind, Err: err}
	}
	f.store(v)
	return nil
}

func (f *Flag) store(v any) {
	switch dest := f.dest.(type) {
	case *Time:
		*dest = v.(Time)
	case *[]Time:
		*dest = append(*dest, v.(Time))
	case *Date:
		*dest = v.(Date)
	case *[]Date:
		*dest = append(*dest, v.(Date))
	case *DateTime:
		*dest = v.(DateTime)
	case *[]DateTime:
		*dest = append(*dest, v.(DateTime))
	case *time.Duration:
		*dest = v.(time.Duration)
	case *[]time.Duration:
		*dest = append(*dest, v.(time.Duration))
	case *Value:
		*dest = v.(Value)
	case *[]Value:
		*dest = append(*dest, v.(Value))
	}
}

func (f *Flag) String() string {
	if f == nil || f.dest == nil {
		return ""
	}
	switch dest := f.dest.(type) {
	case *Time:
		return dest.String()
	case *Date:
		return dest.String()
	case *DateTime:
		return dest.String()
	case *time.Duration:
		return dest.String()
	case *Value:
		if *dest == nil {
			return ""
		}
		return (*dest).String()
	case *[]Time:
		return joinStrings(*dest)
	case *[]Date:
		return joinStrings(*dest)
	case *[]DateTime:
		return joinStrings(*dest)
	case *[]time.Duration:
		return joinStrings(*dest)
	case *[]Value:
		return joinStrings(*dest)
	}
	return ""
}

func joinStrings[T fmt.Stringer](xs []T) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = x.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Type names the value in usage messages, e.g. "date" or "dates".
func (f *Flag) Type() string {
	t := actionName(f.action.Kind)
	if f.action.Append {
		t += "s"
	}
	return t
}
