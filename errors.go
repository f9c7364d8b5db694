package timeparse

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Kind identifies what a parser produces.
type Kind int

const (
	KindTime Kind = iota
	KindDate
	KindDateTime
	KindDuration
	KindTimeOrDateTime
)

func (k Kind) String() string {
	switch k {
	case KindTime:
		return "time"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	case KindDuration:
		return "duration"
	case KindTimeOrDateTime:
		return "time or datetime"
	default:
		return "unknown"
	}
}

var (
	ErrEmpty         = errors.New("empty input")
	ErrNoMatch       = errors.New("no pattern matched")
	ErrTokenCount    = errors.New("wrong number of tokens")
	ErrBadNumber     = errors.New("malformed number")
	ErrUnknownUnit   = errors.New("unknown unit")
	ErrDuplicateUnit = errors.New("unit given more than once")
	ErrMixedForms    = errors.New("unit-letter and bare-number values mixed")
	ErrTooManyValues = errors.New("more values than duration fields")
)

// ParseError is returned when text cannot be converted into a value of the
// requested kind.
//
// Err carries the reason and is one of the Err* sentinels, possibly wrapped
// with more detail; test for it with errors.Is.
type ParseError struct {
	Kind  Kind
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	msg := "timeparse: invalid " + e.Kind.String() + " value: " + strconv.Quote(e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TypeError is returned by Convert when the input is not string-like.
type TypeError struct {
	Kind  Kind
	Value any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("timeparse: cannot parse %T as %s", e.Value, e.Kind)
}

// ConfigError is returned when a configuration call receives a value it
// cannot use. Nothing is changed when a ConfigError is returned.
type ConfigError struct {
	Setting string
	Value   string
	Reason  string
}

func (e *ConfigError) Error() string {
	msg := "timeparse: invalid " + e.Setting + " setting: " + strconv.Quote(e.Value)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

// ArgumentError is the error a Flag returns from Set.
type ArgumentError struct {
	Action string
	Input  string
	Kind   Kind
	Err    error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("'%s' couldn't be parsed as %s", e.Input, e.Kind)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

func parseErr(kind Kind, value string, err error) error {
	return &ParseError{Kind: kind, Value: value, Err: err}
}
