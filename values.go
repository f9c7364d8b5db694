package timeparse

import (
	"fmt"
	"time"
)

// Value is implemented by the structured results of the time, date and
// datetime parsers.
type Value interface {
	fmt.Stringer
	Kind() Kind
	Valid() bool
}

// Time is a time of day without a date or location.
type Time struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

func (t Time) Kind() Kind {
	return KindTime
}

func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Nanosecond != 0 {
		s += fmt.Sprintf(".%06d", t.Nanosecond/1000)
	}
	return s
}

func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Valid reports whether every component is in range.
func (t Time) Valid() bool {
	return 0 <= t.Hour && t.Hour < 24 &&
		0 <= t.Minute && t.Minute < 60 &&
		0 <= t.Second && t.Second < 60 &&
		0 <= t.Nanosecond && t.Nanosecond < 1e9
}

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{y, m, d}
}

func (d Date) Kind() Kind {
	return KindDate
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Valid reports whether d names an existing day.
func (d Date) Valid() bool {
	return d.Year >= 1 &&
		time.January <= d.Month && d.Month <= time.December &&
		1 <= d.Day && d.Day <= daysIn(d.Year, d.Month)
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateTime combines a Date and a Time.
type DateTime struct {
	Date
	Time
}

// Combine returns the DateTime made of d and t.
func Combine(d Date, t Time) DateTime {
	return DateTime{Date: d, Time: t}
}

func (dt DateTime) Kind() Kind {
	return KindDateTime
}

func (dt DateTime) String() string {
	return dt.Date.String() + " " + dt.Time.String()
}

func (dt DateTime) MarshalText() ([]byte, error) {
	return []byte(dt.String()), nil
}

func (dt DateTime) Valid() bool {
	return dt.Date.Valid() && dt.Time.Valid()
}

// In returns dt as an instant in loc.
func (dt DateTime) In(loc *time.Location) time.Time {
	return time.Date(dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second, dt.Nanosecond, loc)
}
