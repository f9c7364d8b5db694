package timeparse

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	c := newTestConfig(t)
	tests := []struct {
		in   string
		want Time
	}{
		{"23:44", Time{23, 44, 0, 0}},
		{"23.44.10", Time{23, 44, 10, 0}},
		{"7:05", Time{7, 5, 0, 0}},
		{"2344", Time{23, 44, 0, 0}},
		{"104522", Time{10, 45, 22, 0}},
		{"220316", Time{22, 3, 16, 0}},
		{"1303", Time{13, 3, 0, 0}},
		{"23", Time{23, 0, 0, 0}},
		{"  23:44  ", Time{23, 44, 0, 0}},
		{"23:44:10.5", Time{23, 44, 10, 500000000}},
		{"23:44:10.123456", Time{23, 44, 10, 123456000}},
	}
	for _, tt := range tests {
		got, err := c.ParseTime(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseTimeErrors(t *testing.T) {
	c := newTestConfig(t)
	for _, in := range []string{"23;44", "24:00", "23:60", "12:3x", "1234567"} {
		_, err := c.ParseTime(in)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, in)
		assert.Equal(t, KindTime, perr.Kind)
		assert.ErrorIs(t, err, ErrNoMatch, in)
	}

	_, err := c.ParseTime("")
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = c.ParseTime("   ")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestParseTimeNoSep(t *testing.T) {
	c := newTestConfig(t)
	require.NoError(t, c.ConfigureTime(AllowNoSep(false)))
	_, err := c.ParseTime("2344")
	require.Error(t, err)

	require.NoError(t, c.ConfigureTime(AllowNoSep(true)))
	got, err := c.ParseTime("2344")
	require.NoError(t, err)
	assert.Equal(t, Time{Hour: 23, Minute: 44}, got)
}

func TestParseDate(t *testing.T) {
	c := newTestConfig(t)
	tests := []struct {
		in   string
		want Date
	}{
		{"24.3.2013", Date{2013, time.March, 24}},
		{"24032013", Date{2013, time.March, 24}},
		{"22042013", Date{2013, time.April, 22}},
		{"220413", Date{2013, time.April, 22}},
		{"22.4.13", Date{2013, time.April, 22}},
		{"1/2/99", Date{1999, time.February, 1}},
		{"24 Apr 2013", Date{2013, time.April, 24}},
		{"24 april 2013", Date{2013, time.April, 24}},
		{"24  APRIL   2013", Date{2013, time.April, 24}},
		{"24-may-2013", Date{2013, time.May, 24}},
		{"24Apr2013", Date{2013, time.April, 24}},
		{"2403", Date{2013, time.March, 24}},
		{"243", Date{2013, time.March, 24}},
		{"24", Date{2013, time.April, 24}},
		{"24.3", Date{2013, time.March, 24}},
		{"29.2.2024", Date{2024, time.February, 29}},
	}
	for _, tt := range tests {
		got, err := c.ParseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseDateEndian(t *testing.T) {
	tests := []struct {
		endian Endian
		in     string
		want   Date
	}{
		{EndianLittle, "01.02.2013", Date{2013, time.February, 1}},
		{EndianMiddle, "01.02.2013", Date{2013, time.January, 2}},
		{EndianBig, "2013.02.01", Date{2013, time.February, 1}},
		{EndianBig, "20130201", Date{2013, time.February, 1}},
		{EndianMiddle, "0201", Date{2013, time.February, 1}},
		{EndianBig, "2.1", Date{2013, time.February, 1}},
	}
	for _, tt := range tests {
		c := newTestConfig(t)
		require.NoError(t, c.SetEndian(tt.endian))
		got, err := c.ParseDate(tt.in)
		require.NoError(t, err, "%s %s", tt.endian, tt.in)
		assert.Equal(t, tt.want, got, "%s %s", tt.endian, tt.in)
	}
}

func TestParseDateFrom(t *testing.T) {
	c := newTestConfig(t)
	today := Date{1, time.February, 3}
	tests := []struct {
		in   string
		want Date
	}{
		{"2403", Date{1, time.March, 24}},
		{"24", Date{1, time.February, 24}},
		{"243", Date{1, time.March, 24}},
	}
	for _, tt := range tests {
		got, err := c.ParseDateFrom(tt.in, today)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseDateClock(t *testing.T) {
	c := NewConfig()
	require.NoError(t, c.SetEndian(EndianLittle))
	c.SetClock(func() time.Time {
		return time.Date(2020, time.June, 15, 12, 0, 0, 0, time.UTC)
	})

	got, err := c.ParseDate("23")
	require.NoError(t, err)
	assert.Equal(t, Date{2020, time.June, 23}, got)

	require.NoError(t, c.SetToday(Date{2013, time.April, 10}))
	got, err = c.ParseDate("23")
	require.NoError(t, err)
	assert.Equal(t, Date{2013, time.April, 23}, got)

	c.ResetToday()
	assert.Equal(t, Date{2020, time.June, 15}, c.Today())
}

func TestParseDateOverflow(t *testing.T) {
	c := newTestConfig(t)
	_, err := c.ParseDateFrom("31", Date{2013, time.April, 1})
	require.ErrorIs(t, err, ErrNoMatch)

	_, err = c.ParseDate("30.2.2013")
	require.ErrorIs(t, err, ErrNoMatch)

	got, err := c.ParseDateFrom("31", Date{2013, time.May, 1})
	require.NoError(t, err)
	assert.Equal(t, Date{2013, time.May, 31}, got)

	got, err = c.ParseDate("31.4")
	require.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, Date{}, got)
}

func TestParseDateErrors(t *testing.T) {
	c := newTestConfig(t)
	for _, in := range []string{"2013-4.24", "32.1.2013", "1.13.2013", "24 Foo 2013", "24.3.2013x"} {
		_, err := c.ParseDate(in)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, in)
		assert.Equal(t, KindDate, perr.Kind, in)
		assert.Equal(t, in, perr.Value, in)
	}
}

func TestParseDateMonthNames(t *testing.T) {
	c := newTestConfig(t)
	require.NoError(t, c.ConfigureDate(AllowMonthName(false)))
	_, err := c.ParseDate("24 Apr 2013")
	require.Error(t, err)

	require.NoError(t, c.ConfigureDate(AllowMonthName(true)))
	got, err := c.ParseDate("24 Apr 2013")
	require.NoError(t, err)
	assert.Equal(t, Date{2013, time.April, 24}, got)
}

func TestParseDateTime(t *testing.T) {
	c := newTestConfig(t)
	tests := []struct {
		in   string
		want DateTime
	}{
		{"24.3.2013,23:44", Combine(Date{2013, time.March, 24}, Time{23, 44, 0, 0})},
		{"24.3.2013 23:44", Combine(Date{2013, time.March, 24}, Time{23, 44, 0, 0})},
		{"24.3 23:44:10", Combine(Date{2013, time.March, 24}, Time{23, 44, 10, 0})},
		{"24 23.44", Combine(Date{2013, time.April, 24}, Time{23, 44, 0, 0})},
		{"24 Apr 2013 23:44", Combine(Date{2013, time.April, 24}, Time{23, 44, 0, 0})},
		{"240320132344", Combine(Date{2013, time.March, 24}, Time{23, 44, 0, 0})},
	}
	for _, tt := range tests {
		got, err := c.ParseDateTime(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := c.ParseDateTime("13.04.24#23:44")
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestParseDateTimeTokens(t *testing.T) {
	c := newTestConfig(t)
	want := Combine(Date{2013, time.April, 22}, Time{22, 3, 16, 0})

	got, err := c.ParseDateTimeTokens([]string{"22.4", "220316"})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = c.ParseDateTimeTokens([]string{"22.4.2013,22:03:16"})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTimeOrDateTime(t *testing.T) {
	c := newTestConfig(t)

	v, err := c.TimeOrDateTime([]string{"220316"})
	require.NoError(t, err)
	assert.Equal(t, Time{22, 3, 16, 0}, v)

	v, err = c.TimeOrDateTime([]string{"22.4", "220316"})
	require.NoError(t, err)
	assert.Equal(t, Combine(Date{2013, time.April, 22}, Time{22, 3, 16, 0}), v)

	for _, tokens := range [][]string{nil, {"1", "2", "3"}} {
		v, err = c.TimeOrDateTime(tokens)
		assert.Nil(t, v)
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, KindTimeOrDateTime, perr.Kind)
		assert.ErrorIs(t, err, ErrTokenCount)
	}

	v, err = c.TimeOrDateTime([]string{"25:00"})
	assert.Nil(t, v)
	assert.Error(t, err)
}

type stringer string

func (s stringer) String() string {
	return string(s)
}

func TestConvert(t *testing.T) {
	c := newTestConfig(t)
	tests := []struct {
		kind  Kind
		input any
		want  any
	}{
		{KindTime, "23:44", Time{23, 44, 0, 0}},
		{KindDate, []byte("24.3.2013"), Date{2013, time.March, 24}},
		{KindDate, stringer("24.3.2013"), Date{2013, time.March, 24}},
		{KindDateTime, []string{"22.4", "220316"}, Combine(Date{2013, time.April, 22}, Time{22, 3, 16, 0})},
		{KindDateTime, "24.3.2013,23:44", Combine(Date{2013, time.March, 24}, Time{23, 44, 0, 0})},
		{KindDuration, "w3 h4 s20", 3*7*24*time.Hour + 4*time.Hour + 20*time.Second},
		{KindDuration, "1 2", 24*time.Hour + 2*time.Hour},
		{KindTimeOrDateTime, "220316", Time{22, 3, 16, 0}},
	}
	for _, tt := range tests {
		got, err := c.Convert(tt.kind, tt.input)
		require.NoError(t, err, "%s %v", tt.kind, tt.input)
		assert.Equal(t, tt.want, got, "%s %v", tt.kind, tt.input)
	}
}

func TestConvertValues(t *testing.T) {
	c := newTestConfig(t)
	dt := Combine(Date{2013, time.March, 24}, Time{23, 44, 0, 0})
	tests := []struct {
		kind  Kind
		input Value
	}{
		{KindTime, Time{23, 44, 0, 0}},
		{KindDate, Date{2013, time.March, 24}},
		{KindDateTime, dt},
		{KindTimeOrDateTime, dt},
		{KindTimeOrDateTime, Time{13, 3, 0, 0}},
	}
	for _, tt := range tests {
		got, err := c.Convert(tt.kind, tt.input)
		require.NoError(t, err, "%s %v", tt.kind, tt.input)
		assert.Equal(t, tt.input, got, "%s %v", tt.kind, tt.input)
	}

	assert.False(t, Combine(Date{2013, time.February, 30}, Time{}).Valid())
	assert.False(t, Combine(Date{2013, time.March, 24}, Time{Hour: 24}).Valid())
	_, err := c.Convert(KindDateTime, Combine(Date{2013, time.February, 30}, Time{}))
	require.Error(t, err)
	_, err = c.Convert(KindDate, Date{2013, time.February, 30})
	require.Error(t, err)
}

func TestValuesIn(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	assert.Equal(t, time.Date(2013, time.March, 24, 0, 0, 0, 0, loc), Date{2013, time.March, 24}.In(loc))

	dt := Combine(Date{2013, time.March, 24}, Time{23, 44, 10, 500000000})
	assert.Equal(t, int64(1364168650), dt.In(time.UTC).Unix())
	assert.Equal(t, 500000000, dt.In(loc).Nanosecond())
}

func TestConvertTypeError(t *testing.T) {
	c := newTestConfig(t)
	for _, kind := range []Kind{KindTime, KindDate, KindDateTime, KindDuration, KindTimeOrDateTime} {
		for _, input := range []any{nil, 42, 1.5} {
			v, err := c.Convert(kind, input)
			assert.Nil(t, v)
			var terr *TypeError
			require.ErrorAs(t, err, &terr, "%s %v", kind, input)
			assert.Equal(t, kind, terr.Kind)
		}
	}

	_, err := c.Convert(Kind(99), "23:44")
	var terr *TypeError
	require.ErrorAs(t, err, &terr)
}

func TestErrorMessages(t *testing.T) {
	c := newTestConfig(t)
	_, err := c.ParseDate("2013-4.24")
	assert.Equal(t, `timeparse: invalid date value: "2013-4.24": no pattern matched`, err.Error())

	_, err = c.Convert(KindDate, nil)
	assert.Equal(t, "timeparse: cannot parse <nil> as date", err.Error())

	err = c.SetToday(Date{2013, time.February, 30})
	assert.Equal(t, `timeparse: invalid today setting: "2013-02-30" (no such day)`, err.Error())

	assert.True(t, errors.Is(&ArgumentError{Err: parseErr(KindTime, "x", ErrNoMatch)}, ErrNoMatch))
}

func TestDefaultConfig(t *testing.T) {
	defer Default.Reset()
	require.NoError(t, Default.SetEndian(EndianLittle))
	require.NoError(t, Default.SetToday(Date{2013, time.April, 10}))

	d, err := ParseDate("24.3.2013")
	require.NoError(t, err)
	assert.Equal(t, Date{2013, time.March, 24}, d)

	tm, err := ParseTime("23:44")
	require.NoError(t, err)
	assert.Equal(t, Time{23, 44, 0, 0}, tm)

	dt, err := ParseDateTime("24.3.2013,23:44")
	require.NoError(t, err)
	assert.Equal(t, "2013-03-24 23:44:00", dt.String())

	dt, err = ParseDateTimeTokens([]string{"22.4", "220316"})
	require.NoError(t, err)
	assert.Equal(t, "2013-04-22 22:03:16", dt.String())

	d, err = ParseDateFrom("24", Date{2000, time.January, 1})
	require.NoError(t, err)
	assert.Equal(t, Date{2000, time.January, 24}, d)

	v, err := TimeOrDateTime([]string{"1303"})
	require.NoError(t, err)
	assert.Equal(t, KindTime, v.Kind())

	got, err := Convert(KindDuration, "1,2,3")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour+2*time.Hour+3*time.Minute, got)
}
