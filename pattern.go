package timeparse

import (
	"fmt"
	"strings"
	"time"
)

type tokenKind uint8

const (
	tokLiteral tokenKind = iota
	tokDay
	tokMonth
	tokMonthAbbr
	tokMonthName
	tokYear
	tokHour
	tokMinute
	tokSecond
	tokFraction
)

// token is one element of a Pattern. Numeric fields are either full width
// (two digits, four for years) or short (one or two digits, two for years).
type token struct {
	kind tokenKind
	full bool
	lit  string
}

func lit(s string) token {
	return token{kind: tokLiteral, lit: s}
}

var fieldCodes = map[tokenKind]string{
	tokDay:    "d",
	tokMonth:  "m",
	tokHour:   "H",
	tokMinute: "M",
	tokSecond: "S",
}

func (t token) code() string {
	switch t.kind {
	case tokLiteral:
		return strings.ReplaceAll(t.lit, "%", "%%")
	case tokMonthAbbr:
		return "%b"
	case tokMonthName:
		return "%B"
	case tokFraction:
		return "%f"
	case tokYear:
		if t.full {
			return "%Y"
		}
		return "%y"
	}
	c := fieldCodes[t.kind]
	if t.full {
		return "%" + c
	}
	return "%-" + c
}

// fixed reports whether the token consumes a predictable number of bytes,
// which is what allows it to precede another field without a separator.
func (t token) fixed() bool {
	switch t.kind {
	case tokLiteral, tokYear, tokMonthAbbr, tokMonthName:
		return true
	case tokFraction:
		return false
	default:
		return t.full
	}
}

func (t token) numeric() bool {
	switch t.kind {
	case tokLiteral, tokMonthAbbr, tokMonthName:
		return false
	}
	return true
}

// widths lists the digit counts to try, longest first.
func (t token) widths() []int {
	switch {
	case t.kind == tokYear && t.full:
		return []int{4}
	case t.kind == tokYear:
		return []int{2}
	case t.kind == tokFraction:
		return []int{6, 5, 4, 3, 2, 1}
	case t.full:
		return []int{2}
	default:
		return []int{2, 1}
	}
}

func (t token) accept(v int) bool {
	switch t.kind {
	case tokDay:
		return 1 <= v && v <= 31
	case tokMonth:
		return 1 <= v && v <= 12
	case tokYear:
		return !t.full || v >= 1
	case tokHour:
		return v <= 23
	case tokMinute, tokSecond:
		return v <= 59
	}
	return true
}

// fields collects what a Pattern extracted from its input.
type fields struct {
	year, day                  int
	month                      time.Month
	hour, minute, second, nsec int
	hasYear, hasMonth          bool
}

func (f *fields) set(t token, v, n int) {
	switch t.kind {
	case tokDay:
		f.day = v
	case tokMonth:
		f.month = time.Month(v)
		f.hasMonth = true
	case tokYear:
		if !t.full {
			// 1969 cutoff is consistent with the time pkg
			if v < 69 {
				v += 2000
			} else {
				v += 1900
			}
		}
		f.year = v
		f.hasYear = true
	case tokHour:
		f.hour = v
	case tokMinute:
		f.minute = v
	case tokSecond:
		f.second = v
	case tokFraction:
		for ; n < 9; n++ {
			v *= 10
		}
		f.nsec = v
	}
}

// Pattern is one candidate layout of a Catalog.
type Pattern struct {
	kind       Kind
	tokens     []token
	sep        string
	omitsYear  bool
	omitsMonth bool
	code       string
}

func newPattern(kind Kind, sep string, tokens []token) *Pattern {
	p := &Pattern{kind: kind, sep: sep, tokens: tokens, omitsYear: true, omitsMonth: true}
	var b strings.Builder
	n := 0
	for _, t := range tokens {
		if t.kind != tokLiteral {
			n++
		}
		switch t.kind {
		case tokYear:
			p.omitsYear = false
		case tokMonth, tokMonthAbbr, tokMonthName:
			p.omitsMonth = false
		}
		b.WriteString(t.code())
	}
	p.code = b.String()
	if n == 1 {
		p.sep = ""
	}
	if kind == KindTime {
		p.omitsYear, p.omitsMonth = false, false
	}
	return p
}

// String returns the pattern in strptime notation. Short numeric fields use
// the "%-d" form.
func (p *Pattern) String() string {
	return p.code
}

func (p *Pattern) Kind() Kind {
	return p.kind
}

// Separator returns the separator between fields, or "" for patterns made
// of a digit run.
func (p *Pattern) Separator() string {
	return p.sep
}

// OmitsYear reports whether the year is borrowed from the reference today.
func (p *Pattern) OmitsYear() bool {
	return p.omitsYear
}

// OmitsMonth reports whether the month is borrowed from the reference today.
func (p *Pattern) OmitsMonth() bool {
	return p.omitsMonth
}

// allFixedBut reports whether every token except the last n is fixed width.
func (p *Pattern) allFixedBut(n int) bool {
	for _, t := range p.tokens[:len(p.tokens)-n] {
		if !t.fixed() {
			return false
		}
	}
	return true
}

func (p *Pattern) numeric() bool {
	for _, t := range p.tokens {
		if t.kind == tokMonthAbbr || t.kind == tokMonthName {
			return false
		}
	}
	return true
}

// match reports whether the pattern consumes all of s. s must already be
// case folded.
func (p *Pattern) match(s string) (fields, bool) {
	var f fields
	ok := matchTokens(p.tokens, s, &f)
	return f, ok
}

func matchTokens(toks []token, s string, f *fields) bool {
	if len(toks) == 0 {
		return s == ""
	}
	t := toks[0]
	switch t.kind {
	case tokLiteral:
		if !strings.HasPrefix(s, t.lit) {
			return false
		}
		return matchTokens(toks[1:], s[len(t.lit):], f)
	case tokMonthAbbr, tokMonthName:
		n := 0
		for n < len(s) && 'a' <= s[n] && s[n] <= 'z' {
			n++
		}
		m, ok := monthsByName[s[:n]]
		if !ok {
			return false
		}
		if t.kind == tokMonthAbbr && s[:n] != shortMonthNames[m-1] ||
			t.kind == tokMonthName && s[:n] != longMonthNames[m-1] {
			return false
		}
		saved := *f
		f.month, f.hasMonth = m, true
		if matchTokens(toks[1:], s[n:], f) {
			return true
		}
		*f = saved
		return false
	}

	for _, n := range t.widths() {
		if n > len(s) {
			continue
		}
		v, ok := atoi(s[:n])
		if !ok || !t.accept(v) {
			continue
		}
		saved := *f
		f.set(t, v, n)
		if matchTokens(toks[1:], s[n:], f) {
			return true
		}
		*f = saved
	}
	return false
}

// atoi parses an unsigned run of ASCII digits.
func atoi(s string) (int, bool) {
	v := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}

// Format renders v with the pattern. Fields the pattern does not contain are
// left out; fields v does not carry are rendered as zero.
func (p *Pattern) Format(v Value) string {
	var d Date
	var t Time
	switch v := v.(type) {
	case Date:
		d = v
	case Time:
		t = v
	case DateTime:
		d, t = v.Date, v.Time
	}

	var b strings.Builder
	num := func(tok token, n int) {
		if tok.full {
			fmt.Fprintf(&b, "%02d", n)
		} else {
			fmt.Fprintf(&b, "%d", n)
		}
	}
	for _, tok := range p.tokens {
		switch tok.kind {
		case tokLiteral:
			b.WriteString(tok.lit)
		case tokDay:
			num(tok, d.Day)
		case tokMonth:
			num(tok, int(d.Month))
		case tokMonthAbbr:
			b.WriteString(d.Month.String()[:3])
		case tokMonthName:
			b.WriteString(d.Month.String())
		case tokYear:
			if tok.full {
				fmt.Fprintf(&b, "%04d", d.Year)
			} else {
				fmt.Fprintf(&b, "%02d", d.Year%100)
			}
		case tokHour:
			num(tok, t.Hour)
		case tokMinute:
			num(tok, t.Minute)
		case tokSecond:
			num(tok, t.Second)
		case tokFraction:
			fmt.Fprintf(&b, "%06d", t.Nanosecond/1000)
		}
	}
	return b.String()
}
