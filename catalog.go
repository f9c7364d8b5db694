package timeparse

import "fmt"

//go:generate go run ./build

// FormatOptions are the axes a Catalog is generated from.
//
// Figures holds one flag per field: day, month, year for dates and hour,
// minute, second for times. A set flag adds the full width rendering of the
// field (tried first) to the short one; a cleared flag leaves only the short
// rendering. For datetimes the flags enable the date shapes taking part in
// the cross product: full date, date without year, date without year and
// month.
type FormatOptions struct {
	Separators     []string
	Figures        [3]bool
	AllowNoSep     bool
	AllowMonthName bool
}

func (o FormatOptions) clone() FormatOptions {
	o.Separators = append([]string(nil), o.Separators...)
	return o
}

func (o FormatOptions) key() string {
	return fmt.Sprintf("%q/%v/%t/%t", o.Separators, o.Figures, o.AllowNoSep, o.AllowMonthName)
}

// Catalog is the ordered list of patterns tried against an input. Trial
// order is generation order.
type Catalog struct {
	kind     Kind
	patterns []*Pattern
	seen     map[string]bool
}

func newCatalog(kind Kind) *Catalog {
	return &Catalog{kind: kind, seen: make(map[string]bool)}
}

func (c *Catalog) Kind() Kind {
	return c.kind
}

// Patterns returns the patterns in trial order.
func (c *Catalog) Patterns() []*Pattern {
	return c.patterns
}

func (c *Catalog) Len() int {
	return len(c.patterns)
}

// Strings returns the strptime notation of every pattern in trial order.
func (c *Catalog) Strings() []string {
	out := make([]string, len(c.patterns))
	for i, p := range c.patterns {
		out[i] = p.String()
	}
	return out
}

// add appends p unless an identical pattern was generated earlier.
func (c *Catalog) add(p *Pattern) {
	if c.seen[p.code] {
		return
	}
	c.seen[p.code] = true
	c.patterns = append(c.patterns, p)
}

// shape is an ordered list of field kinds making up a pattern.
type shape []tokenKind

// widthCombos expands a shape into every combination of field widths the
// figure flags allow, full widths first. The first field varies slowest.
func widthCombos(s shape, figures [3]bool, slot func(tokenKind) int) [][]token {
	combos := [][]token{nil}
	for _, k := range s {
		widths := []bool{false}
		if figures[slot(k)] {
			widths = []bool{true, false}
		}
		var next [][]token
		for _, c := range combos {
			for _, full := range widths {
				t := append(append([]token(nil), c...), token{kind: k, full: full})
				next = append(next, t)
			}
		}
		combos = next
	}
	return combos
}

func join(fields []token, sep string) []token {
	out := make([]token, 0, 2*len(fields))
	for i, f := range fields {
		if i > 0 && sep != "" {
			out = append(out, lit(sep))
		}
		out = append(out, f)
	}
	return out
}

func timeSlot(k tokenKind) int {
	switch k {
	case tokHour:
		return 0
	case tokMinute:
		return 1
	}
	return 2
}

func dateSlot(k tokenKind) int {
	switch k {
	case tokDay:
		return 0
	case tokMonth:
		return 1
	}
	return 2
}

var timeShapes = []shape{
	{tokHour, tokMinute, tokSecond},
	{tokHour, tokMinute},
	{tokHour},
}

func dateShapes(e Endian) []shape {
	switch e {
	case EndianBig:
		return []shape{{tokYear, tokMonth, tokDay}, {tokMonth, tokDay}, {tokDay}}
	case EndianMiddle:
		return []shape{{tokMonth, tokDay, tokYear}, {tokMonth, tokDay}, {tokDay}}
	default:
		return []shape{{tokDay, tokMonth, tokYear}, {tokDay, tokMonth}, {tokDay}}
	}
}

// buildTimeCatalog generates (hour, minute, second) patterns. Three field
// shapes are tried with a trailing ".%f" fraction before the bare form.
func buildTimeCatalog(o FormatOptions) *Catalog {
	c := newCatalog(KindTime)
	emit := func(sep string, noSep bool) {
		for _, s := range timeShapes {
			for _, combo := range widthCombos(s, o.Figures, timeSlot) {
				variants := [][]token{join(combo, sep)}
				if len(s) == 3 {
					withFrac := append(join(combo, sep), lit("."), token{kind: tokFraction})
					variants = [][]token{withFrac, variants[0]}
				}
				for _, toks := range variants {
					p := newPattern(KindTime, sep, toks)
					if noSep && !p.allFixedBut(1) {
						continue
					}
					c.add(p)
				}
			}
		}
	}
	for _, sep := range o.Separators {
		emit(sep, false)
	}
	if o.AllowNoSep {
		emit("", true)
	}
	return c
}

// buildDateCatalog generates day/month/year patterns ordered by e, followed
// by the shapes omitting the year and omitting year and month.
func buildDateCatalog(o FormatOptions, e Endian) *Catalog {
	c := newCatalog(KindDate)
	emit := func(sep string, noSep bool) {
		for _, s := range dateShapes(e) {
			for _, combo := range widthCombos(s, o.Figures, dateSlot) {
				variants := [][]token{combo}
				if o.AllowMonthName {
					for _, name := range []tokenKind{tokMonthAbbr, tokMonthName} {
						named, ok := withMonthName(combo, name)
						if ok {
							variants = append(variants, named)
						}
					}
				}
				for _, v := range variants {
					p := newPattern(KindDate, sep, join(v, sep))
					if noSep && !p.allFixedBut(1) {
						continue
					}
					c.add(p)
				}
			}
		}
	}
	for _, sep := range o.Separators {
		emit(sep, false)
	}
	if o.AllowNoSep {
		emit("", true)
	}
	return c
}

func withMonthName(combo []token, name tokenKind) ([]token, bool) {
	out := append([]token(nil), combo...)
	for i, t := range out {
		if t.kind == tokMonth {
			out[i] = token{kind: name}
			return out, true
		}
	}
	return nil, false
}

// buildDateTimeCatalog joins every enabled date pattern with every time
// pattern through each connector. With o.AllowNoSep the digit-run dates and
// times are also concatenated directly.
func buildDateTimeCatalog(o FormatOptions, dates, times *Catalog) *Catalog {
	c := newCatalog(KindDateTime)
	enabled := func(p *Pattern) bool {
		switch {
		case !p.omitsYear:
			return o.Figures[0]
		case !p.omitsMonth:
			return o.Figures[1]
		default:
			return o.Figures[2]
		}
	}
	combine := func(d *Pattern, conn string, t *Pattern) {
		toks := make([]token, 0, len(d.tokens)+len(t.tokens)+1)
		toks = append(toks, d.tokens...)
		if conn != "" {
			toks = append(toks, lit(conn))
		}
		toks = append(toks, t.tokens...)
		p := newPattern(KindDateTime, conn, toks)
		p.omitsYear, p.omitsMonth = d.omitsYear, d.omitsMonth
		c.add(p)
	}
	for _, conn := range o.Separators {
		for _, d := range dates.patterns {
			if !enabled(d) {
				continue
			}
			for _, t := range times.patterns {
				combine(d, conn, t)
			}
		}
	}
	if o.AllowNoSep && o.Figures[0] {
		for _, d := range dates.patterns {
			if d.sep != "" || d.omitsYear || !d.numeric() || !d.allFixedBut(0) {
				continue
			}
			for _, t := range times.patterns {
				if t.sep != "" || len(t.tokens) < 2 || !t.numeric() {
					continue
				}
				combine(d, "", t)
			}
		}
	}
	return c
}
