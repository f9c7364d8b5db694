package main

import (
	"fmt"
	"go/format"
	"os"
	"strings"
	"time"
)

func main() {
	var long, short, lookup []string
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		long = append(long, fmt.Sprintf("%q,", strings.ToLower(name)))
		short = append(short, fmt.Sprintf("%q,", strings.ToLower(name[:3])))
		lookup = append(lookup, fmt.Sprintf("%q: time.%s,", strings.ToLower(name[:3]), name))
		if len(name) > 3 {
			lookup = append(lookup, fmt.Sprintf("%q: time.%s,", strings.ToLower(name), name))
		}
	}

	lines := []string{
		`// Code generated by go run ./build; DO NOT EDIT.`,
		``,
		`package timeparse`,
		``,
		`import "time"`,
		``,
		`// Lowercase month names indexed by month-1.`,
		`var longMonthNames = [12]string{`,
	}
	lines = append(lines, long...)
	lines = append(lines, `}`, ``, `var shortMonthNames = [12]string{`)
	lines = append(lines, short...)
	lines = append(lines, `}`, ``, `var monthsByName = map[string]time.Month{`)
	lines = append(lines, lookup...)
	lines = append(lines, `}`)
	src := strings.Join(lines, "\n")
	out, err := format.Source([]byte(src))
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile("months.go", out, 0660); err != nil {
		panic(err)
	}
}
