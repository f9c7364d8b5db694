package timeparse

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Endian is the order in which day, month and year are written.
type Endian int

const (
	// EndianAuto guesses the order from the locale environment.
	EndianAuto Endian = iota
	// EndianLittle is day-month-year.
	EndianLittle
	// EndianBig is year-month-day.
	EndianBig
	// EndianMiddle is month-day-year.
	EndianMiddle
)

func (e Endian) String() string {
	switch e {
	case EndianAuto:
		return "auto"
	case EndianLittle:
		return "little"
	case EndianBig:
		return "big"
	case EndianMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// ParseEndian accepts the canonical names plus the field orders they stand
// for ("dmy", "ymd", "mdy") and a few common aliases. Matching is case
// insensitive. The empty string selects EndianAuto.
func ParseEndian(s string) (Endian, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto", "locale":
		return EndianAuto, nil
	case "little", "dmy", "eu":
		return EndianLittle, nil
	case "big", "ymd", "iso":
		return EndianBig, nil
	case "middle", "mdy", "us":
		return EndianMiddle, nil
	default:
		return EndianAuto, &ConfigError{Setting: "endian", Value: s, Reason: "want little, big, middle or auto"}
	}
}

func (e Endian) Valid() bool {
	return EndianAuto <= e && e <= EndianMiddle
}

func (e Endian) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, &ConfigError{Setting: "endian", Value: e.String()}
	}
	return []byte(e.String()), nil
}

func (e *Endian) UnmarshalText(text []byte) error {
	parsed, err := ParseEndian(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

func (e Endian) MarshalYAML() (any, error) {
	if !e.Valid() {
		return nil, &ConfigError{Setting: "endian", Value: e.String()}
	}
	return e.String(), nil
}

func (e *Endian) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &ConfigError{Setting: "endian", Value: node.Value, Reason: err.Error()}
	}
	return e.UnmarshalText([]byte(str))
}

// resolve replaces EndianAuto with the order guessed from the environment.
func (e Endian) resolve() Endian {
	if e != EndianAuto {
		return e
	}
	for _, name := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		if v := os.Getenv(name); v != "" {
			return localeEndian(v)
		}
	}
	return EndianLittle
}

// Regions writing dates year first or month first. Everything else is
// treated as day first.
var (
	bigEndianRegions    = []string{"CN", "HU", "IR", "JP", "KP", "KR", "LT", "MN", "SE", "TW"}
	middleEndianRegions = []string{"FM", "MH", "PH", "PW", "US"}
)

// localeEndian maps a POSIX locale name such as "en_US.UTF-8" to an Endian.
func localeEndian(locale string) Endian {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return EndianLittle
	}
	region, conf := tag.Region()
	if conf == language.No {
		return EndianLittle
	}
	r := region.String()
	for _, x := range bigEndianRegions {
		if r == x {
			return EndianBig
		}
	}
	for _, x := range middleEndianRegions {
		if r == x {
			return EndianMiddle
		}
	}
	return EndianLittle
}
