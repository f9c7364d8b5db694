package timeparse

import (
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Settings is the document form of a Config:
//
//	endian: little
//	today: 2013-04-24
//	date:
//	  separators: [".", "/"]
//	  figures: [true, true, false]
//	  allow_month_name: false
//
// Absent keys leave the corresponding setting untouched.
type Settings struct {
	Endian   *Endian         `yaml:"endian,omitempty"`
	Today    string          `yaml:"today,omitempty"`
	Time     *FormatSettings `yaml:"time,omitempty"`
	Date     *FormatSettings `yaml:"date,omitempty"`
	DateTime *FormatSettings `yaml:"datetime,omitempty"`
}

type FormatSettings struct {
	Separators     []string `yaml:"separators,omitempty"`
	Figures        []bool   `yaml:"figures,omitempty"`
	AllowNoSep     *bool    `yaml:"allow_no_sep,omitempty"`
	AllowMonthName *bool    `yaml:"allow_month_name,omitempty"`
}

func (s *FormatSettings) options() ([]FormatOption, error) {
	var opts []FormatOption
	if s.Separators != nil {
		opts = append(opts, Separators(s.Separators...))
	}
	if s.Figures != nil {
		if len(s.Figures) != 3 {
			return nil, &ConfigError{Setting: "figures", Value: yamlString(s.Figures), Reason: "want three flags"}
		}
		opts = append(opts, Figures(s.Figures[0], s.Figures[1], s.Figures[2]))
	}
	if s.AllowNoSep != nil {
		opts = append(opts, AllowNoSep(*s.AllowNoSep))
	}
	if s.AllowMonthName != nil {
		opts = append(opts, AllowMonthName(*s.AllowMonthName))
	}
	return opts, nil
}

func yamlString(v any) string {
	out, err := yaml.Marshal(v)
	if err != nil {
		return ""
	}
	return string(out)
}

// Load decodes a YAML Settings document and applies it to c.
func (c *Config) Load(data []byte) error {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "timeparse: decoding settings")
	}
	return c.Apply(s)
}

// Apply applies s to c. Every setting is validated before the first one is
// changed.
func (c *Config) Apply(s Settings) error {
	var today *Date
	if s.Today != "" {
		t, err := time.Parse("2006-01-02", s.Today)
		if err != nil {
			return &ConfigError{Setting: "today", Value: s.Today, Reason: "want YYYY-MM-DD"}
		}
		d := DateOf(t)
		today = &d
	}
	if s.Endian != nil && !s.Endian.Valid() {
		return &ConfigError{Setting: "endian", Value: s.Endian.String()}
	}

	staged := map[Kind]FormatOptions{}
	for kind, fs := range map[Kind]*FormatSettings{KindTime: s.Time, KindDate: s.Date, KindDateTime: s.DateTime} {
		if fs == nil {
			continue
		}
		opts, err := fs.options()
		if err != nil {
			return err
		}
		o := c.Options(kind)
		for _, opt := range opts {
			if err := opt(kind, &o); err != nil {
				return err
			}
		}
		staged[kind] = o
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s.Endian != nil {
		c.endian = *s.Endian
	}
	if today != nil {
		c.today = today
	}
	for kind, o := range staged {
		*c.options(kind) = o
	}
	return nil
}

// Settings returns the current configuration in document form.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e := c.endian
	s := Settings{
		Endian:   &e,
		Time:     c.time.settings(false),
		Date:     c.date.settings(true),
		DateTime: c.datetime.settings(false),
	}
	if c.today != nil {
		s.Today = c.today.String()
	}
	return s
}

func (o FormatOptions) settings(monthNames bool) *FormatSettings {
	noSep := o.AllowNoSep
	s := &FormatSettings{
		Separators: append([]string(nil), o.Separators...),
		Figures:    []bool{o.Figures[0], o.Figures[1], o.Figures[2]},
		AllowNoSep: &noSep,
	}
	if monthNames {
		allow := o.AllowMonthName
		s.AllowMonthName = &allow
	}
	return s
}
