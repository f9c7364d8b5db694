package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/c2nes/timeparse"
	"github.com/c2nes/timeparse/log"
)

type options struct {
	endian     string
	today      string
	configPath string
	json       bool
	debug      bool
	key        string
}

func main() {
	os.Exit(execute(newRootCmd(os.Stdout)))
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		return 1
	}
	return 0
}

func newRootCmd(out io.Writer) *cobra.Command {
	cfg := timeparse.NewConfig()
	var opts options

	rootCmd := &cobra.Command{
		Use:           "timeparse",
		Short:         "Parse dates, times and durations the way the flag adapters do",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setup(cfg, &opts)
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.endian, "endian", "", "date field order: little, big, middle or auto")
	flags.StringVar(&opts.today, "today", "", "reference date for dates omitting year or month")
	flags.StringVar(&opts.configPath, "config", "", "YAML settings file")
	flags.BoolVar(&opts.json, "json", false, "output in JSON")
	flags.BoolVar(&opts.debug, "debug", false, "debug")

	for _, action := range []string{"time", "date", "datetime", "time-or-datetime"} {
		action := action
		rootCmd.AddCommand(&cobra.Command{
			Use:   action + " text...",
			Short: "Parse text as " + action,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return runParse(out, cfg, &opts, action, args)
			},
		})
	}

	durationCmd := &cobra.Command{
		Use:   "duration text...",
		Short: "Parse text as a duration",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runParse(out, cfg, &opts, "duration", args)
		},
	}
	durationCmd.Flags().StringVar(&opts.key, "key", "days", "field the first bare number fills")
	rootCmd.AddCommand(durationCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:       "catalog time|date|datetime",
		Short:     "List the patterns tried, in order",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"time", "date", "datetime"},
		RunE: func(_ *cobra.Command, args []string) error {
			return runCatalog(out, cfg, &opts, args[0])
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "actions",
		Short: "List the flag actions",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runActions(out, &opts)
		},
	})

	return rootCmd
}

func setup(cfg *timeparse.Config, opts *options) error {
	if opts.debug {
		log.SetLevel(zerolog.DebugLevel)
	}
	if opts.configPath != "" {
		data, err := os.ReadFile(opts.configPath)
		if err != nil {
			return errors.Wrap(err, "reading settings")
		}
		if err := cfg.Load(data); err != nil {
			return err
		}
		log.Info().Str("path", opts.configPath).Msg("loaded settings")
	}
	if opts.endian != "" {
		e, err := timeparse.ParseEndian(opts.endian)
		if err != nil {
			return err
		}
		if err := cfg.SetEndian(e); err != nil {
			return err
		}
	}
	if opts.today != "" {
		var today timeparse.Date
		f, err := timeparse.NewFlag("date", &today, timeparse.WithConfig(cfg))
		if err != nil {
			return err
		}
		if err := f.Set(opts.today); err != nil {
			return err
		}
		if err := cfg.SetToday(today); err != nil {
			return err
		}
	}
	log.Debug().
		Stringer("endian", cfg.Endian()).
		Stringer("today", cfg.Today()).
		Msg("configured")
	return nil
}

type result struct {
	Action  string `json:"action"`
	Input   string `json:"input"`
	Kind    string `json:"kind"`
	Value   string `json:"value"`
	Seconds *int64 `json:"seconds,omitempty"`
	Unix    *int64 `json:"unix,omitempty"`
}

func unixOf(t time.Time) *int64 {
	secs := t.Unix()
	return &secs
}

func runParse(out io.Writer, cfg *timeparse.Config, opts *options, action string, args []string) error {
	input := strings.Join(args, " ")
	var dest any
	flagOpts := []timeparse.FlagOption{timeparse.WithConfig(cfg)}
	var t timeparse.Time
	var d timeparse.Date
	var dt timeparse.DateTime
	var dur time.Duration
	var v timeparse.Value
	switch action {
	case "time":
		dest = &t
	case "date":
		dest = &d
	case "datetime":
		dest = &dt
	case "duration":
		dest = &dur
		flagOpts = append(flagOpts, timeparse.WithDurationKey(opts.key))
	case "time-or-datetime":
		dest = &v
	}
	f, err := timeparse.NewFlag(action, dest, flagOpts...)
	if err != nil {
		return err
	}
	if err := f.Set(input); err != nil {
		return err
	}

	r := result{Action: action, Input: input, Kind: f.Action().Kind.String(), Value: f.String()}
	switch action {
	case "duration":
		secs := int64(dur / time.Second)
		r.Seconds = &secs
	case "date":
		r.Unix = unixOf(d.In(time.UTC))
	case "datetime":
		r.Unix = unixOf(dt.In(time.UTC))
	}
	if v != nil {
		r.Kind = v.Kind().String()
		if x, ok := v.(timeparse.DateTime); ok {
			r.Unix = unixOf(x.In(time.UTC))
		}
	}
	log.Debug().Str("action", action).Str("input", input).Str("value", r.Value).Msg("parsed")

	if opts.json {
		return json.NewEncoder(out).Encode(r)
	}
	_, err = fmt.Fprintln(out, r.Value)
	return err
}

type catalogEntry struct {
	Pattern string `json:"pattern"`
	Example string `json:"example"`
}

func runCatalog(out io.Writer, cfg *timeparse.Config, opts *options, kindName string) error {
	var kind timeparse.Kind
	switch kindName {
	case "time":
		kind = timeparse.KindTime
	case "date":
		kind = timeparse.KindDate
	case "datetime":
		kind = timeparse.KindDateTime
	default:
		return errors.Errorf("no catalog for %q", kindName)
	}
	cat, err := cfg.Catalog(kind)
	if err != nil {
		return err
	}

	clock := timeparse.Time{Hour: 23, Minute: 44, Second: 10, Nanosecond: 500000000}
	example := timeparse.Value(timeparse.Combine(cfg.Today(), clock))
	switch kind {
	case timeparse.KindTime:
		example = clock
	case timeparse.KindDate:
		example = cfg.Today()
	}

	entries := make([]catalogEntry, 0, cat.Len())
	for _, p := range cat.Patterns() {
		entries = append(entries, catalogEntry{Pattern: p.String(), Example: p.Format(example)})
	}
	if opts.json {
		return json.NewEncoder(out).Encode(entries)
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", e.Pattern, e.Example); err != nil {
			return err
		}
	}
	return nil
}

type actionEntry struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Append      bool   `json:"append"`
	Replacement string `json:"replacement,omitempty"`
}

func runActions(out io.Writer, opts *options) error {
	var entries []actionEntry
	for _, a := range timeparse.Actions() {
		entries = append(entries, actionEntry{
			Name:        a.Name,
			Kind:        a.Kind.String(),
			Append:      a.Append,
			Replacement: a.Replacement,
		})
	}
	if opts.json {
		return json.NewEncoder(out).Encode(entries)
	}
	for _, e := range entries {
		line := e.Name + "\t" + e.Kind
		if e.Append {
			line += "\tappend"
		}
		if e.Replacement != "" {
			line += "\tdeprecated, use " + e.Replacement
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
