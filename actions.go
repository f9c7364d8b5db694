package timeparse

import (
	om "github.com/wk8/go-ordered-map/v2"
)

// Action describes how a Flag converts and stores its arguments.
type Action struct {
	Name string
	Kind Kind
	// Append makes repeated occurrences of the flag accumulate.
	Append bool
	// Deprecated actions log a warning on use and behave like Replacement.
	Deprecated  bool
	Replacement string
}

var actions = om.New[string, Action]()

func init() {
	for _, kind := range []Kind{KindTime, KindDate, KindDateTime, KindDuration, KindTimeOrDateTime} {
		name := actionName(kind)
		register(Action{Name: name, Kind: kind})
		register(Action{Name: "append-" + name, Kind: kind, Append: true})
	}
	// A daytime is a time of day read on its own.
	register(Action{Name: "daytime", Kind: KindTime})
	register(Action{Name: "append-daytime", Kind: KindTime, Append: true})
	alias("timedelta", "duration")
	alias("date-time", "datetime")
	alias("datetime-or-time", "time-or-datetime")
	alias("append-datetime-or-time", "append-time-or-datetime")
}

func actionName(kind Kind) string {
	if kind == KindTimeOrDateTime {
		return "time-or-datetime"
	}
	return kind.String()
}

func register(a Action) {
	actions.Set(a.Name, a)
}

// alias registers a deprecated name for the action called target.
func alias(name, target string) {
	a, ok := actions.Get(target)
	if !ok {
		panic("timeparse: alias of unknown action " + target)
	}
	a.Name = name
	a.Deprecated = true
	a.Replacement = target
	register(a)
}

// LookupAction returns the action registered under name.
func LookupAction(name string) (Action, error) {
	a, ok := actions.Get(name)
	if !ok {
		return Action{}, &ConfigError{Setting: "action", Value: name, Reason: "no such action"}
	}
	return a, nil
}

// Actions returns every registered action in registration order, deprecated
// aliases last.
func Actions() []Action {
	out := make([]Action, 0, actions.Len())
	for pair := actions.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}
