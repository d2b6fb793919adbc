/*
Package parameters holds the user-adjustable settings for searching and
displaying markdown documents.

Parameters live in registers. Registers know about grouping: a parameter pushed
inside a group is visible until the group ends, then the outer value is in
effect again. This way a single command may override a setting without
disturbing the session-wide configuration.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package parameters

import (
	"strconv"
	"strings"

	"github.com/npillmayer/marktext/core"
	"github.com/npillmayer/schuko"
)

// SearchParameter is the type of the parameter keys.
type SearchParameter int

const (
	none SearchParameter = iota
	P_SEARCHLANGUAGE
	P_IGNORECASE
	P_IGNOREDIACRITICS
	P_WHOLEWORDS
	P_SUGGESTIONS
	P_STOPPER
)

var parameterNames = [P_STOPPER]string{
	"none",
	"P_SEARCHLANGUAGE",
	"P_IGNORECASE",
	"P_IGNOREDIACRITICS",
	"P_WHOLEWORDS",
	"P_SUGGESTIONS",
}

func (p SearchParameter) String() string {
	if p < 0 || p >= P_STOPPER {
		return "P_UNKNOWN"
	}
	return parameterNames[p]
}

// configuration keys for the parameters
var configKeys = map[SearchParameter]string{
	P_SEARCHLANGUAGE:   "search.language",
	P_IGNORECASE:       "search.ignorecase",
	P_IGNOREDIACRITICS: "search.diacritics",
	P_WHOLEWORDS:       "search.wholewords",
	P_SUGGESTIONS:      "search.suggestions",
}

// ParameterGroup holds the parameters pushed inside a group.
type ParameterGroup struct {
	params map[SearchParameter]interface{}
	level  int
	next   *ParameterGroup
}

// Registers is a set of parameters with group-scoped overrides.
type Registers struct {
	base       [P_STOPPER]interface{}
	groups     *ParameterGroup
	grouplevel int
}

// ----------------------------------------------------------------------

// NewRegisters creates registers holding default values.
func NewRegisters() *Registers {
	regs := &Registers{}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_SEARCHLANGUAGE] = "und"   // a BCP 47 tag
	p[P_IGNORECASE] = true        // a bool
	p[P_IGNOREDIACRITICS] = false // a bool
	p[P_WHOLEWORDS] = false       // a bool
	p[P_SUGGESTIONS] = 10         // max number of suggestions (int)
}

// FromConfiguration creates registers from defaults, overridden by every
// parameter set in conf.
func FromConfiguration(conf schuko.Configuration) *Registers {
	regs := NewRegisters()
	if conf == nil {
		return regs
	}
	for key, ckey := range configKeys {
		if !conf.IsSet(ckey) {
			continue
		}
		switch regs.base[key].(type) {
		case string:
			regs.base[key] = conf.GetString(ckey)
		case bool:
			regs.base[key] = conf.GetBool(ckey)
		case int:
			regs.base[key] = conf.GetInt(ckey)
		}
		tracer().Debugf("parameter %s set from configuration key %q", key, ckey)
	}
	return regs
}

// Begingroup starts a new group of parameter overrides.
func (regs *Registers) Begingroup() {
	regs.grouplevel++
}

// Endgroup drops all overrides pushed since the matching Begingroup.
func (regs *Registers) Endgroup() {
	if regs.grouplevel > 0 {
		if regs.groups != nil && regs.groups.level == regs.grouplevel {
			regs.groups = regs.groups.next
		}
		regs.grouplevel--
	}
}

// Push sets a parameter, scoped to the current group, if any.
func (regs *Registers) Push(key SearchParameter, value interface{}) {
	if regs.grouplevel > 0 {
		var g *ParameterGroup
		if regs.groups == nil || regs.groups.level < regs.grouplevel {
			g = &ParameterGroup{}
			g.params = make(map[SearchParameter]interface{})
			g.level = regs.grouplevel
			g.next = regs.groups
			regs.groups = g
		} else {
			g = regs.groups
		}
		g.params[key] = value
	} else {
		regs.base[key] = value
	}
}

// Get returns the value in effect for a parameter.
func (regs *Registers) Get(key SearchParameter) interface{} {
	if key <= 0 || key >= P_STOPPER {
		panic("parameter key outside range of search parameters")
	}
	var value interface{}
	if regs.grouplevel > 0 {
		for g := regs.groups; g != nil; g = g.next {
			value = g.params[key]
			if value != nil {
				break
			}
		}
	}
	if value == nil {
		value = regs.base[key]
	}
	return value
}

// S returns a string parameter.
func (regs *Registers) S(key SearchParameter) string {
	return regs.Get(key).(string)
}

// N returns an integer parameter.
func (regs *Registers) N(key SearchParameter) int {
	return regs.Get(key).(int)
}

// B returns a boolean parameter.
func (regs *Registers) B(key SearchParameter) bool {
	return regs.Get(key).(bool)
}

// Lookup finds a parameter key by its configuration name ("search.wholewords")
// or its short name ("wholewords").
func Lookup(name string) (SearchParameter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for key, ckey := range configKeys {
		if name == ckey || "search."+name == ckey {
			return key, nil
		}
	}
	return none, core.Error(core.EINVALID, "unknown parameter %q", name)
}

// Set parses value according to the type of the parameter and pushes it.
func (regs *Registers) Set(key SearchParameter, value string) error {
	if key <= 0 || key >= P_STOPPER {
		return core.Error(core.EINVALID, "parameter key %d out of range", key)
	}
	switch regs.base[key].(type) {
	case string:
		regs.Push(key, value)
	case bool:
		switch strings.ToLower(value) {
		case "true", "on", "yes", "1":
			regs.Push(key, true)
		case "false", "off", "no", "0":
			regs.Push(key, false)
		default:
			return core.Error(core.EINVALID, "%s expects a boolean, got %q", key, value)
		}
	case int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return core.WrapError(err, core.EINVALID, "%s expects a number, got %q", key, value)
		}
		regs.Push(key, n)
	}
	return nil
}
