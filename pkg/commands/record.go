// pkg/commands/record.go
// Copyright(c) 2022-2025 readback contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmp/readback/pkg/util"
)

///////////////////////////////////////////////////////////////////////////
// CommandArg

// CommandArg is a parsed, typed command argument. The concrete types below
// are the full set; the dispatcher switches over them.
type CommandArg interface {
	fmt.Stringer
	isCommandArg()
}

type Direction int

const (
	DirectionClosest Direction = iota // turn whichever way is shorter
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	return []string{"closest", "left", "right"}[d]
}

// HeadingArg is either an absolute heading to fly, possibly with a forced
// turn direction, or a number of degrees to turn relative to the current
// heading.
type HeadingArg struct {
	Heading   int // degrees, [1,360]; unset if Relative
	Direction Direction
	Degrees   int // relative turn amount
	Relative  bool
}

func (h HeadingArg) String() string {
	if h.Relative {
		return fmt.Sprintf("turn %s %d degrees", h.Direction, h.Degrees)
	} else if h.Direction != DirectionClosest {
		return fmt.Sprintf("%s heading %03d", h.Direction, h.Heading)
	}
	return fmt.Sprintf("heading %03d", h.Heading)
}

type AltitudeArg struct {
	Feet     int
	Expedite bool
}

func (a AltitudeArg) String() string {
	return fmt.Sprintf("%d feet", a.Feet) + util.Select(a.Expedite, ", expedite", "")
}

type SpeedArg struct {
	Knots int
}

func (s SpeedArg) String() string { return fmt.Sprintf("%d knots", s.Knots) }

type SquawkArg struct {
	Code string // four octal digits
}

func (s SquawkArg) String() string { return s.Code }

type FixArg struct {
	Fix string
}

func (f FixArg) String() string { return f.Fix }

// TextArg covers free-form arguments: procedure identifiers, runway names,
// system command arguments.
type TextArg struct {
	Text string
}

func (t TextArg) String() string { return t.Text }

// IntArg is a plain numeric argument (timewarp factor, sim rate).
type IntArg struct {
	Value int
}

func (i IntArg) String() string { return strconv.Itoa(i.Value) }

func (HeadingArg) isCommandArg()  {}
func (AltitudeArg) isCommandArg() {}
func (SpeedArg) isCommandArg()    {}
func (SquawkArg) isCommandArg()   {}
func (FixArg) isCommandArg()      {}
func (TextArg) isCommandArg()     {}
func (IntArg) isCommandArg()      {}

///////////////////////////////////////////////////////////////////////////
// CommandRecord

// CommandRecord is one command group from an input line: the canonical
// command plus its raw argument tokens, in the order they appeared.
// Parsed stays empty until validation of the entire line has succeeded.
type CommandRecord struct {
	Kind   CommandKind
	Args   []string
	Parsed []CommandArg
}

// Tuple returns the record in the form handed to the dispatcher: the
// canonical command name followed by its parsed arguments.
func (r *CommandRecord) Tuple() []any {
	t := []any{r.Kind.String()}
	for _, arg := range r.Parsed {
		t = append(t, arg)
	}
	return t
}

func (r *CommandRecord) String() string {
	s := r.Kind.String()
	if len(r.Args) > 0 {
		s += " " + strings.Join(r.Args, " ")
	}
	return s
}

///////////////////////////////////////////////////////////////////////////
// Per-command rules

// commandRule declares a command's argument grammar: the allowed arity and
// the validate/parse pair. validate only inspects the raw tokens; parse is
// called only after every record in the line has validated and must not
// fail on input that validate accepted.
type commandRule struct {
	minArgs, maxArgs int
	validate         func(args []string) error
	parse            func(args []string) []CommandArg
}

func (r *commandRule) check(args []string) error {
	if len(args) < r.minArgs || len(args) > r.maxArgs {
		if r.minArgs == r.maxArgs {
			return fmt.Errorf("expected %d argument%s, got %d", r.minArgs,
				util.Select(r.minArgs == 1, "", "s"), len(args))
		}
		return fmt.Errorf("expected %d to %d arguments, got %d", r.minArgs, r.maxArgs, len(args))
	}
	if r.validate != nil {
		return r.validate(args)
	}
	return nil
}

func noArgs() commandRule {
	return commandRule{
		parse: func([]string) []CommandArg { return nil },
	}
}

func fixArg() commandRule {
	return commandRule{
		minArgs: 1, maxArgs: 1,
		validate: func(args []string) error {
			if util.IsAllNumbers(args[0]) {
				return fmt.Errorf("%q: expected a fix name", args[0])
			}
			return nil
		},
		parse: func(args []string) []CommandArg {
			return []CommandArg{FixArg{Fix: args[0]}}
		},
	}
}

func textArg(min, max int) commandRule {
	return commandRule{
		minArgs: min, maxArgs: max,
		parse: func(args []string) []CommandArg {
			return util.MapSlice(args, func(s string) CommandArg { return TextArg{Text: s} })
		},
	}
}

func intArg(min, max int) commandRule {
	return commandRule{
		minArgs: min, maxArgs: max,
		validate: func(args []string) error {
			for _, a := range args {
				if _, err := strconv.Atoi(a); err != nil {
					return fmt.Errorf("%q: expected a number", a)
				}
			}
			return nil
		},
		parse: func(args []string) []CommandArg {
			return util.MapSlice(args, func(s string) CommandArg {
				v, _ := strconv.Atoi(s)
				return IntArg{Value: v}
			})
		},
	}
}

func validateHeading(args []string) error {
	hdg := args[0]
	if len(args) == 2 {
		if dir, ok := parseDirection(args[0]); !ok || dir == DirectionClosest {
			return fmt.Errorf("%q: expected turn direction \"l\" or \"r\"", args[0])
		}
		hdg = args[1]
	}

	if !util.IsAllNumbers(hdg) {
		return fmt.Errorf("%q: expected a heading", hdg)
	}
	if len(hdg) >= 3 {
		// Three or more digits is an absolute heading; leading zeros are
		// allowed ("0270" flies heading 270).
		if v, _ := strconv.Atoi(hdg); v < 1 || v > 360 {
			return fmt.Errorf("%q: heading must be between 001 and 360", hdg)
		}
	} else if len(args) == 1 {
		// Relative turns are only available when a direction is given.
		return fmt.Errorf("%q: expected a three-digit heading", hdg)
	}
	return nil
}

func parseHeading(args []string) []CommandArg {
	dir := DirectionClosest
	hdg := args[0]
	if len(args) == 2 {
		dir, _ = parseDirection(args[0])
		hdg = args[1]
	}

	v, _ := strconv.Atoi(hdg)
	if len(hdg) < 3 {
		// One or two digits with a direction: turn that many degrees.
		return []CommandArg{HeadingArg{Direction: dir, Degrees: v, Relative: true}}
	}
	return []CommandArg{HeadingArg{Heading: v, Direction: dir}}
}

func parseDirection(s string) (Direction, bool) {
	switch s {
	case "L", "LEFT":
		return DirectionLeft, true
	case "R", "RIGHT":
		return DirectionRight, true
	}
	return DirectionClosest, false
}

func validateAltitude(args []string) error {
	if !util.IsAllNumbers(args[0]) || len(args[0]) > 3 {
		return fmt.Errorf("%q: expected an altitude in hundreds of feet", args[0])
	}
	if len(args) == 2 {
		switch args[1] {
		case "X", "EX", "EXPEDITE":
		default:
			return fmt.Errorf("%q: expected \"x\" or \"expedite\"", args[1])
		}
	}
	return nil
}

func parseAltitude(args []string) []CommandArg {
	alt, _ := strconv.Atoi(args[0])
	return []CommandArg{AltitudeArg{Feet: 100 * alt, Expedite: len(args) == 2}}
}

func validateSpeed(args []string) error {
	if !util.IsAllNumbers(args[0]) {
		return fmt.Errorf("%q: expected a speed in knots", args[0])
	}
	return nil
}

func parseSpeed(args []string) []CommandArg {
	kts, _ := strconv.Atoi(args[0])
	return []CommandArg{SpeedArg{Knots: kts}}
}

func validateSquawk(args []string) error {
	code := args[0]
	if len(code) != 4 {
		return fmt.Errorf("%q: squawk codes are four digits", code)
	}
	for _, ch := range code {
		if ch < '0' || ch > '7' {
			return fmt.Errorf("%q: squawk digits must be between 0 and 7", code)
		}
	}
	return nil
}

func parseSquawk(args []string) []CommandArg {
	return []CommandArg{SquawkArg{Code: args[0]}}
}

var commandRules = map[CommandKind]commandRule{
	CommandAbort:       noArgs(),
	CommandSayAltitude: noArgs(),
	CommandSayHeading:  noArgs(),
	CommandSaySpeed:    noArgs(),
	CommandTakeoff:     noArgs(),

	CommandAltitude: commandRule{minArgs: 1, maxArgs: 2, validate: validateAltitude, parse: parseAltitude},
	CommandHeading:  commandRule{minArgs: 1, maxArgs: 2, validate: validateHeading, parse: parseHeading},
	CommandSpeed:    commandRule{minArgs: 1, maxArgs: 1, validate: validateSpeed, parse: parseSpeed},
	CommandSquawk:   commandRule{minArgs: 1, maxArgs: 1, validate: validateSquawk, parse: parseSquawk},

	CommandDirect: fixArg(),
	CommandHold:   fixArg(),

	CommandSID:  textArg(1, 1),
	CommandSTAR: textArg(1, 1),
	CommandLand: textArg(0, 1),
	CommandTaxi: textArg(0, 1),

	// System commands: at most one argument.
	CommandAirport:  textArg(0, 1),
	CommandAuto:     textArg(0, 0),
	CommandClear:    textArg(0, 0),
	CommandPause:    textArg(0, 0),
	CommandRate:     intArg(0, 1),
	CommandTimewarp: intArg(0, 1),
	CommandTutorial: textArg(0, 0),
}

///////////////////////////////////////////////////////////////////////////
// CommandError

// CommandError describes one validation failure for one command group.
type CommandError struct {
	Kind    CommandKind
	Args    []string
	Message string
}

func (e CommandError) Error() string {
	if e.Kind == CommandNone {
		return e.Message
	}
	return e.Kind.String() + ": " + e.Message
}

// CommandErrors aggregates every validation failure in an input line, in
// the order the offending command groups appeared; the interpreter
// collects all of them rather than stopping at the first so the operator
// sees every problem in one response.
type CommandErrors []CommandError

func (e CommandErrors) Error() string {
	return strings.Join(util.MapSlice(e, func(ce CommandError) string { return ce.Error() }), "; ")
}
