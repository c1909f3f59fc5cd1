// pkg/commands/table.go
// Copyright(c) 2022-2025 readback contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package commands

///////////////////////////////////////////////////////////////////////////
// CommandKind

// CommandKind enumerates the canonical commands; every alias in operator
// input resolves to exactly one of these.
type CommandKind int

const (
	CommandNone CommandKind = iota

	// System commands: directed at the application, one optional argument.
	CommandAirport
	CommandAuto
	CommandClear
	CommandPause
	CommandRate
	CommandTimewarp
	CommandTutorial

	// Transmit commands: directed at an aircraft, variable arity.
	CommandAbort
	CommandAltitude
	CommandDirect
	CommandHeading
	CommandHold
	CommandLand
	CommandSayAltitude
	CommandSayHeading
	CommandSaySpeed
	CommandSID
	CommandSpeed
	CommandSquawk
	CommandSTAR
	CommandTakeoff
	CommandTaxi
)

func (k CommandKind) String() string {
	return [...]string{"none",
		"airport", "auto", "clear", "pause", "rate", "timewarp", "tutorial",
		"abort", "altitude", "direct", "heading", "hold", "land",
		"sayAltitude", "sayHeading", "saySpeed", "sid", "speed", "squawk",
		"star", "takeoff", "taxi"}[k]
}

// IsSystem reports whether the command is directed at the application
// rather than an aircraft.
func (k CommandKind) IsSystem() bool {
	return k >= CommandAirport && k <= CommandTutorial
}

// IsTransmit reports whether the command is directed at an aircraft.
func (k CommandKind) IsTransmit() bool {
	return k >= CommandAbort && k <= CommandTaxi
}

// TransmitSentinel is the reserved leading token that forces the rest of
// the line to be interpreted as a transmit command, even if the following
// token's text collides with a system command alias.
const TransmitSentinel = "TRANSMIT"

// The reserved arrow tokens inserted by the arrow keys; each decodes to a
// turn direction and starts a heading command.
const (
	UnicodeArrowLeft  = "⮢"
	UnicodeArrowRight = "⮣"
)

// decodeArrow maps the reserved arrow tokens to their directional string.
func decodeArrow(token string) (string, bool) {
	switch token {
	case UnicodeArrowLeft:
		return "L", true
	case UnicodeArrowRight:
		return "R", true
	}
	return "", false
}

var systemAliases = map[string]CommandKind{
	"AIRPORT":  CommandAirport,
	"AUTO":     CommandAuto,
	"CLEAR":    CommandClear,
	"PAUSE":    CommandPause,
	"RATE":     CommandRate,
	"TIMEWARP": CommandTimewarp,
	"TUTORIAL": CommandTutorial,
}

var transmitAliases = map[string]CommandKind{
	"ABORT": CommandAbort,

	"A":        CommandAltitude,
	"ALTITUDE": CommandAltitude,
	"C":        CommandAltitude,
	"CLIMB":    CommandAltitude,
	"D":        CommandAltitude,
	"DESCEND":  CommandAltitude,

	"DCT":    CommandDirect,
	"DIRECT": CommandDirect,
	"PD":     CommandDirect,

	"FH":      CommandHeading,
	"H":       CommandHeading,
	"HEADING": CommandHeading,
	"T":       CommandHeading,
	"TURN":    CommandHeading,

	"HOLD": CommandHold,

	"I":    CommandLand,
	"ILS":  CommandLand,
	"LAND": CommandLand,

	"SA": CommandSayAltitude,
	"SH": CommandSayHeading,
	"SS": CommandSaySpeed,

	"SID": CommandSID,

	"SLOW":  CommandSpeed,
	"SP":    CommandSpeed,
	"SPEED": CommandSpeed,

	"SQ":     CommandSquawk,
	"SQUAWK": CommandSquawk,

	"STAR": CommandSTAR,

	"CTO":     CommandTakeoff,
	"TAKEOFF": CommandTakeoff,
	"TO":      CommandTakeoff,

	"TAXI": CommandTaxi,
	"W":    CommandTaxi,
	"WAIT": CommandTaxi,
}

// ResolveSystemAlias resolves a token against the system command subset.
func ResolveSystemAlias(token string) (CommandKind, bool) {
	k, ok := systemAliases[token]
	return k, ok
}

// ResolveTransmitAlias resolves a token against the transmit command
// subset. Unrecognized tokens simply fail the lookup; that is not a table
// error, since in transmit input they are arguments to the open command.
func ResolveTransmitAlias(token string) (CommandKind, bool) {
	k, ok := transmitAliases[token]
	return k, ok
}
