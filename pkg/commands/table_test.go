// pkg/commands/table_test.go
// Copyright(c) 2022-2025 readback contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package commands

import "testing"

func TestCommandTablePartition(t *testing.T) {
	for alias, kind := range systemAliases {
		if !kind.IsSystem() {
			t.Errorf("%s: system alias resolves to non-system command %s", alias, kind)
		}
		if kind.IsTransmit() {
			t.Errorf("%s: command %s is both system and transmit", alias, kind)
		}
	}
	for alias, kind := range transmitAliases {
		if !kind.IsTransmit() {
			t.Errorf("%s: transmit alias resolves to non-transmit command %s", alias, kind)
		}
		if kind.IsSystem() {
			t.Errorf("%s: command %s is both system and transmit", alias, kind)
		}
	}
}

func TestCommandTableLookup(t *testing.T) {
	type testcase struct {
		alias string
		kind  CommandKind
	}
	for _, test := range []testcase{
		{alias: "FH", kind: CommandHeading},
		{alias: "TURN", kind: CommandHeading},
		{alias: "D", kind: CommandAltitude},
		{alias: "CLIMB", kind: CommandAltitude},
		{alias: "SP", kind: CommandSpeed},
		{alias: "SQ", kind: CommandSquawk},
		{alias: "PD", kind: CommandDirect},
	} {
		if kind, ok := ResolveTransmitAlias(test.alias); !ok || kind != test.kind {
			t.Errorf("%s: resolved to %s, expected %s", test.alias, kind, test.kind)
		}
	}

	if _, ok := ResolveTransmitAlias("TIMEWARP"); ok {
		t.Errorf("system alias resolved through the transmit subset")
	}
	if _, ok := ResolveSystemAlias("FH"); ok {
		t.Errorf("transmit alias resolved through the system subset")
	}
	if _, ok := ResolveTransmitAlias("BOGUS"); ok {
		t.Errorf("unknown token resolved to a command")
	}
}

func TestCommandRulesComplete(t *testing.T) {
	// Every alias target must have a validation rule.
	for alias, kind := range systemAliases {
		if _, ok := commandRules[kind]; !ok {
			t.Errorf("%s: no rule for command %s", alias, kind)
		}
	}
	for alias, kind := range transmitAliases {
		if _, ok := commandRules[kind]; !ok {
			t.Errorf("%s: no rule for command %s", alias, kind)
		}
	}
}

func TestDecodeArrow(t *testing.T) {
	if dir, ok := decodeArrow(UnicodeArrowLeft); !ok || dir != "L" {
		t.Errorf("left arrow decoded to %q", dir)
	}
	if dir, ok := decodeArrow(UnicodeArrowRight); !ok || dir != "R" {
		t.Errorf("right arrow decoded to %q", dir)
	}
	if _, ok := decodeArrow("FH"); ok {
		t.Errorf("textual alias decoded as an arrow")
	}
}
