// pkg/commands/interpreter.go
// Copyright(c) 2022-2025 readback contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package commands

import (
	"strings"
)

///////////////////////////////////////////////////////////////////////////
// Interpreter

type CommandType int

const (
	SystemCommand CommandType = iota
	TransmitCommand
)

func (t CommandType) String() string {
	return []string{"system", "transmit"}[t]
}

// ParsedInput is the result of interpreting one operator input line: an
// in-order list of validated, parsed command records, plus the aircraft
// callsign for transmit input.
type ParsedInput struct {
	Type     CommandType
	Callsign string // transmit only
	Records  []CommandRecord
}

// Interpret tokenizes one raw instruction line, groups the tokens into
// command records, validates every record, and parses the arguments to
// typed values. It returns either a fully parsed input or the complete
// ordered list of validation errors as a CommandErrors; no partially
// parsed result is ever returned.
func Interpret(input string) (*ParsedInput, error) {
	tokens := strings.Fields(strings.ToUpper(input))
	if len(tokens) == 0 {
		return nil, CommandErrors{{Message: "no command found"}}
	}

	// A leading transmit sentinel forces transmit interpretation; the
	// token after it is the callsign even if its text matches a system
	// command alias.
	if tokens[0] == TransmitSentinel {
		if len(tokens) == 1 {
			return nil, CommandErrors{{Message: "no aircraft specified"}}
		}
		return interpretTransmit(tokens[1], tokens[2:])
	}

	if kind, ok := ResolveSystemAlias(tokens[0]); ok {
		return interpretSystem(kind, tokens)
	}

	return interpretTransmit(tokens[0], tokens[1:])
}

// interpretSystem builds the single record for a system command line. Only
// the token immediately following the command is taken as its argument;
// anything after that is not consulted.
func interpretSystem(kind CommandKind, tokens []string) (*ParsedInput, error) {
	rec := CommandRecord{Kind: kind}
	if len(tokens) > 1 {
		rec.Args = tokens[1:2]
	}

	input := &ParsedInput{Type: SystemCommand, Records: []CommandRecord{rec}}
	if errs := input.validateAndParse(); errs != nil {
		return nil, errs
	}
	return input, nil
}

// interpretTransmit folds over the tokens after the callsign: a token that
// resolves to a transmit alias (or decodes as an arrow) opens a new
// record, and any other token is appended as a raw argument to the
// currently open record. The first token is required to resolve; input
// where it does not is rejected with a "no command found" error.
func interpretTransmit(callsign string, tokens []string) (*ParsedInput, error) {
	var records []CommandRecord

	for _, token := range tokens {
		if dir, ok := decodeArrow(token); ok {
			// The arrow both selects the heading command and fixes the
			// turn direction.
			records = append(records, CommandRecord{Kind: CommandHeading, Args: []string{dir}})
		} else if kind, ok := ResolveTransmitAlias(token); ok {
			records = append(records, CommandRecord{Kind: kind})
		} else if len(records) == 0 {
			return nil, CommandErrors{{Message: "no command found: " + strings.ToLower(token)}}
		} else {
			rec := &records[len(records)-1]
			rec.Args = append(rec.Args, token)
		}
	}

	if len(records) == 0 {
		return nil, CommandErrors{{Message: "no command found"}}
	}

	input := &ParsedInput{Type: TransmitCommand, Callsign: callsign, Records: records}
	if errs := input.validateAndParse(); errs != nil {
		return nil, errs
	}
	return input, nil
}

// validateAndParse checks every record against its command's rule,
// accumulating all failures; only if the entire line validates are the
// records' arguments parsed to typed values.
func (p *ParsedInput) validateAndParse() CommandErrors {
	var errs CommandErrors
	for i := range p.Records {
		rec := &p.Records[i]
		rule, ok := commandRules[rec.Kind]
		if !ok {
			errs = append(errs, CommandError{Kind: rec.Kind, Args: rec.Args, Message: "no rule for command"})
			continue
		}
		if err := rule.check(rec.Args); err != nil {
			errs = append(errs, CommandError{Kind: rec.Kind, Args: rec.Args, Message: err.Error()})
		}
	}
	if errs != nil {
		return errs
	}

	for i := range p.Records {
		rec := &p.Records[i]
		rec.Parsed = commandRules[rec.Kind].parse(rec.Args)
	}
	return nil
}
