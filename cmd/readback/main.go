// cmd/readback/main.go
// Copyright(c) 2022-2025 readback contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// readback interprets free-text ATC instructions into structured commands
// and resolves published SID/STAR procedures into distance-annotated
// waypoint sequences.
//
// With -proc, it resolves the named procedure for the given entry/exit
// pair, prints the route, and exits. Otherwise it reads instruction lines
// from stdin and prints the interpreted commands.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mmp/readback/pkg/aviation"
	"github.com/mmp/readback/pkg/commands"
	"github.com/mmp/readback/pkg/log"
	"github.com/mmp/readback/pkg/util"
)

var (
	airportFile = flag.String("airport", "", "airport definition file (.json, optionally .zst compressed)")
	procId      = flag.String("proc", "", "resolve this SID/STAR instead of reading commands")
	entryName   = flag.String("entry", "", "entry (or runway, for a SID) name for -proc")
	exitName    = flag.String("exit", "", "exit (or runway, for a STAR) name for -proc")
	logLevel    = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir      = flag.String("logdir", "", "directory for log files")
)

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)

	var ap *aviation.Airport
	if *airportFile != "" {
		var err error
		if ap, err = aviation.LoadAirport(*airportFile, lg); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", *airportFile, err)
			os.Exit(1)
		}
	}

	if *procId != "" {
		if ap == nil {
			fmt.Fprintln(os.Stderr, "-proc requires -airport")
			os.Exit(1)
		}
		if err := printRoute(ap, *procId, *entryName, *exitName); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	interpretLines(ap, lg)
}

func printRoute(ap *aviation.Airport, proc, entry, exit string) error {
	rc := aviation.NewRouteCache(ap)
	wps, err := rc.Route(proc, entry, exit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "FIX\tRESTRICTION\tFROM\tDIST (NM)")
	for _, wp := range wps {
		var restr []string
		if wp.AltitudeRestriction != nil {
			restr = append(restr, wp.AltitudeRestriction.Summary())
		}
		if wp.SpeedRestriction != nil {
			restr = append(restr, wp.SpeedRestriction.Summary())
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\n", wp.Fix, strings.Join(restr, ", "),
			wp.PrevFix, wp.DistanceFromPrev)
	}
	return w.Flush()
}

func interpretLines(ap *aviation.Airport, lg *log.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			if input, err := commands.Interpret(line); err != nil {
				// All of the line's validation errors come back at once.
				var errs commands.CommandErrors
				if errors.As(err, &errs) {
					for _, e := range errs {
						fmt.Println("error:", e)
					}
				} else {
					fmt.Println("error:", err)
				}
			} else {
				printInput(ap, input)
				lg.Debug("interpreted", "input", line, "records", len(input.Records))
			}
		}
		fmt.Print("> ")
	}
}

func printInput(ap *aviation.Airport, input *commands.ParsedInput) {
	if input.Type == commands.SystemCommand {
		rec := input.Records[0]
		fmt.Printf("%s: %s\n", input.Type, rec.String())
		return
	}

	for _, rec := range input.Records {
		args := util.MapSlice(rec.Parsed, func(a commands.CommandArg) string { return a.String() })
		fmt.Printf("%s: %s %s\n", input.Callsign, rec.Kind, strings.Join(args, ", "))

		// For procedure assignments, show what the airport publishes.
		if ap == nil || (rec.Kind != commands.CommandSID && rec.Kind != commands.CommandSTAR) {
			continue
		}
		if proc, ok := ap.Procedure(rec.Args[0]); ok {
			fmt.Printf("  %s %s: entries %s, exits %s\n", proc.Type, proc.Icao,
				strings.Join(proc.EntryNames(), " "), strings.Join(proc.ExitNames(), " "))
		} else {
			fmt.Printf("  %s: no such procedure here\n", rec.Args[0])
		}
	}
}
