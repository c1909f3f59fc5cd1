// pkg/aviation/route_test.go
// Copyright(c) 2022-2025 readback contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"encoding/json"
	"testing"

	"github.com/mmp/readback/pkg/math"
	"github.com/mmp/readback/pkg/util"
)

func TestParseRestrictionCode(t *testing.T) {
	type testcase struct {
		code string
		alt  [2]float32
		sp   [2]float32
	}
	for _, test := range []testcase{
		{code: "A110", alt: [2]float32{11000, 11000}},
		{code: "A50+", alt: [2]float32{5000, 0}},
		{code: "A80-", alt: [2]float32{0, 8000}},
		{code: "S250", sp: [2]float32{250, 250}},
		{code: "S230-", sp: [2]float32{0, 230}},
		{code: "A110+|S250-", alt: [2]float32{11000, 0}, sp: [2]float32{0, 250}},
		{code: "S280|A170", alt: [2]float32{17000, 17000}, sp: [2]float32{280, 280}},
	} {
		ar, sr, err := ParseRestrictionCode(test.code)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.code, err)
			continue
		}
		if test.alt != ([2]float32{}) {
			if ar == nil {
				t.Errorf("%s: no altitude restriction parsed", test.code)
			} else if ar.Range != test.alt {
				t.Errorf("%s: got altitude range %v, expected %v", test.code, ar.Range, test.alt)
			}
		} else if ar != nil {
			t.Errorf("%s: unexpected altitude restriction %v", test.code, ar)
		}
		if test.sp != ([2]float32{}) {
			if sr == nil {
				t.Errorf("%s: no speed restriction parsed", test.code)
			} else if sr.Range != test.sp {
				t.Errorf("%s: got speed range %v, expected %v", test.code, sr.Range, test.sp)
			}
		} else if sr != nil {
			t.Errorf("%s: unexpected speed restriction %v", test.code, sr)
		}
	}

	for _, code := range []string{"", "A", "S", "X100", "A100?", "A100|A200", "S250|S260", "A1x0"} {
		if _, _, err := ParseRestrictionCode(code); err == nil {
			t.Errorf("%q: expected error for invalid restriction code", code)
		}
	}
}

func TestWaypointArrayUnmarshal(t *testing.T) {
	var w WaypointArray
	if err := json.Unmarshal([]byte(`["merit", ["GREKI", "A110+"], "bayys"]`), &w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w) != 3 {
		t.Fatalf("got %d waypoints, expected 3", len(w))
	}
	if w[0].Fix != "MERIT" || w[2].Fix != "BAYYS" {
		t.Errorf("fix names not normalized: %v", w)
	}
	if w[1].AltitudeRestriction == nil || w[1].AltitudeRestriction.Range != ([2]float32{11000, 0}) {
		t.Errorf("GREKI restriction not parsed: %+v", w[1])
	}

	for _, bad := range []string{`[""]`, `[["GREKI"]]`, `[["GREKI", "Q100"]]`, `[17]`} {
		var w WaypointArray
		if err := json.Unmarshal([]byte(bad), &w); err == nil {
			t.Errorf("%s: expected unmarshal error", bad)
		}
	}
}

func TestAnnotateDistances(t *testing.T) {
	// Fixes on a common longitude, spaced half a degree of latitude
	// apart: exactly 30nm between successive waypoints in planar
	// coordinates.
	w := WaypointArray{
		Waypoint{Fix: "AAAAA", Location: math.Point2LL{-73, 40}},
		Waypoint{Fix: "BBBBB", Location: math.Point2LL{-73, 40.5}},
		Waypoint{Fix: "CCCCC", Location: math.Point2LL{-73, 41}},
	}
	w.AnnotateDistances(46)

	// The first waypoint is annotated against itself; zero distance and
	// its own name. This is load-bearing for downstream consumers, so
	// changing it to a "no predecessor" sentinel needs a migration, not
	// just an edit here.
	if w[0].DistanceFromPrev != 0 {
		t.Errorf("got leading distance %f, expected 0", w[0].DistanceFromPrev)
	}
	if w[0].PrevFix != "AAAAA" {
		t.Errorf("got leading prev fix %q, expected its own name", w[0].PrevFix)
	}

	for i := 1; i < len(w); i++ {
		if w[i].PrevFix != w[i-1].Fix {
			t.Errorf("waypoint %d: got prev fix %q, expected %q", i, w[i].PrevFix, w[i-1].Fix)
		}
		if d := w[i].DistanceFromPrev; math.Abs(d-30) > 0.01 {
			t.Errorf("waypoint %d: got distance %f, expected 30nm", i, d)
		}
	}
}

func TestInitializeLocations(t *testing.T) {
	fixes := fixMap{
		"MERIT": math.Point2LL{-73.1, 41.4},
		"GREKI": math.Point2LL{-72.9, 41.3},
	}

	w := WaypointArray{Waypoint{Fix: "MERIT"}, Waypoint{Fix: "GREKI"}}
	var e util.ErrorLogger
	w.InitializeLocations(fixes, &e)
	if e.HaveErrors() {
		t.Errorf("unexpected errors: %s", e.String())
	}
	if w[0].Location != fixes["MERIT"] || w[1].Location != fixes["GREKI"] {
		t.Errorf("locations not initialized: %+v", w)
	}

	w = WaypointArray{Waypoint{Fix: "NOPES"}}
	w.InitializeLocations(fixes, &e)
	if !e.HaveErrors() {
		t.Errorf("expected an error for an unknown fix")
	}
}

func TestWaypointArrayEncode(t *testing.T) {
	var w WaypointArray
	if err := json.Unmarshal([]byte(`[["MERIT", "A80+|S250"], "GREKI"]`), &w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc := w.Encode(); enc != "MERIT/a8000+/s250 GREKI" {
		t.Errorf("got encoding %q", enc)
	}
}

func TestFormatAltitude(t *testing.T) {
	type testcase struct {
		alt float32
		s   string
	}
	for _, test := range []testcase{
		{alt: 18000, s: "FL180"},
		{alt: 35000, s: "FL350"},
		{alt: 5500, s: "5,500"},
		{alt: 5000, s: "5,000"},
		{alt: 800, s: "800"},
	} {
		if s := FormatAltitude(test.alt); s != test.s {
			t.Errorf("FormatAltitude(%f) = %q; expected %q", test.alt, s, test.s)
		}
	}
}
