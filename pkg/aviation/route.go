// pkg/aviation/route.go
// Copyright(c) 2022-2025 readback contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mmp/readback/pkg/math"
	"github.com/mmp/readback/pkg/util"
)

///////////////////////////////////////////////////////////////////////////
// Waypoint

type Waypoint struct {
	Fix                 string               `json:"fix"`
	Location            math.Point2LL        // not provided in procedure JSON; derived from fix
	AltitudeRestriction *AltitudeRestriction `json:"altitude_restriction,omitempty"`
	SpeedRestriction    *SpeedRestriction    `json:"speed_restriction,omitempty"`

	// DistanceFromPrev and PrevFix are populated together by
	// WaypointArray.AnnotateDistances and are unset otherwise.
	DistanceFromPrev float32 `json:"distance,omitempty"` // nautical miles
	PrevFix          string  `json:"prev_fix,omitempty"`
}

func (wp Waypoint) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("fix", wp.Fix)}
	if wp.AltitudeRestriction != nil {
		attrs = append(attrs, slog.Any("altitude_restriction", wp.AltitudeRestriction))
	}
	if wp.SpeedRestriction != nil {
		attrs = append(attrs, slog.Any("speed_restriction", wp.SpeedRestriction))
	}
	if wp.PrevFix != "" {
		attrs = append(attrs, slog.String("prev_fix", wp.PrevFix),
			slog.Float64("distance", float64(wp.DistanceFromPrev)))
	}
	return slog.GroupValue(attrs...)
}

///////////////////////////////////////////////////////////////////////////
// WaypointArray

type WaypointArray []Waypoint

// UnmarshalJSON handles the fix-list encoding used in procedure JSON:
// each element is either a bare fix name or a two-element
// [name, restriction-code] array.
func (w *WaypointArray) UnmarshalJSON(b []byte) error {
	var entries []json.RawMessage
	if err := json.Unmarshal(b, &entries); err != nil {
		return err
	}

	var wps WaypointArray
	for _, entry := range entries {
		wp, err := parseFixEntry(entry)
		if err != nil {
			return err
		}
		wps = append(wps, wp)
	}
	*w = wps
	return nil
}

func parseFixEntry(b []byte) (Waypoint, error) {
	var fix string
	if err := json.Unmarshal(b, &fix); err == nil {
		if fix == "" {
			return Waypoint{}, fmt.Errorf("empty fix name in fix list")
		}
		return Waypoint{Fix: strings.ToUpper(fix)}, nil
	}

	var pair []string
	if err := json.Unmarshal(b, &pair); err != nil {
		return Waypoint{}, fmt.Errorf("%s: malformed fix list entry: %v", string(b), err)
	}
	if len(pair) != 2 || pair[0] == "" {
		return Waypoint{}, fmt.Errorf("%s: expected [fix, restriction] pair", string(b))
	}

	wp := Waypoint{Fix: strings.ToUpper(pair[0])}
	var err error
	if wp.AltitudeRestriction, wp.SpeedRestriction, err = ParseRestrictionCode(pair[1]); err != nil {
		return Waypoint{}, fmt.Errorf("%s: %v", pair[0], err)
	}
	return wp, nil
}

// Encode returns the compact single-line encoding of the waypoints, e.g.
// "MERIT/a8000+ GREKI/s250".
func (w WaypointArray) Encode() string {
	var entries []string
	for _, wp := range w {
		s := wp.Fix
		if wp.AltitudeRestriction != nil {
			s += "/a" + wp.AltitudeRestriction.Encoded()
		}
		if wp.SpeedRestriction != nil {
			s += "/s" + wp.SpeedRestriction.Encoded()
		}
		entries = append(entries, s)
	}
	return strings.Join(entries, " ")
}

// Locator resolves a fix name to its position; fix positions are owned by
// the airport database, not by procedures.
type Locator interface {
	Locate(fix string) (math.Point2LL, bool)
}

// InitializeLocations looks up the position of each waypoint by fix name.
// Unknown fixes are reported to the ErrorLogger (if non-nil) and left with
// a zero location.
func (w WaypointArray) InitializeLocations(loc Locator, e *util.ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	for i, wp := range w {
		if e != nil {
			e.Push("Fix " + wp.Fix)
		}
		if pos, ok := loc.Locate(wp.Fix); ok {
			w[i].Location = pos
		} else if e != nil {
			e.ErrorString("unable to locate waypoint")
		}
		if e != nil {
			e.Pop()
		}
	}
}

// AnnotateDistances fills in DistanceFromPrev and PrevFix for each
// waypoint, working in planar nautical-mile coordinates. The first
// waypoint is annotated against itself, giving a zero distance and its own
// name as predecessor; downstream consumers rely on that behavior.
func (w WaypointArray) AnnotateDistances(nmPerLongitude float32) {
	for i := range w {
		prev := &w[i]
		if i > 0 {
			prev = &w[i-1]
		}

		p0 := math.LL2NM(prev.Location, nmPerLongitude)
		p1 := math.LL2NM(w[i].Location, nmPerLongitude)
		w[i].DistanceFromPrev = math.Distance2f(p0, p1)
		w[i].PrevFix = prev.Fix
	}
}

///////////////////////////////////////////////////////////////////////////
// Restrictions

// AltitudeRestriction gives an altitude constraint attached to a fix.
type AltitudeRestriction struct {
	// We treat 0 as "unset", which works naturally for the bottom but
	// requires occasional care at the top.
	Range [2]float32
}

// Summary returns a human-readable summary of the altitude restriction.
func (a AltitudeRestriction) Summary() string {
	if a.Range[0] != 0 {
		if a.Range[1] == a.Range[0] {
			return fmt.Sprintf("at %s", FormatAltitude(a.Range[0]))
		} else if a.Range[1] != 0 {
			return fmt.Sprintf("between %s-%s", FormatAltitude(a.Range[0]), FormatAltitude(a.Range[1]))
		} else {
			return fmt.Sprintf("at or above %s", FormatAltitude(a.Range[0]))
		}
	} else if a.Range[1] != 0 {
		return fmt.Sprintf("at or below %s", FormatAltitude(a.Range[1]))
	} else {
		return ""
	}
}

// Encoded returns the restriction in the form in which it is specified in
// procedure files, e.g. "5000+" for "at or above 5000".
func (a AltitudeRestriction) Encoded() string {
	if a.Range[0] != 0 {
		if a.Range[0] == a.Range[1] {
			return fmt.Sprintf("%.0f", a.Range[0])
		} else if a.Range[1] != 0 {
			return fmt.Sprintf("%.0f-%.0f", a.Range[0], a.Range[1])
		} else {
			return fmt.Sprintf("%.0f+", a.Range[0])
		}
	} else if a.Range[1] != 0 {
		return fmt.Sprintf("%.0f-", a.Range[1])
	} else {
		return ""
	}
}

// SpeedRestriction gives a speed constraint attached to a fix, with the
// same unset-is-zero range conventions as AltitudeRestriction.
type SpeedRestriction struct {
	Range [2]float32
}

func (s SpeedRestriction) Summary() string {
	if s.Range[0] != 0 {
		if s.Range[1] == s.Range[0] {
			return fmt.Sprintf("at %.0f knots", s.Range[0])
		} else {
			return fmt.Sprintf("at or above %.0f knots", s.Range[0])
		}
	} else if s.Range[1] != 0 {
		return fmt.Sprintf("at or below %.0f knots", s.Range[1])
	} else {
		return ""
	}
}

func (s SpeedRestriction) Encoded() string {
	if s.Range[0] != 0 {
		if s.Range[0] == s.Range[1] {
			return fmt.Sprintf("%.0f", s.Range[0])
		}
		return fmt.Sprintf("%.0f+", s.Range[0])
	} else if s.Range[1] != 0 {
		return fmt.Sprintf("%.0f-", s.Range[1])
	}
	return ""
}

// ParseRestrictionCode parses a fix restriction code as given in procedure
// JSON: one or more "|"-separated parts, where each part is either
// "A<alt>" with the altitude in hundreds of feet or "S<kts>", optionally
// followed by "+" (at or above), "-" (at or below), or nothing (exactly).
func ParseRestrictionCode(code string) (*AltitudeRestriction, *SpeedRestriction, error) {
	var ar *AltitudeRestriction
	var sr *SpeedRestriction

	for _, part := range strings.Split(code, "|") {
		if len(part) < 2 {
			return nil, nil, fmt.Errorf("%q: malformed restriction", code)
		}

		num, suffix := part[1:], byte(0)
		if last := num[len(num)-1]; last == '+' || last == '-' {
			suffix = last
			num = num[:len(num)-1]
		}
		v, err := strconv.Atoi(num)
		if err != nil {
			return nil, nil, fmt.Errorf("%q: error parsing restriction value: %v", part, err)
		}

		makeRange := func(v float32) [2]float32 {
			switch suffix {
			case '+':
				return [2]float32{v, 0}
			case '-':
				return [2]float32{0, v}
			default:
				return [2]float32{v, v}
			}
		}

		switch part[0] {
		case 'A', 'a':
			if ar != nil {
				return nil, nil, fmt.Errorf("%q: multiple altitude restrictions", code)
			}
			ar = &AltitudeRestriction{Range: makeRange(float32(100 * v))} // given in 100s of feet
		case 'S', 's':
			if sr != nil {
				return nil, nil, fmt.Errorf("%q: multiple speed restrictions", code)
			}
			sr = &SpeedRestriction{Range: makeRange(float32(v))}
		default:
			return nil, nil, fmt.Errorf("%q: restriction must start with \"A\" or \"S\"", part)
		}
	}

	return ar, sr, nil
}

// FormatAltitude returns a string representation of an altitude in feet,
// giving flight levels above the transition altitude.
func FormatAltitude(falt float32) string {
	alt := int(falt)
	if alt >= 18000 {
		return "FL" + strconv.Itoa(alt/100)
	} else if alt < 1000 {
		return strconv.Itoa(alt)
	} else {
		th := alt / 1000
		hu := (alt % 1000) / 100 * 100
		if hu != 0 {
			return strconv.Itoa(th) + "," + fmt.Sprintf("%03d", hu)
		}
		return strconv.Itoa(th) + ",000"
	}
}
