// pkg/aviation/procedure.go
// Copyright(c) 2022-2025 readback contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brunoga/deep"
	"github.com/iancoleman/orderedmap"
	"github.com/mmp/readback/pkg/util"
)

///////////////////////////////////////////////////////////////////////////
// RouteSegment

// RouteSegment is a named, ordered list of waypoints belonging to one
// branch of a procedure: a runway transition, an entry or exit transition,
// or the common body. Segments are not modified after construction.
type RouteSegment struct {
	Name      string
	Waypoints WaypointArray
}

///////////////////////////////////////////////////////////////////////////
// SegmentCollection

// SegmentCollection maps segment names (runway, entry, or exit
// identifiers) to their RouteSegments. Lookups are case-insensitive and
// enumeration follows the order the segments were given in the source
// JSON.
type SegmentCollection struct {
	Names    []string // source order, normalized to upper case
	Segments map[string]RouteSegment
}

// MakeSegmentCollection builds a collection from a segment-name → fix-list
// mapping, with names enumerated in the given order. It returns nil for
// missing or empty input so that callers can test whether a procedure has
// an entry/exit side at all without inspecting segment counts.
func MakeSegmentCollection(segs map[string]WaypointArray, order []string) *SegmentCollection {
	if len(segs) == 0 {
		return nil
	}

	sc := &SegmentCollection{Segments: make(map[string]RouteSegment)}
	if order == nil {
		order = util.SortedMapKeys(segs)
	}
	for _, name := range order {
		wps, ok := segs[name]
		if !ok || len(wps) == 0 {
			// Never keep a segment with an empty fix list.
			continue
		}
		n := strings.ToUpper(name)
		sc.Names = append(sc.Names, n)
		sc.Segments[n] = RouteSegment{Name: n, Waypoints: wps}
	}

	if len(sc.Segments) == 0 {
		return nil
	}
	return sc
}

// Get returns the segment with the given name, normalizing case.
func (sc *SegmentCollection) Get(name string) (RouteSegment, bool) {
	if sc == nil {
		return RouteSegment{}, false
	}
	seg, ok := sc.Segments[strings.ToUpper(name)]
	return seg, ok
}

// HasFixName reports whether any segment in the collection includes the
// given fix.
func (sc *SegmentCollection) HasFixName(fix string) bool {
	if sc == nil {
		return false
	}
	fix = strings.ToUpper(fix)
	return util.MapContains(sc.Segments, func(_ string, seg RouteSegment) bool {
		for _, wp := range seg.Waypoints {
			if wp.Fix == fix {
				return true
			}
		}
		return false
	})
}

// FixNames returns the names of all fixes across every segment, in
// source segment order, for UI enumeration.
func (sc *SegmentCollection) FixNames() []string {
	if sc == nil {
		return nil
	}
	var fixes []string
	seen := make(map[string]interface{})
	for _, name := range sc.Names {
		for _, wp := range sc.Segments[name].Waypoints {
			if _, ok := seen[wp.Fix]; !ok {
				seen[wp.Fix] = nil
				fixes = append(fixes, wp.Fix)
			}
		}
	}
	return fixes
}

///////////////////////////////////////////////////////////////////////////
// Procedure

type ProcedureType int

const (
	ProcedureUnknown ProcedureType = iota
	ProcedureSID
	ProcedureSTAR
)

func (t ProcedureType) String() string {
	return []string{"unknown", "SID", "STAR"}[t]
}

// Procedure is a published departure or arrival route: a common body plus
// entry and exit transitions. For a SID the entries are the runway
// transitions and the exits come from "exitPoints"; for a STAR the entries
// come from "entryPoints" and the exits are the runway transitions. Which
// of the two applies is decided once, at unmarshal time, from which of the
// source objects is present; all downstream code switches on Type rather
// than re-checking key presence.
type Procedure struct {
	Icao    string
	Name    string
	Type    ProcedureType
	Body    RouteSegment
	Entries *SegmentCollection // nil if the procedure has no entry side
	Exits   *SegmentCollection // nil if the procedure has no exit side
}

func (p *Procedure) UnmarshalJSON(b []byte) error {
	var pj struct {
		Icao        string                   `json:"icao"`
		Name        string                   `json:"name"`
		Rwy         map[string]WaypointArray `json:"rwy"`
		Body        WaypointArray            `json:"body"`
		EntryPoints map[string]WaypointArray `json:"entryPoints"`
		ExitPoints  map[string]WaypointArray `json:"exitPoints"`
	}
	if err := json.Unmarshal(b, &pj); err != nil {
		return err
	}

	p.Icao = strings.ToUpper(pj.Icao)
	p.Name = pj.Name
	p.Body = RouteSegment{Name: "body", Waypoints: pj.Body}

	if pj.EntryPoints != nil && pj.ExitPoints != nil {
		return fmt.Errorf("%s: procedure gives both \"entryPoints\" and \"exitPoints\"", p.Icao)
	}

	rwyOrder := segmentKeyOrder(b, "rwy")
	switch {
	case pj.ExitPoints != nil:
		p.Type = ProcedureSID
		p.Entries = MakeSegmentCollection(pj.Rwy, rwyOrder)
		p.Exits = MakeSegmentCollection(pj.ExitPoints, segmentKeyOrder(b, "exitPoints"))
	case pj.EntryPoints != nil:
		p.Type = ProcedureSTAR
		p.Entries = MakeSegmentCollection(pj.EntryPoints, segmentKeyOrder(b, "entryPoints"))
		p.Exits = MakeSegmentCollection(pj.Rwy, rwyOrder)
	default:
		// Neither side present; both collections stay nil.
		p.Type = ProcedureUnknown
	}

	return nil
}

// segmentKeyOrder returns the key order of the named object in the
// procedure JSON; encoding/json gives us unordered maps, so re-parse with
// an order-preserving map to keep enumeration in declaration order.
func segmentKeyOrder(b []byte, key string) []string {
	om := orderedmap.New()
	if err := json.Unmarshal(b, om); err != nil {
		return nil
	}
	v, ok := om.Get(key)
	if !ok {
		return nil
	}
	if m, ok := v.(orderedmap.OrderedMap); ok {
		return m.Keys()
	}
	return nil
}

// Route returns the ordered concatenation of the fixes from the matching
// entry segment, the body, and the matching exit segment. A side that is
// absent, or an entry/exit name that is empty or doesn't match, simply
// contributes no fixes; that is how callers probe procedure shape without
// error handling. The returned waypoints are a deep copy, so annotating
// them never touches the stored segments.
func (p *Procedure) Route(entry, exit string) WaypointArray {
	var wps WaypointArray
	if seg, ok := p.Entries.Get(entry); ok {
		wps = append(wps, seg.Waypoints...)
	}
	wps = append(wps, p.Body.Waypoints...)
	if seg, ok := p.Exits.Get(exit); ok {
		wps = append(wps, seg.Waypoints...)
	}
	return deep.MustCopy(wps)
}

// HasFixName reports whether the fix appears in the entry or exit
// collections. Note that the body segment is not consulted; callers that
// need body fixes should use the resolved route.
func (p *Procedure) HasFixName(fix string) bool {
	return p.Entries.HasFixName(fix) || p.Exits.HasFixName(fix)
}

// EntryNames returns the entry segment names in source order.
func (p *Procedure) EntryNames() []string {
	if p.Entries == nil {
		return nil
	}
	return p.Entries.Names
}

// ExitNames returns the exit segment names in source order.
func (p *Procedure) ExitNames() []string {
	if p.Exits == nil {
		return nil
	}
	return p.Exits.Names
}

// Reset clears all fields for disposal or reuse.
func (p *Procedure) Reset() {
	*p = Procedure{}
}

// Check validates that every fix named by the procedure can be located.
func (p *Procedure) Check(loc Locator, e *util.ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	check := func(wps WaypointArray) {
		for _, wp := range wps {
			if _, ok := loc.Locate(wp.Fix); !ok {
				e.ErrorString("fix %s not found in fix database", wp.Fix)
			}
		}
	}

	check(p.Body.Waypoints)
	for _, sc := range []*SegmentCollection{p.Entries, p.Exits} {
		if sc == nil {
			continue
		}
		for _, name := range sc.Names {
			e.Push(name)
			check(sc.Segments[name].Waypoints)
			e.Pop()
		}
	}
}

// initializeLocations resolves fix positions for the body and all entry
// and exit segments.
func (p *Procedure) initializeLocations(loc Locator, e *util.ErrorLogger) {
	p.Body.Waypoints.InitializeLocations(loc, e)
	for _, sc := range []*SegmentCollection{p.Entries, p.Exits} {
		if sc == nil {
			continue
		}
		for _, name := range sc.Names {
			sc.Segments[name].Waypoints.InitializeLocations(loc, e)
		}
	}
}
