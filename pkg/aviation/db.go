// pkg/aviation/db.go
// Copyright(c) 2022-2025 readback contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brunoga/deep"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/klauspost/compress/zstd"
	"github.com/mmp/readback/pkg/log"
	"github.com/mmp/readback/pkg/math"
	"github.com/mmp/readback/pkg/util"
)

///////////////////////////////////////////////////////////////////////////
// Airport

// Airport holds everything loaded from one airport definition file: the
// fix database and the published SID and STAR procedures. It is loaded
// once at startup and read-only thereafter.
type Airport struct {
	Icao              string                   `json:"icao"`
	Name              string                   `json:"name"`
	MagneticVariation float32                  `json:"magnetic_variation"`
	NmPerLongitude    float32                  `json:"nm_per_longitude"`
	Fixes             map[string]math.Point2LL `json:"fixes"`
	SIDs              map[string]*Procedure    `json:"sids"`
	STARs             map[string]*Procedure    `json:"stars"`
}

// Locate returns the position of the named fix.
func (ap *Airport) Locate(fix string) (math.Point2LL, bool) {
	p, ok := ap.Fixes[strings.ToUpper(fix)]
	return p, ok
}

// Procedure returns the SID or STAR with the given identifier.
func (ap *Airport) Procedure(id string) (*Procedure, bool) {
	id = strings.ToUpper(id)
	if p, ok := ap.SIDs[id]; ok {
		return p, true
	}
	p, ok := ap.STARs[id]
	return p, ok
}

func (ap *Airport) postDeserialize(e *util.ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	if ap.NmPerLongitude == 0 {
		// Derive from the latitude of the first fix we find; cos(latitude)
		// scaling is plenty accurate at terminal-area scales.
		for _, p := range ap.Fixes {
			ap.NmPerLongitude = math.NMPerLatitude * math.Cos(math.Radians(p.Latitude()))
			break
		}
	}

	// Normalize fix names and procedure identifiers to upper case.
	fixes := make(map[string]math.Point2LL)
	for name, p := range ap.Fixes {
		fixes[strings.ToUpper(name)] = p
	}
	ap.Fixes = fixes
	for _, procs := range []map[string]*Procedure{ap.SIDs, ap.STARs} {
		for id, proc := range procs {
			if up := strings.ToUpper(id); up != id {
				procs[up] = proc
				delete(procs, id)
			}
		}
	}

	for id, proc := range ap.SIDs {
		e.Push("SID " + id)
		if proc.Type == ProcedureSTAR {
			e.ErrorString("procedure gives \"entryPoints\"; SIDs take \"exitPoints\"")
		}
		proc.Check(ap, e)
		proc.initializeLocations(ap, e)
		e.Pop()
	}
	for id, proc := range ap.STARs {
		e.Push("STAR " + id)
		if proc.Type == ProcedureSID {
			e.ErrorString("procedure gives \"exitPoints\"; STARs take \"entryPoints\"")
		}
		proc.Check(ap, e)
		proc.initializeLocations(ap, e)
		e.Pop()
	}
}

// airportCacheEntry records the source path along with the parsed airport;
// cache filenames are derived from the source's base name, so two files
// with the same base name in different directories land in the same cache
// slot and the stored path is what tells them apart.
type airportCacheEntry struct {
	SourcePath string
	Airport    Airport
}

// LoadAirport reads an airport definition from the given JSON file, which
// may optionally be zstd-compressed (".zst" suffix). Parsed results are
// cached on disk so that repeated startups skip JSON decoding when the
// source file hasn't changed.
func LoadAirport(path string, lg *log.Logger) (*Airport, error) {
	cachePath := filepath.Base(path) + ".msgpack"
	srcPath, err := filepath.Abs(path)
	if err != nil {
		srcPath = path
	}

	if fi, err := os.Stat(path); err == nil {
		var entry airportCacheEntry
		if wt, err := util.CacheRetrieveObject(cachePath, &entry); err == nil &&
			entry.SourcePath == srcPath && wt.After(fi.ModTime()) {
			lg.Infof("%s: loaded airport from cache", path)
			return &entry.Airport, nil
		}
	}

	start := time.Now()
	b, err := readPossiblyCompressed(path)
	if err != nil {
		return nil, err
	}

	var ap Airport
	if err := json.Unmarshal(b, &ap); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var e util.ErrorLogger
	e.Push(filepath.Base(path))
	ap.postDeserialize(&e)
	e.Pop()
	if e.HaveErrors() {
		e.PrintErrors(lg)
		return nil, fmt.Errorf("%s: errors validating airport definition", path)
	}

	lg.Info("loaded airport", "icao", ap.Icao, "elapsed", time.Since(start))

	if err := util.CacheStoreObject(cachePath, airportCacheEntry{SourcePath: srcPath, Airport: ap}); err != nil {
		// The cache is just an optimization; carry on without it.
		lg.Warnf("%s: unable to cache airport: %v", cachePath, err)
	}

	return &ap, nil
}

func readPossiblyCompressed(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}
	return io.ReadAll(r)
}

///////////////////////////////////////////////////////////////////////////
// RouteCache

type routeCacheKey struct {
	procedure, entry, exit string
}

// RouteCache memoizes resolved, distance-annotated waypoint sequences for
// (procedure, entry, exit) triples. Resolution is deterministic for an
// unmodified Airport, so cached entries never go stale; the TTL just
// bounds memory held for scenarios that are no longer being requested.
type RouteCache struct {
	ap  *Airport
	lru *expirable.LRU[routeCacheKey, WaypointArray]
}

func NewRouteCache(ap *Airport) *RouteCache {
	return &RouteCache{
		ap:  ap,
		lru: expirable.NewLRU[routeCacheKey, WaypointArray](64, nil, 15*time.Minute),
	}
}

// Route resolves the named procedure for the given entry/exit pair and
// annotates the result with distances and predecessor fixes (the pre-spawn
// pass). The returned waypoints are the caller's to mutate.
func (rc *RouteCache) Route(procedure, entry, exit string) (WaypointArray, error) {
	key := routeCacheKey{strings.ToUpper(procedure), strings.ToUpper(entry), strings.ToUpper(exit)}
	if wps, ok := rc.lru.Get(key); ok {
		return deep.MustCopy(wps), nil
	}

	proc, ok := rc.ap.Procedure(procedure)
	if !ok {
		return nil, fmt.Errorf("%s: unknown procedure", procedure)
	}

	wps := proc.Route(entry, exit)
	wps.AnnotateDistances(rc.ap.NmPerLongitude)

	rc.lru.Add(key, wps)
	return deep.MustCopy(wps), nil
}
