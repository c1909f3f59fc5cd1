// pkg/util/util_test.go
// Copyright(c) 2022-2025 readback contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"strings"
	"testing"
)

func TestErrorLogger(t *testing.T) {
	var e ErrorLogger
	if e.HaveErrors() {
		t.Errorf("fresh ErrorLogger reports errors")
	}

	e.Push("airport KJFK")
	e.Push("SID COATE2")
	e.ErrorString("fix %s not found", "ZZZZZ")
	e.Pop()
	e.ErrorString("no runways given")
	e.Pop()

	if !e.HaveErrors() {
		t.Fatalf("expected errors to be recorded")
	}
	errs := strings.Split(e.String(), "\n")
	if len(errs) != 2 {
		t.Fatalf("got %d errors, expected 2", len(errs))
	}
	if errs[0] != "airport KJFK / SID COATE2: fix ZZZZZ not found" {
		t.Errorf("got error %q with wrong hierarchy", errs[0])
	}
	if errs[1] != "airport KJFK: no runways given" {
		t.Errorf("got error %q with wrong hierarchy", errs[1])
	}
}

func TestSelect(t *testing.T) {
	if v := Select(true, 1, 2); v != 1 {
		t.Errorf("Select true gave %d", v)
	}
	if v := Select(false, "a", "b"); v != "b" {
		t.Errorf("Select false gave %q", v)
	}
}

func TestMapSlice(t *testing.T) {
	a := []int{1, 2, 3, 4}
	b := MapSlice(a, func(i int) float32 { return 2 * float32(i) })
	if len(a) != len(b) {
		t.Errorf("lengths mismatch: %d vs %d", len(a), len(b))
	}
	for i := range b {
		if b[i] != 2*float32(a[i]) {
			t.Errorf("%d: got %f, expected %f", i, b[i], 2*float32(a[i]))
		}
	}
}

func TestFilterSlice(t *testing.T) {
	a := []int{1, 2, 3, 4, 5}
	b := FilterSlice(a, func(i int) bool { return i%2 == 0 })
	if len(b) != 2 || b[0] != 2 || b[1] != 4 {
		t.Errorf("got %v, expected [2 4]", b)
	}
}

func TestReduceSlice(t *testing.T) {
	v := []int{1, -2, 3, 4}
	if sum := ReduceSlice(v, func(v int, r int) int { return v + r }, 10); sum != 16 {
		t.Errorf("got sum %d, expected 16", sum)
	}
}

func TestSortedMapKeys(t *testing.T) {
	m := map[string]int{"banana": 1, "apple": 2, "cherry": 3}
	k := SortedMapKeys(m)
	if len(k) != 3 || k[0] != "apple" || k[1] != "banana" || k[2] != "cherry" {
		t.Errorf("got keys %v", k)
	}
}

func TestMapContains(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}
	if !MapContains(m, func(k string, v int) bool { return v == 2 }) {
		t.Errorf("expected to find value 2")
	}
	if MapContains(m, func(k string, v int) bool { return k == "z" }) {
		t.Errorf("unexpectedly found key z")
	}
}

func TestIsAllNumbers(t *testing.T) {
	type testcase struct {
		s  string
		ok bool
	}
	for _, test := range []testcase{
		{s: "0270", ok: true},
		{s: "42", ok: true},
		{s: "", ok: false},
		{s: "27L", ok: false},
		{s: "-5", ok: false},
	} {
		if got := IsAllNumbers(test.s); got != test.ok {
			t.Errorf("IsAllNumbers(%q) = %v; expected %v", test.s, got, test.ok)
		}
	}
}

func TestCacheRoundTrip(t *testing.T) {
	type payload struct {
		Name   string
		Values []int
	}
	stored := payload{Name: "test", Values: []int{1, 2, 3}}

	if err := CacheStoreObject("test/roundtrip.msgpack", stored); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var retrieved payload
	if _, err := CacheRetrieveObject("test/roundtrip.msgpack", &retrieved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if retrieved.Name != stored.Name || len(retrieved.Values) != len(stored.Values) {
		t.Errorf("got %+v, expected %+v", retrieved, stored)
	}

	if _, err := CacheRetrieveObject("test/missing.msgpack", &retrieved); err == nil {
		t.Errorf("expected an error for a missing cache entry")
	}
}
