// ABOUTME: VariableId grammar and signal transition/value types (§3 data model)
// ABOUTME: VariableSeriesData buffers are shared by pointer, never mutated after publish

package cache

import (
	"fmt"
	"strings"
)

// VariableId is the opaque unique key "file_path|scope_path|variable_name"
// (§6 unique-id grammar). file_path may itself contain "/" but not "|";
// parsing splits on the first two "|" only.
type VariableId struct {
	FilePath  string
	ScopePath string
	Variable  string
	raw       string
}

// ParseVariableId splits s on the first two "|" only, lossless round trip.
func ParseVariableId(s string) (VariableId, error) {
	first := strings.IndexByte(s, '|')
	if first < 0 {
		return VariableId{}, fmt.Errorf("cache: invalid variable id %q: missing '|'", s)
	}
	rest := s[first+1:]
	second := strings.IndexByte(rest, '|')
	if second < 0 {
		return VariableId{}, fmt.Errorf("cache: invalid variable id %q: missing second '|'", s)
	}
	return VariableId{
		FilePath:  s[:first],
		ScopePath: rest[:second],
		Variable:  rest[second+1:],
		raw:       s,
	}, nil
}

// MustParseVariableId is ParseVariableId that panics on error; used for
// literal ids constructed by tests and demo code.
func MustParseVariableId(s string) VariableId {
	id, err := ParseVariableId(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the lossless "file_path|scope_path|variable_name" form.
func (id VariableId) String() string {
	if id.raw != "" {
		return id.raw
	}
	return id.FilePath + "|" + id.ScopePath + "|" + id.Variable
}

// BelongsToFile reports whether id's file_path matches path exactly or has
// path as a prefix — used to invalidate every id under a reloading file
// (§3 "invalidated when a file reload starts"). A bare prefix match, not a
// path-separator-aware one: a reload of "/foo/bar" also invalidates ids
// under a sibling like "/foo/bar2".
func (id VariableId) BelongsToFile(path string) bool {
	if id.FilePath == path {
		return true
	}
	return strings.HasPrefix(id.FilePath, path)
}

// Format names the wire/display format of a variable's values (§4.5
// "format is Binary" classification rule).
type Format int

const (
	FormatDefault Format = iota
	FormatBinary
	FormatHex
	FormatDecimal
	FormatASCII
)

// SignalTransition is a (time, value) record: the signal changes to Value at
// TimeNs and holds it until the next transition.
type SignalTransition struct {
	TimeNs uint64
	Value  string
}

// SignalValue is a tagged union: exactly one of Present/Loading/Missing holds.
type SignalValue struct {
	kind    signalValueKind
	present string
}

type signalValueKind int

const (
	svMissing signalValueKind = iota
	svLoading
	svPresent
)

// Present constructs a SignalValue holding v.
func Present(v string) SignalValue { return SignalValue{kind: svPresent, present: v} }

// Loading constructs a SignalValue in the Loading state.
func Loading() SignalValue { return SignalValue{kind: svLoading} }

// Missing constructs a SignalValue in the Missing state.
func Missing() SignalValue { return SignalValue{kind: svMissing} }

// IsPresent reports whether the value is Present, returning its string.
func (v SignalValue) IsPresent() (string, bool) {
	if v.kind == svPresent {
		return v.present, true
	}
	return "", false
}

// IsLoading reports whether the value is Loading.
func (v SignalValue) IsLoading() bool { return v.kind == svLoading }

// IsMissing reports whether the value is Missing.
func (v SignalValue) IsMissing() bool { return v.kind == svMissing }

// VariableSeriesData is a shared-immutable transition buffer. Multiple
// render snapshots may observe the same buffer while a new one is being
// built (§3, §9 "shared-immutable transition buffers"); it is replaced
// wholesale on merge, never mutated in place.
type VariableSeriesData struct {
	Transitions      []SignalTransition
	TotalTransitions int
}

// NewVariableSeriesData wraps transitions, deduplicating equal-time entries
// per §3 ("equal-time entries with equal values are deduplicated; equal-time
// entries with differing values keep only the latest").
func NewVariableSeriesData(transitions []SignalTransition) VariableSeriesData {
	deduped := dedupeEqualTime(transitions)
	return VariableSeriesData{Transitions: deduped, TotalTransitions: len(deduped)}
}

// dedupeEqualTime collapses equal-time entries: later writer wins, and
// adjacent duplicates (same value, same time) collapse to one.
func dedupeEqualTime(in []SignalTransition) []SignalTransition {
	if len(in) == 0 {
		return nil
	}
	out := make([]SignalTransition, 0, len(in))
	for _, t := range in {
		if n := len(out); n > 0 && out[n-1].TimeNs == t.TimeNs {
			out[n-1] = t // later writer at the same time replaces the earlier one
			continue
		}
		out = append(out, t)
	}
	return out
}

// ValueAtOrBefore binary-searches for the latest transition with
// TimeNs <= at, returning Missing if at precedes the first transition
// (§4.4 cursor value lookup; also used for tooltip lookup).
func (d VariableSeriesData) ValueAtOrBefore(at uint64) SignalValue {
	ts := d.Transitions
	lo, hi := 0, len(ts)
	for lo < hi {
		mid := (lo + hi) / 2
		if ts[mid].TimeNs <= at {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return Missing()
	}
	return Present(ts[lo-1].Value)
}
