// Package seasons answers season-availability questions for a single series.
//
// The season list is kept in the backend's natural order and is never
// re-sorted. "first" and "last" are positional: they are the first and final
// list elements, not the numeric minimum and maximum. A backend that returns
// seasons out of order will therefore produce a "last" season that is not the
// highest-numbered one.
package seasons

import (
	"slices"

	"github.com/promptseerr/promptseerr/internal/media"
)

// Ledger is an immutable view over one series' season list.
type Ledger struct {
	seasons []media.Season
}

// New returns a ledger over a copy of the given season list.
func New(list []media.Season) *Ledger {
	return &Ledger{seasons: slices.Clone(list)}
}

// Summary describes the positional and availability landmarks of a season list.
// A zero First, Next, or Last means the value is absent.
type Summary struct {
	First int
	Next  int
	// Last is the season number of the final list element, not the maximum.
	Last int
	All  []int
}

// Needed is the outcome of resolving a selector against the ledger.
type Needed struct {
	Seasons []int
	// Unknown is set when the ledger is empty, meaning the backend knows no
	// seasons for the show. Seasons is always empty in that case.
	Unknown bool
}

// Summary computes first, next, last, and all for the ledger.
func (l *Ledger) Summary() Summary {
	if len(l.seasons) == 0 {
		return Summary{All: []int{}}
	}

	all := make([]int, len(l.seasons))
	lastAvailable := 0
	for i, s := range l.seasons {
		all[i] = s.Number
		if isHeld(s.Status) && s.Number > lastAvailable {
			lastAvailable = s.Number
		}
	}

	first := l.seasons[0].Number
	last := l.seasons[len(l.seasons)-1].Number

	next := 0
	switch {
	case lastAvailable == 0:
		next = 1
	case last > lastAvailable:
		next = lastAvailable + 1
	}

	return Summary{
		First: first,
		Next:  next,
		Last:  last,
		All:   all,
	}
}

// DetermineNeeded resolves a first/next/last keyword or an explicit season
// list into the seasons that still have to be requested.
//
// The "all" keyword is not resolved here; it is passed to fulfillment as-is
// and yields an empty result. For an explicit list, a season counts as known
// when it appears in the ledger at all, regardless of its status.
func (l *Ledger) DetermineNeeded(sel *media.SeasonsSelector) Needed {
	if len(l.seasons) == 0 {
		return Needed{Seasons: []int{}, Unknown: true}
	}
	if sel == nil || sel.IsAll() {
		return Needed{Seasons: []int{}}
	}

	summary := l.Summary()

	if sel.IsList() {
		needed := []int{}
		for _, n := range sel.Numbers() {
			if !slices.Contains(summary.All, n) {
				needed = append(needed, n)
			}
		}
		return Needed{Seasons: needed}
	}

	var resolved int
	switch sel.Keyword() {
	case media.KeywordFirst:
		resolved = summary.First
	case media.KeywordNext:
		resolved = summary.Next
	case media.KeywordLast:
		resolved = summary.Last
	}
	if resolved == 0 {
		return Needed{Seasons: []int{}}
	}
	return Needed{Seasons: []int{resolved}}
}

// isHeld reports whether a season is already on its way or on disk.
func isHeld(status media.Status) bool {
	return status == media.StatusAvailable || status == media.StatusProcessing
}
