// Package workout answers "what did the user train during a given ISO week"
// from a flat list of workout logs.
package workout

import (
	"slices"
	"time"

	"github.com/sadopc/flexr/internal/isoweek"
	"github.com/sadopc/flexr/internal/muscles"
)

// LogRecord is one recorded workout session.
type LogRecord struct {
	ID          string
	PerformedAt time.Time
	Name        string
	Muscles     []string // muscle names; duplicates and unknown names are allowed
	Notes       string
	Duration    time.Duration
}

// HighlightSet is a set of diagram display ids.
type HighlightSet map[string]struct{}

func (h HighlightSet) Has(id string) bool {
	_, ok := h[id]
	return ok
}

func (h HighlightSet) Len() int { return len(h) }

// IDs returns the ids sorted.
func (h HighlightSet) IDs() []string {
	ids := make([]string, 0, len(h))
	for id := range h {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Result is the aggregation of one week.
type Result struct {
	Week        isoweek.Week
	Start       time.Time
	End         time.Time
	Logs        []LogRecord
	Highlighted HighlightSet
	// GroupCounts is the number of distinct highlighted ids per group.
	GroupCounts map[muscles.Group]int
}

// Aggregator filters logs into a week and derives the trained-muscle set
// through its mapping.
type Aggregator struct {
	mapping *muscles.Mapping
}

func NewAggregator(m *muscles.Mapping) *Aggregator {
	return &Aggregator{mapping: m}
}

func (a *Aggregator) Mapping() *muscles.Mapping { return a.mapping }

// Aggregate returns the logs of week w (input order preserved, bounds
// inclusive) and the display ids of the muscles they trained. Unmapped muscle
// names are skipped. The only error is isoweek.ErrInvalidDate for a bad w.
func (a *Aggregator) Aggregate(logs []LogRecord, w isoweek.Week) (Result, error) {
	start, end, err := isoweek.Range(w)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Week:        w,
		Start:       start,
		End:         end,
		Logs:        []LogRecord{},
		Highlighted: make(HighlightSet),
		GroupCounts: make(map[muscles.Group]int),
	}

	for _, l := range logs {
		if l.PerformedAt.Before(start) || l.PerformedAt.After(end) {
			continue
		}
		res.Logs = append(res.Logs, l)

		for _, name := range l.Muscles {
			mu, ok := a.mapping.Muscle(name)
			if !ok {
				continue
			}
			if res.Highlighted.Has(mu.DisplayID) {
				continue
			}
			res.Highlighted[mu.DisplayID] = struct{}{}
			res.GroupCounts[mu.Group]++
		}
	}
	return res, nil
}

// IsTrained reports whether the muscle named key is highlighted in res.
func (a *Aggregator) IsTrained(res Result, key string) bool {
	id, ok := a.mapping.Lookup(key)
	if !ok {
		return false
	}
	return res.Highlighted.Has(id)
}

// WeeklyCounts returns the number of logs in each of the n weeks ending with
// last, oldest first.
func WeeklyCounts(logs []LogRecord, last isoweek.Week, n int) ([]isoweek.Week, []int, error) {
	if err := last.Validate(); err != nil {
		return nil, nil, err
	}
	if n <= 0 {
		return nil, nil, nil
	}
	weeks := make([]isoweek.Week, n)
	w := last
	for i := n - 1; i >= 0; i-- {
		weeks[i] = w
		if i == 0 {
			break
		}
		prev, err := isoweek.Prev(w)
		if err != nil {
			return nil, nil, err
		}
		w = prev
	}

	idx := make(map[isoweek.Week]int, n)
	for i, wk := range weeks {
		idx[wk] = i
	}
	counts := make([]int, n)
	for _, l := range logs {
		if i, ok := idx[isoweek.Of(l.PerformedAt)]; ok {
			counts[i]++
		}
	}
	return weeks, counts, nil
}
