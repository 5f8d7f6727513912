// Package muscles holds the muscle catalog: which muscle names exist, the
// group each belongs to, and the display identifier used to address its
// region in the anatomy diagram.
package muscles

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Group string

const (
	GroupShoulders Group = "shoulders"
	GroupChest     Group = "chest"
	GroupBack      Group = "back"
	GroupCore      Group = "core"
	GroupArms      Group = "arms"
	GroupLegs      Group = "legs"
)

// GroupInfo is the legend entry for a group.
type GroupInfo struct {
	Key   Group
	Title string
	Color string
}

var groups = []GroupInfo{
	{GroupShoulders, "Shoulders", "#FF8C42"},
	{GroupChest, "Chest", "#FF6B9D"},
	{GroupBack, "Back", "#6BCF7F"},
	{GroupCore, "Core", "#4D9DE0"},
	{GroupArms, "Arms", "#FFD93D"},
	{GroupLegs, "Legs", "#9D4EDD"},
}

// Groups returns the groups in browsing order.
func Groups() []GroupInfo {
	out := make([]GroupInfo, len(groups))
	copy(out, groups)
	return out
}

// GroupByKey returns the legend entry for g.
func GroupByKey(g Group) (GroupInfo, bool) {
	for _, gi := range groups {
		if gi.Key == g {
			return gi, true
		}
	}
	return GroupInfo{}, false
}

// Muscle is one entry of the catalog. Key is the name used in workout
// records; DisplayID addresses the diagram region.
type Muscle struct {
	Key       string
	Name      string
	DisplayID string
	Group     Group
}

var (
	ErrDuplicateMuscle = errors.New("duplicate muscle")
	ErrEmptyField      = errors.New("empty muscle field")
)

// Mapping is an immutable lookup from muscle name to display identifier.
// A Mapping is safe for concurrent use once constructed.
type Mapping struct {
	byKey map[string]Muscle
	byID  map[string]Muscle
	order []Muscle
}

// NewMapping builds a Mapping. Keys must be unique. Several keys may share a
// display id; ByDisplayID then returns the first of them.
func NewMapping(ms []Muscle) (*Mapping, error) {
	m := &Mapping{
		byKey: make(map[string]Muscle, len(ms)),
		byID:  make(map[string]Muscle, len(ms)),
		order: make([]Muscle, 0, len(ms)),
	}
	for _, mu := range ms {
		if mu.Key == "" || mu.DisplayID == "" {
			return nil, fmt.Errorf("muscle %q: %w", mu.Key, ErrEmptyField)
		}
		if _, ok := m.byKey[mu.Key]; ok {
			return nil, fmt.Errorf("key %q: %w", mu.Key, ErrDuplicateMuscle)
		}
		if mu.Name == "" {
			mu.Name = humanize(mu.Key)
		}
		m.byKey[mu.Key] = mu
		if _, ok := m.byID[mu.DisplayID]; !ok {
			m.byID[mu.DisplayID] = mu
		}
		m.order = append(m.order, mu)
	}
	return m, nil
}

// MustNewMapping is like NewMapping but panics on error. Intended for
// package-level tables and tests.
func MustNewMapping(ms []Muscle) *Mapping {
	m, err := NewMapping(ms)
	if err != nil {
		panic(err)
	}
	return m
}

// Lookup returns the display id for a muscle name.
func (m *Mapping) Lookup(key string) (string, bool) {
	mu, ok := m.byKey[key]
	return mu.DisplayID, ok
}

func (m *Mapping) Muscle(key string) (Muscle, bool) {
	mu, ok := m.byKey[key]
	return mu, ok
}

// ByDisplayID is the reverse lookup.
func (m *Mapping) ByDisplayID(id string) (Muscle, bool) {
	mu, ok := m.byID[id]
	return mu, ok
}

func (m *Mapping) Len() int { return len(m.order) }

// Muscles returns every muscle in table order.
func (m *Mapping) Muscles() []Muscle {
	out := make([]Muscle, len(m.order))
	copy(out, m.order)
	return out
}

// InGroup returns the muscles of g in table order.
func (m *Mapping) InGroup(g Group) []Muscle {
	var out []Muscle
	for _, mu := range m.order {
		if mu.Group == g {
			out = append(out, mu)
		}
	}
	return out
}

// DisplayIDs returns the value set of the mapping in table order, each id
// once.
func (m *Mapping) DisplayIDs() []string {
	out := make([]string, 0, len(m.byID))
	for _, mu := range m.order {
		if m.byID[mu.DisplayID].Key == mu.Key {
			out = append(out, mu.DisplayID)
		}
	}
	return out
}

// DisplayName returns the catalog name for key, or a title-cased form of the
// key for names the catalog does not know.
func (m *Mapping) DisplayName(key string) string {
	if mu, ok := m.byKey[key]; ok {
		return mu.Name
	}
	return humanize(key)
}

var titleCaser = cases.Title(language.English)

func humanize(key string) string {
	return titleCaser.String(strings.ReplaceAll(strings.TrimSpace(key), "_", " "))
}
