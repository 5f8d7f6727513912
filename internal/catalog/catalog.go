// Package catalog is the built-in exercise library: which exercises train a
// muscle and how to perform them.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
)

//go:embed data/exercises.json
var exercisesJSON []byte

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

type Exercise struct {
	Name       string     `json:"name"`
	Sets       string     `json:"sets"`
	Reps       string     `json:"reps"`
	Difficulty Difficulty `json:"difficulty"`
}

type Detail struct {
	Description   string   `json:"description"`
	Execution     []string `json:"execution"`
	FormTips      []string `json:"form_tips"`
	TargetMuscles string   `json:"target_muscles"`
	Equipment     string   `json:"equipment"`
}

type Catalog struct {
	exercises map[string][]Exercise
	details   map[string]Detail
}

type catalogFile struct {
	Exercises map[string][]Exercise `json:"exercises"`
	Details   map[string]Detail     `json:"details"`
}

// Parse decodes a catalog in the embedded JSON layout.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for muscle, exs := range f.Exercises {
		for _, e := range exs {
			if e.Name == "" {
				return nil, fmt.Errorf("muscle %q: exercise without name", muscle)
			}
		}
	}
	return &Catalog{exercises: f.Exercises, details: f.Details}, nil
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Parse(exercisesJSON)
	if err != nil {
		panic(err)
	}
	return c
})

// Default returns the embedded catalog.
func Default() *Catalog {
	return defaultCatalog()
}

// ForMuscle returns the exercises for a muscle name, or nil.
func (c *Catalog) ForMuscle(key string) []Exercise {
	return slices.Clone(c.exercises[key])
}

// Muscles returns the sorted names of muscles that have exercises.
func (c *Catalog) Muscles() []string {
	keys := make([]string, 0, len(c.exercises))
	for k := range c.exercises {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// MusclesFor returns the sorted names of muscles that list exercise name.
func (c *Catalog) MusclesFor(name string) []string {
	var keys []string
	for k, exs := range c.exercises {
		if slices.ContainsFunc(exs, func(e Exercise) bool { return e.Name == name }) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

func (c *Catalog) HasDetail(name string) bool {
	_, ok := c.details[name]
	return ok
}

// Detail returns the instructions for an exercise. Exercises without a
// written entry get generic guidance.
func (c *Catalog) Detail(name string) Detail {
	if d, ok := c.details[name]; ok {
		return d
	}
	return Detail{
		Description: fmt.Sprintf("%s is an effective exercise for building muscle strength and size.", name),
		Execution: []string{
			"Follow proper form and technique",
			"Start with appropriate weight",
			"Control the movement throughout",
			"Focus on target muscle contraction",
		},
		FormTips: []string{
			"Warm up properly before exercising",
			"Maintain proper form to prevent injury",
			"Breathe consistently throughout the movement",
			"Progress gradually by increasing weight or reps",
		},
		TargetMuscles: "Various muscle groups",
		Equipment:     "Varies by exercise",
	}
}
