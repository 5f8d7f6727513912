// Package fitimport reads strength workouts recorded by fitness devices in
// the Garmin FIT format and turns them into workout logs.
package fitimport

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"

	"github.com/sadopc/flexr/internal/muscles"
	"github.com/sadopc/flexr/internal/workout"
)

// ErrNoWorkouts is returned when a file holds neither sessions nor sets.
var ErrNoWorkouts = errors.New("no workouts in FIT file")

const defaultName = "Strength Training"

// categoryMuscles maps FIT exercise categories to the muscles they train,
// primary muscle first.
var categoryMuscles = map[typedef.ExerciseCategory][]string{
	typedef.ExerciseCategoryBenchPress:       {"pectoralis_major", "deltoid_anterior", "triceps_brachii"},
	typedef.ExerciseCategoryFlye:             {"pectoralis_major", "pectoralis_minor"},
	typedef.ExerciseCategoryPushUp:           {"pectoralis_major", "triceps_brachii", "deltoid_anterior"},
	typedef.ExerciseCategoryDeadlift:         {"erector_spinae", "gluteus_maximus", "hamstrings", "trapezius_upper"},
	typedef.ExerciseCategoryRow:              {"latissimus_dorsi", "rhomboids", "trapezius_middle", "biceps_brachii"},
	typedef.ExerciseCategoryPullUp:           {"latissimus_dorsi", "biceps_brachii", "teres_major"},
	typedef.ExerciseCategoryHyperextension:   {"erector_spinae", "gluteus_maximus"},
	typedef.ExerciseCategorySquat:            {"quadriceps", "gluteus_maximus", "adductors"},
	typedef.ExerciseCategoryLunge:            {"quadriceps", "gluteus_maximus", "hamstrings"},
	typedef.ExerciseCategoryLegCurl:          {"hamstrings"},
	typedef.ExerciseCategoryCalfRaise:        {"gastrocnemius", "soleus"},
	typedef.ExerciseCategoryShoulderPress:    {"deltoid_anterior", "deltoid_lateral", "triceps_brachii"},
	typedef.ExerciseCategoryLateralRaise:     {"deltoid_lateral"},
	typedef.ExerciseCategoryShrug:            {"trapezius_upper"},
	typedef.ExerciseCategoryCurl:             {"biceps_brachii", "brachialis", "forearm_flexors"},
	typedef.ExerciseCategoryTricepsExtension: {"triceps_brachii", "triceps_long_head"},
	typedef.ExerciseCategoryCrunch:           {"rectus_abdominis"},
	typedef.ExerciseCategorySitUp:            {"rectus_abdominis", "hip_flexors"},
	typedef.ExerciseCategoryLegRaise:         {"rectus_abdominis", "hip_flexors"},
	typedef.ExerciseCategoryPlank:            {"transverse_abdominis", "rectus_abdominis", "obliques_external"},
	typedef.ExerciseCategoryOlympicLift:      {"quadriceps", "gluteus_maximus", "trapezius_upper", "deltoid_anterior"},
	typedef.ExerciseCategoryTotalBody:        {"quadriceps", "pectoralis_major", "latissimus_dorsi", "deltoid_anterior"},
}

// musclesFor returns a copy of the muscles trained by a FIT exercise category.
func musclesFor(c typedef.ExerciseCategory) []string {
	ms := categoryMuscles[c]
	out := make([]string, len(ms))
	copy(out, ms)
	return out
}

type session struct {
	start   time.Time
	elapsed time.Duration
	name    string
	sets    []typedef.ExerciseCategory
}

type set struct {
	start      time.Time
	categories []typedef.ExerciseCategory
}

// Import decodes every FIT file in r (chained files included) and returns
// one log per session. Sets belong to the latest session that started at or
// before them. Muscles not present in m are dropped; a nil m keeps all.
func Import(r io.Reader, m *muscles.Mapping) ([]workout.LogRecord, error) {
	dec := decoder.New(r)

	var sessions []session
	var sets []set
	var created time.Time

	for dec.Next() {
		fitData, err := dec.Decode()
		if err != nil {
			return nil, fmt.Errorf("decode FIT file: %w", err)
		}

		for _, msg := range fitData.Messages {
			switch msg.Num {
			case typedef.MesgNumFileId:
				fileID := mesgdef.NewFileId(&msg)
				if created.IsZero() && !fileID.TimeCreated.IsZero() {
					created = fileID.TimeCreated.UTC()
				}

			case typedef.MesgNumSession:
				s := mesgdef.NewSession(&msg)
				var elapsed time.Duration
				if s.TotalElapsedTime != math.MaxUint32 {
					elapsed = time.Duration(s.TotalElapsedTime) * time.Millisecond
				}
				sessions = append(sessions, session{
					start:   s.StartTime.UTC(),
					elapsed: elapsed,
					name:    s.SportProfileName,
				})

			case typedef.MesgNumSet:
				s := mesgdef.NewSet(&msg)
				if s.SetType == typedef.SetTypeRest {
					continue
				}
				sets = append(sets, set{start: s.StartTime.UTC(), categories: s.Category})
			}
		}
	}

	if len(sessions) == 0 {
		if len(sets) == 0 {
			return nil, ErrNoWorkouts
		}
		start := created
		if start.IsZero() {
			start = sets[0].start
		}
		sessions = append(sessions, session{start: start})
	}

	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].start.Before(sessions[j].start) })

	for _, st := range sets {
		idx := 0
		for i := len(sessions) - 1; i >= 0; i-- {
			if !st.start.Before(sessions[i].start) {
				idx = i
				break
			}
		}
		sessions[idx].sets = append(sessions[idx].sets, st.categories...)
	}

	logs := make([]workout.LogRecord, 0, len(sessions))
	for _, s := range sessions {
		name := s.name
		if name == "" {
			name = defaultName
		}
		logs = append(logs, workout.LogRecord{
			PerformedAt: s.start,
			Name:        name,
			Muscles:     musclesOf(s.sets, m),
			Duration:    s.elapsed,
		})
	}
	return logs, nil
}

func musclesOf(cats []typedef.ExerciseCategory, m *muscles.Mapping) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range cats {
		for _, name := range musclesFor(c) {
			if seen[name] {
				continue
			}
			if m != nil {
				if _, ok := m.Lookup(name); !ok {
					continue
				}
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
