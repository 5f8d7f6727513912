package tui

import (
	"errors"
	"time"

	"github.com/sadopc/flexr/internal/store"
	"github.com/sadopc/flexr/internal/workout"
)

// timerState tracks the current state of the workout timer.
type timerState int

const (
	timerStopped timerState = iota
	timerRunning
	timerPaused
)

var errEmptyRoutine = errors.New("routine is empty, add exercises from the Muscles view")

// timerModel times a workout session built from the routine. Nothing is
// written to the store until stop.
type timerModel struct {
	store *store.Store

	state     timerState
	startTime time.Time
	elapsed   time.Duration
	pausedAt  time.Time
	pauseGap  time.Duration

	exercises int
}

func newTimerModel(s *store.Store) timerModel {
	return timerModel{
		store: s,
		state: timerStopped,
	}
}

func (t *timerModel) start() error {
	if t.state != timerStopped {
		return nil
	}
	items, err := t.store.ListRoutine()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return errEmptyRoutine
	}
	t.state = timerRunning
	t.startTime = time.Now()
	t.elapsed = 0
	t.pauseGap = 0
	t.exercises = len(items)
	return nil
}

// stop persists the session as a workout log of the routine's muscles.
func (t *timerModel) stop(name, notes string) (*workout.LogRecord, error) {
	if t.state == timerStopped {
		return nil, nil
	}
	elapsed := t.currentElapsed()
	rec, err := t.store.LogRoutine(name, notes, t.startTime, elapsed)
	if err != nil {
		return nil, err
	}
	t.state = timerStopped
	t.elapsed = 0
	return rec, nil
}

// discard abandons the session without saving.
func (t *timerModel) discard() {
	t.state = timerStopped
	t.elapsed = 0
}

func (t *timerModel) pause() {
	if t.state != timerRunning {
		return
	}
	t.state = timerPaused
	t.pausedAt = time.Now()
}

func (t *timerModel) resume() {
	if t.state != timerPaused {
		return
	}
	t.pauseGap += time.Since(t.pausedAt)
	t.state = timerRunning
}

func (t *timerModel) toggle() {
	switch t.state {
	case timerRunning:
		t.pause()
	case timerPaused:
		t.resume()
	}
}

func (t *timerModel) tick() {
	if t.state == timerRunning {
		t.elapsed = time.Since(t.startTime) - t.pauseGap
	}
}

func (t timerModel) running() bool {
	return t.state != timerStopped
}

func (t timerModel) paused() bool {
	return t.state == timerPaused
}

func (t timerModel) currentElapsed() time.Duration {
	if t.state == timerStopped {
		return 0
	}
	if t.state == timerPaused {
		return time.Since(t.startTime) - t.pauseGap - time.Since(t.pausedAt)
	}
	return time.Since(t.startTime) - t.pauseGap
}
