package timer

import "time"

// Snapshot is the persisted form of the engine. IsRunning and IsPaused are
// never both set; a running snapshot carries an anchor.
type Snapshot struct {
	IsRunning                bool        `json:"isRunning"`
	IsPaused                 bool        `json:"isPaused"`
	SessionType              SessionType `json:"sessionType"`
	AnchorStartEpochMs       *int64      `json:"anchorStartEpochMs"`
	NominalDurationSeconds   int         `json:"nominalDurationSeconds"`
	AccumulatedPausedSeconds int         `json:"accumulatedPausedSeconds"`
	TimeRemainingSeconds     int         `json:"timeRemainingSeconds"`
	CompletedSessionCount    int         `json:"completedSessionCount"`
}

// Active reports whether the snapshot describes a session in progress.
func (s Snapshot) Active() bool {
	return s.IsRunning || s.IsPaused
}

// RestoreOutcome tells the caller what Restore found.
type RestoreOutcome int

const (
	// RestoredIdle means nothing was in progress.
	RestoredIdle RestoreOutcome = iota
	RestoredRunning
	RestoredPaused
	// RestoredCompleted means the session ran out while the process was
	// gone and was completed on the spot.
	RestoredCompleted
)

// Snapshot captures the engine state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		IsRunning:                e.state == Running,
		IsPaused:                 e.state == Paused,
		SessionType:              e.session,
		NominalDurationSeconds:   e.nominal,
		AccumulatedPausedSeconds: e.pausedSeconds,
		TimeRemainingSeconds:     e.remaining,
		CompletedSessionCount:    e.completed,
	}
	if !e.anchor.IsZero() {
		ms := e.anchor.UnixMilli()
		s.AnchorStartEpochMs = &ms
	}
	return s
}

// Restore rebuilds the engine from a snapshot taken before a restart.
// A running session is recomputed from real elapsed time and completed if
// it has already run out. A paused session keeps its remaining time but
// takes its nominal length from the current settings. Restore never fails:
// unusable fields fall back to a fresh work session.
func (e *Engine) Restore(snap Snapshot, now time.Time) (RestoreOutcome, *Transition) {
	e.session = snap.SessionType
	if !e.session.Valid() {
		e.session = Work
	}
	e.completed = max(0, snap.CompletedSessionCount)
	e.pausedSeconds = max(0, snap.AccumulatedPausedSeconds)
	e.anchor = time.Time{}
	e.pausedAt = time.Time{}
	e.generation++

	switch {
	case snap.IsRunning && snap.AnchorStartEpochMs != nil:
		e.anchor = time.UnixMilli(*snap.AnchorStartEpochMs).In(now.Location())
		e.nominal = snap.NominalDurationSeconds
		if e.nominal <= 0 {
			e.nominal = durationSeconds(e.settings, e.session)
		}
		e.state = Running
		if t := e.Recompute(now); t != nil {
			return RestoredCompleted, t
		}
		return RestoredRunning, nil

	case snap.IsPaused, snap.IsRunning:
		// A running snapshot without an anchor cannot be recomputed; it is
		// treated as paused at its last known remaining time.
		e.nominal = durationSeconds(e.settings, e.session)
		e.remaining = min(max(snap.TimeRemainingSeconds, 0), e.nominal)
		if snap.AnchorStartEpochMs != nil {
			e.anchor = time.UnixMilli(*snap.AnchorStartEpochMs).In(now.Location())
		}
		e.state = Paused
		e.pausedAt = now
		return RestoredPaused, nil
	}

	e.state = Idle
	e.pausedSeconds = 0
	e.nominal = durationSeconds(e.settings, e.session)
	e.remaining = e.nominal
	return RestoredIdle, nil
}
