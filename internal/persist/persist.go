// Package persist reads and writes the JSON records timefocus keeps in a
// key-value store. Every record is checked against an embedded JSON Schema
// on load. A record that fails to decode or validate is removed and the
// caller gets defaults; corruption is logged, never returned.
package persist

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sadopc/timefocus/internal/apperr"
	"github.com/sadopc/timefocus/internal/queue"
	"github.com/sadopc/timefocus/internal/schedule"
	"github.com/sadopc/timefocus/internal/settings"
	"github.com/sadopc/timefocus/internal/timer"
)

// Record keys.
const (
	KeySettings   = "timefocus-settings"
	KeyTimerState = "timefocus-timer-state"
	KeyFavorites  = "timefocus-favorites"
	KeyStartTime  = "timefocus-start-time"
)

// KV is a string key-value store. Writes are last-write-wins.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Records is the typed view over a KV.
type Records struct {
	kv  KV
	log *slog.Logger
}

func New(kv KV, log *slog.Logger) *Records {
	if log == nil {
		log = slog.Default()
	}
	return &Records{kv: kv, log: log}
}

// load fetches key, validates it against schemaFile and decodes it into v.
// It reports whether v was filled. Corrupt records are dropped.
func (r *Records) load(key, schemaFile string, v any) (bool, error) {
	raw, ok, err := r.kv.Get(key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return false, nil
	}

	data := []byte(raw)
	if err := validate(schemaFile, data); err != nil {
		r.discard(key, err)
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		r.discard(key, err)
		return false, nil
	}
	return true, nil
}

func (r *Records) discard(key string, cause error) {
	err := apperr.Corrupt(key, cause)
	r.log.Warn("discarding corrupt record", "key", key, "err", err.Unwrap())
	if rmErr := r.kv.Remove(key); rmErr != nil {
		r.log.Error("remove corrupt record", "key", key, "err", rmErr)
	}
}

func (r *Records) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Settings loads the settings record, or the defaults when absent or corrupt.
// Fields missing from an older record keep their default values.
func (r *Records) Settings() (settings.Settings, error) {
	s := settings.Default()
	ok, err := r.load(KeySettings, settingsSchemaFile, &s)
	if err != nil || !ok {
		return settings.Default(), err
	}
	if err := s.Validate(); err != nil {
		r.discard(KeySettings, err)
		return settings.Default(), nil
	}
	return s, nil
}

func (r *Records) SaveSettings(s settings.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return r.save(KeySettings, s)
}

// Snapshot loads the timer snapshot. ok is false when there is none.
func (r *Records) Snapshot() (snap timer.Snapshot, ok bool, err error) {
	ok, err = r.load(KeyTimerState, snapshotSchemaFile, &snap)
	return snap, ok, err
}

func (r *Records) SaveSnapshot(snap timer.Snapshot) error {
	return r.save(KeyTimerState, snap)
}

func (r *Records) ClearSnapshot() error {
	if err := r.kv.Remove(KeyTimerState); err != nil {
		return fmt.Errorf("clear %s: %w", KeyTimerState, err)
	}
	return nil
}

// Favorites loads the favorite list, deduplicated.
func (r *Records) Favorites() (queue.Favorites, error) {
	var f queue.Favorites
	if _, err := r.load(KeyFavorites, favoritesSchemaFile, &f); err != nil {
		return nil, err
	}
	return f.Dedupe(), nil
}

func (r *Records) SaveFavorites(f queue.Favorites) error {
	if f == nil {
		f = queue.Favorites{}
	}
	return r.save(KeyFavorites, f)
}

// StartTime loads the schedule start time. ok is false when none is stored.
func (r *Records) StartTime() (schedule.TimeOfDay, bool, error) {
	raw, ok, err := r.kv.Get(KeyStartTime)
	if err != nil {
		return schedule.TimeOfDay{}, false, fmt.Errorf("read %s: %w", KeyStartTime, err)
	}
	if !ok {
		return schedule.TimeOfDay{}, false, nil
	}
	t, err := schedule.ParseTimeOfDay(raw)
	if err != nil {
		r.discard(KeyStartTime, err)
		return schedule.TimeOfDay{}, false, nil
	}
	return t, true, nil
}

func (r *Records) SaveStartTime(t schedule.TimeOfDay) error {
	if err := r.kv.Set(KeyStartTime, t.String()); err != nil {
		return fmt.Errorf("write %s: %w", KeyStartTime, err)
	}
	return nil
}
