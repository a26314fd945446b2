package store

import (
	"fmt"
	"time"
)

// LogSession records a finished session.
func (s *Store) LogSession(r SessionRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO sessions (session_type, nominal_seconds, started_at, finished_at, task_description)
		 VALUES (?, ?, ?, ?, ?)`,
		r.SessionType, r.NominalSeconds,
		r.StartedAt.UTC().Format(time.RFC3339), r.FinishedAt.UTC().Format(time.RFC3339),
		r.TaskDescription,
	)
	if err != nil {
		return 0, fmt.Errorf("log session: %w", err)
	}
	return res.LastInsertId()
}

// ListSessions returns sessions finished in [from, to), newest first.
// limit <= 0 means no limit.
func (s *Store) ListSessions(from, to time.Time, limit int) ([]SessionRecord, error) {
	query := `SELECT id, session_type, nominal_seconds, started_at, finished_at, task_description
		FROM sessions WHERE finished_at >= ? AND finished_at < ? ORDER BY finished_at DESC, id DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.db.Query(query, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var started, finished string
		if err := rows.Scan(&r.ID, &r.SessionType, &r.NominalSeconds, &started, &finished, &r.TaskDescription); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetDailySummary groups sessions finished in [from, to) by UTC day and type.
func (s *Store) GetDailySummary(from, to time.Time) ([]DailySummary, error) {
	rows, err := s.db.Query(`
		SELECT date(finished_at) AS day, session_type, COUNT(*), COALESCE(SUM(nominal_seconds), 0)
		FROM sessions
		WHERE finished_at >= ? AND finished_at < ?
		GROUP BY day, session_type
		ORDER BY day, session_type`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily summary: %w", err)
	}
	defer rows.Close()

	var summaries []DailySummary
	for rows.Next() {
		var ds DailySummary
		if err := rows.Scan(&ds.Date, &ds.SessionType, &ds.Count, &ds.TotalSeconds); err != nil {
			return nil, err
		}
		summaries = append(summaries, ds)
	}
	return summaries, rows.Err()
}

// GetWorkStats counts finished work sessions in [from, to) and their total
// nominal length in seconds.
func (s *Store) GetWorkStats(from, to time.Time) (completed int, totalWork int64, err error) {
	err = s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(nominal_seconds), 0)
		FROM sessions
		WHERE session_type = 'work'
		  AND finished_at >= ? AND finished_at < ?`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	).Scan(&completed, &totalWork)
	return
}
