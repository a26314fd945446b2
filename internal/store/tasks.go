package store

import (
	"fmt"

	"github.com/sadopc/timefocus/internal/queue"
)

// LoadTasks returns the queue in order.
func (s *Store) LoadTasks() ([]queue.Task, error) {
	rows, err := s.db.Query(
		`SELECT id, description, original_description, session_count, completed FROM tasks ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []queue.Task
	for rows.Next() {
		var t queue.Task
		var completed int
		if err := rows.Scan(&t.ID, &t.Description, &t.OriginalDescription, &t.SessionCount, &completed); err != nil {
			return nil, err
		}
		t.Completed = completed == 1
		if t.OriginalDescription == "" {
			t.OriginalDescription = t.Description
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// SaveTasks replaces the stored queue with tasks, keeping their order.
func (s *Store) SaveTasks(tasks []queue.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO tasks (id, position, description, original_description, session_count, completed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		completed := 0
		if t.Completed {
			completed = 1
		}
		if _, err := stmt.Exec(t.ID, i, t.Description, t.OriginalDescription, t.SessionCount, completed); err != nil {
			return fmt.Errorf("insert task %q: %w", t.ID, err)
		}
	}
	return tx.Commit()
}
