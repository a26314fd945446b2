package queue

import (
	"slices"
	"strings"

	"github.com/sadopc/timefocus/internal/apperr"
)

// Favorites is an ordered list of task descriptions, unique by exact match.
type Favorites []string

func (f Favorites) Contains(desc string) bool {
	return slices.Contains(f, desc)
}

// Toggle adds desc if absent, removes it otherwise. The bool reports
// whether desc is a favorite afterwards. desc is trimmed and must not be
// blank.
func (f Favorites) Toggle(desc string) (Favorites, bool, error) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return f, false, apperr.Validation("description", "must not be empty")
	}
	if i := slices.Index(f, desc); i >= 0 {
		return slices.Delete(slices.Clone(f), i, i+1), false, nil
	}
	return append(slices.Clone(f), desc), true, nil
}

// Remove drops desc. Removing an unknown entry is a no-op.
func (f Favorites) Remove(desc string) Favorites {
	i := slices.Index(f, desc)
	if i < 0 {
		return f
	}
	return slices.Delete(slices.Clone(f), i, i+1)
}

// Dedupe keeps the first occurrence of each non-blank description.
func (f Favorites) Dedupe() Favorites {
	out := make(Favorites, 0, len(f))
	for _, d := range f {
		if strings.TrimSpace(d) == "" || out.Contains(d) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// AddFavorite queues a favorite as a new single-session task.
func AddFavorite(tasks []Task, desc string) ([]Task, Task, error) {
	return Add(tasks, desc, 1)
}
