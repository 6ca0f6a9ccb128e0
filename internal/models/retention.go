package models

import "time"

// RetentionWindow bounds how long completed-day snapshots are kept. The
// server applies the same prune on upsert as a defense in depth.
const RetentionWindow = 30 * 24 * time.Hour

// PruneHistory drops entries completed before now minus the retention window.
// Entries with a missing or unparsable completion date are kept: ambiguous
// data is never silently discarded.
func PruneHistory(history []WorkoutDay, now time.Time) []WorkoutDay {
	cutoff := now.Add(-RetentionWindow)
	out := make([]WorkoutDay, 0, len(history))
	for _, day := range history {
		if day.DateCompleted != "" {
			completed, err := time.Parse(time.RFC3339, day.DateCompleted)
			if err == nil && completed.Before(cutoff) {
				continue
			}
		}
		out = append(out, day)
	}
	return out
}
