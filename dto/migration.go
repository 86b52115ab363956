package dto

// CategoryResult is the outcome of one sub-migration: how many items made
// it across, and a message per item that did not.
type CategoryResult struct {
	Count  int      `json:"count"`
	Errors []string `json:"errors"`
}

type SettingsResult struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

// MigrationResult aggregates a full migration run. Success means zero
// errors across all categories; partial completion is a valid terminal
// state and is surfaced through Errors.
type MigrationResult struct {
	Success       bool     `json:"success"`
	NotesCount    int      `json:"notes_count"`
	ProgressCount int      `json:"progress_count"`
	Errors        []string `json:"errors"`
}

type MigrationStatusResponse struct {
	NeedsMigration bool `json:"needs_migration"`
}
