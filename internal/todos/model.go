package todos

import "time"

// Todo is a shared task. Completion carries attribution the same way
// checklist entries do: toggling off clears it entirely.
type Todo struct {
	ID              int64      `json:"id"`
	Text            string     `json:"text"`
	IsCompleted     bool       `json:"is_completed"`
	CompletedBy     *int64     `json:"completed_by,omitempty"`
	CompletedByName *string    `json:"completed_by_name,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedBy       int64      `json:"created_by"`
	CreatedByName   string     `json:"created_by_name"`
	CreatedAt       time.Time  `json:"created_at"`
}
