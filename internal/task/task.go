// Package task holds the client-side mirrors of the remote store's task data.
package task

// Task is a read-only copy of a task as reported by the last fetch.
type Task struct {
	ID        ID      `json:"id"`
	Title     string  `json:"title"`
	DueDate   string  `json:"due_date"` // ISO date or a relative keyword such as "tomorrow"
	Weight    float64 `json:"weight"`
	Completed bool    `json:"completed"`
}

// Progress is the store's weighted completion summary.
type Progress struct {
	TotalWeight     float64 `json:"total_weight"`
	CompletedWeight float64 `json:"completed_weight"`
	RemainingWeight float64 `json:"remaining_weight"`
	Progress        float64 `json:"progress"` // percentage in [0,100]
}

// PieSlice is one named segment of the store's pie series.
type PieSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// BarRow is the per-task completed/remaining split the store reports.
type BarRow struct {
	Title           string  `json:"title"`
	CompletedWeight float64 `json:"completed_weight"`
	RemainingWeight float64 `json:"remaining_weight"`
}

// Snapshot is one full dashboard state. It is replaced wholesale on every
// fetch and never patched. Tasks keep the store's order.
type Snapshot struct {
	Tasks          []Task     `json:"tasks"`
	Progress       Progress   `json:"progress"`
	Interpretation string     `json:"interpretation"`
	PieData        []PieSlice `json:"pie_data,omitempty"`
	BarData        []BarRow   `json:"bar_data,omitempty"`
}

// Find returns the task with the given ID.
func (s Snapshot) Find(id ID) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID.Equal(id) {
			return t, true
		}
	}
	return Task{}, false
}
