package domain

// Snapshot is the production dashboard read model, computed in one
// consistent read.
type Snapshot struct {
	Queued          int64 `json:"queued"`
	InProgressUnits int64 `json:"in_progress_units"`
	FinishedToday   int64 `json:"finished_today"`
	LowStock        int64 `json:"low_stock"`
}
