package models

// PhaseProgress is the completion of one list of concepts.
// Progress is a percentage in [0, 100].
type PhaseProgress struct {
	Progress       float64 `json:"progress"`
	CompletedCount int     `json:"completed_count"`
	TotalCount     int     `json:"total_count"`
}
