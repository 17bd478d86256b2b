package progress

import (
	"fmt"
	"math"

	"github.com/example/roadmap/pkg/models"
)

// PhaseSummary is the progress of one roadmap phase
type PhaseSummary struct {
	PhaseID string `json:"phase_id"`
	Title   string `json:"title"`
	models.PhaseProgress
}

// Label renders the "completed / total concepts" line of a phase
func (p PhaseSummary) Label() string {
	return fmt.Sprintf("%d / %d concepts", p.CompletedCount, p.TotalCount)
}

// Summary is the progress of a whole roadmap
type Summary struct {
	Overall        float64        `json:"overall"`
	CompletedCount int            `json:"completed_count"`
	TotalCount     int            `json:"total_count"`
	Phases         []PhaseSummary `json:"phases"`
}

// Summarize computes per-phase and overall progress for roadmap
func (t *Tracker) Summarize(roadmap models.Roadmap) Summary {
	all := roadmap.ConceptIDs()
	overall := t.PhaseProgress(all)

	s := Summary{
		Overall:        overall.Progress,
		CompletedCount: overall.CompletedCount,
		TotalCount:     overall.TotalCount,
		Phases:         make([]PhaseSummary, 0, len(roadmap.Phases)),
	}
	for _, phase := range roadmap.Phases {
		s.Phases = append(s.Phases, PhaseSummary{
			PhaseID:       phase.ID,
			Title:         phase.Title,
			PhaseProgress: t.PhaseProgress(phase.ConceptIDs()),
		})
	}
	return s
}

// Clamp bounds a percentage to [0, 100]; NaN becomes 0
func Clamp(progress float64) float64 {
	if math.IsNaN(progress) {
		return 0
	}
	return math.Max(0, math.Min(100, progress))
}

// FormatPercent renders a percentage with one decimal, e.g. "33.3%"
func FormatPercent(progress float64) string {
	return fmt.Sprintf("%.1f%%", Clamp(progress))
}
