package models

// Roadmap is the whole static curriculum
type Roadmap struct {
	Title      string         `json:"title" yaml:"title"`
	TargetDate string         `json:"target_date,omitempty" yaml:"target_date,omitempty"` // RFC3339
	Phases     []Phase        `json:"phases" yaml:"phases"`
	Resources  []ResourceLink `json:"resources" yaml:"resources"`
}

// ConceptIDs returns every concept id across all phases, phase by phase
func (r Roadmap) ConceptIDs() []string {
	var ids []string
	for _, p := range r.Phases {
		ids = append(ids, p.ConceptIDs()...)
	}
	return ids
}

// Phase returns the phase with the given id
func (r Roadmap) Phase(id string) (Phase, bool) {
	for _, p := range r.Phases {
		if p.ID == id {
			return p, true
		}
	}
	return Phase{}, false
}
