package models

// Phase is an ordered group of concepts with its videos and capstone challenge
type Phase struct {
	ID             string         `json:"id" yaml:"id"`
	Title          string         `json:"title" yaml:"title"`
	CoreConcepts   []string       `json:"core_concepts" yaml:"core_concepts"`
	Concepts       []Concept      `json:"concepts" yaml:"concepts"`
	Videos         []Video        `json:"videos" yaml:"videos"`
	EliteChallenge EliteChallenge `json:"elite_challenge" yaml:"elite_challenge"`
}

// ConceptIDs returns the ids of the phase concepts in roadmap order
func (p Phase) ConceptIDs() []string {
	ids := make([]string, 0, len(p.Concepts))
	for _, c := range p.Concepts {
		ids = append(ids, c.ID)
	}
	return ids
}

// Video is an embedded video shown in a phase gallery
type Video struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	YoutubeID string `json:"youtube_id" yaml:"youtube_id"`
}

// EliteChallenge is the capstone project closing a phase
type EliteChallenge struct {
	Title            string   `json:"title" yaml:"title"`
	Description      string   `json:"description" yaml:"description"`
	MustHaveFeatures []string `json:"must_have_features" yaml:"must_have_features"`
}
