package models

// Label is the kind of primary resource attached to a concept
type Label string

const (
	LabelDoc   Label = "Doc"
	LabelVideo Label = "Video"
	LabelCode  Label = "Code"
	LabelBook  Label = "Book"
)

// Valid reports whether the label is one of the known kinds
func (l Label) Valid() bool {
	switch l {
	case LabelDoc, LabelVideo, LabelCode, LabelBook:
		return true
	}
	return false
}

// Concept represents one learning item of the roadmap
type Concept struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	DocURL      string `json:"doc_url" yaml:"doc_url"`
	VideoURL    string `json:"video_url,omitempty" yaml:"video_url,omitempty"` // YouTube id
	Label       Label  `json:"label" yaml:"label"`
}
