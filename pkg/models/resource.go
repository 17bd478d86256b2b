package models

// ResourceCategory groups resource hub links
type ResourceCategory string

const (
	CategoryDocumentation ResourceCategory = "Documentation"
	CategoryBooks         ResourceCategory = "Books"
	CategoryTools         ResourceCategory = "Tools"
)

// ResourceLink is an entry of the resource hub
type ResourceLink struct {
	Name     string           `json:"name" yaml:"name"`
	URL      string           `json:"url" yaml:"url"`
	Category ResourceCategory `json:"category" yaml:"category"`
}
