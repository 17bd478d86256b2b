package roadmap

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/example/roadmap/pkg/models"
)

//go:embed default_roadmap.yaml
var defaultRoadmap []byte

// Default returns the roadmap shipped with the binary
func Default() (models.Roadmap, error) {
	return Parse(defaultRoadmap)
}

// Load reads a roadmap YAML file, or the default roadmap when path is empty
func Load(path string) (models.Roadmap, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Roadmap{}, fmt.Errorf("error reading roadmap file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates roadmap YAML
func Parse(data []byte) (models.Roadmap, error) {
	var r models.Roadmap
	if err := yaml.Unmarshal(data, &r); err != nil {
		return models.Roadmap{}, fmt.Errorf("error parsing roadmap: %w", err)
	}
	if err := Validate(r); err != nil {
		return models.Roadmap{}, err
	}
	return r, nil
}

// Save writes the roadmap as YAML, creating parent directories
func Save(path string, r models.Roadmap) error {
	if err := Validate(r); err != nil {
		return err
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("error marshaling roadmap: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating roadmap directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing roadmap file: %w", err)
	}
	return nil
}

// Validate checks that phase and concept ids are present and unique
// and that concept labels are known
func Validate(r models.Roadmap) error {
	phaseIDs := make(map[string]bool)
	conceptIDs := make(map[string]string)

	for i, p := range r.Phases {
		if p.ID == "" {
			return fmt.Errorf("phase %d has no id", i+1)
		}
		if phaseIDs[p.ID] {
			return fmt.Errorf("duplicate phase id %q", p.ID)
		}
		phaseIDs[p.ID] = true

		for j, c := range p.Concepts {
			if c.ID == "" {
				return fmt.Errorf("phase %q: concept %d has no id", p.ID, j+1)
			}
			if other, ok := conceptIDs[c.ID]; ok {
				return fmt.Errorf("concept id %q used in phases %q and %q", c.ID, other, p.ID)
			}
			conceptIDs[c.ID] = p.ID
			if c.Label != "" && !c.Label.Valid() {
				return fmt.Errorf("concept %q has unknown label %q", c.ID, c.Label)
			}
		}
	}
	return nil
}
