package defs

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a Definitions from its yaml form. The caller decides
// when to Validate.
func LoadYAML(path string) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d := &Definitions{}
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, err
	}
	return d, nil
}

func SaveYAML(path string, d *Definitions) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
