package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Paths locates the three catalog files. JSON files are accepted since JSON
// is a subset of YAML.
type Paths struct {
	Mods         string
	Bases        string
	Descriptions string
}

// LoadModifiers reads a map of modifier key to ModifierRecord from path.
//
// Precondition: path is a readable YAML or JSON file.
// Postcondition: returns the decoded records or an error naming path.
func LoadModifiers(path string) (map[string]ModifierRecord, error) {
	var out map[string]ModifierRecord
	if err := decodeFile(path, &out); err != nil {
		return nil, fmt.Errorf("LoadModifiers: %w", err)
	}
	return out, nil
}

// LoadBases reads a map of base key to BaseRecord from path.
//
// Precondition: path is a readable YAML or JSON file.
// Postcondition: returns the decoded records or an error naming path.
func LoadBases(path string) (map[string]BaseRecord, error) {
	var out map[string]BaseRecord
	if err := decodeFile(path, &out); err != nil {
		return nil, fmt.Errorf("LoadBases: %w", err)
	}
	return out, nil
}

// LoadDescriptions reads a list of DescriptionRecords from path.
//
// Precondition: path is a readable YAML or JSON file.
// Postcondition: returns the decoded records or an error naming path.
func LoadDescriptions(path string) ([]DescriptionRecord, error) {
	var out []DescriptionRecord
	if err := decodeFile(path, &out); err != nil {
		return nil, fmt.Errorf("LoadDescriptions: %w", err)
	}
	return out, nil
}

// Load reads all three catalog files and builds the Catalog.
//
// Postcondition: returns a fully resolved Catalog or a non-nil error. Any
// error here is fatal to startup.
func Load(p Paths) (*Catalog, error) {
	mods, err := LoadModifiers(p.Mods)
	if err != nil {
		return nil, err
	}
	bases, err := LoadBases(p.Bases)
	if err != nil {
		return nil, err
	}
	descs, err := LoadDescriptions(p.Descriptions)
	if err != nil {
		return nil, err
	}
	return Build(mods, bases, descs)
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("cannot parse file %q: %w", path, err)
	}
	return nil
}
