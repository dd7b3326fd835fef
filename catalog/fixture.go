package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed norwegian_crops.yaml
var norwegianCrops []byte

type fixtureFile struct {
	Crops []Crop `yaml:"crops"`
}

// LoadDefault builds the catalog from the embedded Norwegian crop fixture.
func LoadDefault() (*Catalog, error) {
	return load(norwegianCrops)
}

// LoadFile builds the catalog from an alternate fixture on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read crop fixture: %w", err)
	}
	return load(data)
}

func load(data []byte) (*Catalog, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse crop fixture: %w", err)
	}
	if len(f.Crops) == 0 {
		return nil, fmt.Errorf("%w: crop fixture has no crops", ErrInvalidInput)
	}
	return New(f.Crops)
}
