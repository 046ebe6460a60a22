package config

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCategoriesFile is the embedded palette used when no file is given.
const DefaultCategoriesFile = "categories.yaml"

//go:embed *.yaml
var DefaultsFS embed.FS

// Load returns the contents of path, or of the embedded default named
// DefaultCategoriesFile when path is empty.
func Load(path string) ([]byte, error) {
	if path == "" {
		return DefaultsFS.ReadFile(DefaultCategoriesFile)
	}
	return os.ReadFile(path)
}

func LoadSpec[T any](path string) (T, error) {
	var zero T
	name := path
	if name == "" {
		name = "embedded " + DefaultCategoriesFile
	}
	data, err := Load(path)
	if err != nil {
		return zero, fmt.Errorf("config: load %s: %w", name, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("config: unmarshal %s: %w", name, err)
	}

	return spec, nil
}
