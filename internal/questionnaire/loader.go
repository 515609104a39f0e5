// Package questionnaire loads questionnaire definitions from YAML and lints
// them for configuration errors before a session runs.
package questionnaire

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/themobileprof/formpilot/pkg/models"
)

// LoadFromFile reads and parses a questionnaire YAML file
func LoadFromFile(path string) (*models.Questionnaire, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questionnaire file: %w", err)
	}
	return Parse(data)
}

// Parse parses questionnaire YAML
func Parse(data []byte) (*models.Questionnaire, error) {
	var q models.Questionnaire
	if err := yaml.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("failed to parse questionnaire YAML: %w", err)
	}
	return &q, nil
}

// LoadDir loads every .yaml/.yml questionnaire in a directory
func LoadDir(dir string) ([]*models.Questionnaire, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read questionnaire directory: %w", err)
	}

	var loaded []*models.Questionnaire
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		q, err := LoadFromFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", entry.Name(), err)
		}
		loaded = append(loaded, q)
	}

	return loaded, nil
}
