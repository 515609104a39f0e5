// Package fixtures ships the built-in demo questionnaire used by -init and
// by tests that need a realistic definition.
package fixtures

import (
	_ "embed"
	"fmt"

	"github.com/themobileprof/formpilot/internal/questionnaire"
	"github.com/themobileprof/formpilot/pkg/models"
)

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the built-in demo questionnaire
func Demo() (*models.Questionnaire, error) {
	q, err := questionnaire.Parse(demoYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse demo questionnaire: %w", err)
	}
	return q, nil
}
