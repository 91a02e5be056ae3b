package cells

import (
	"fmt"

	"github.com/reusee/cellbook/depends"
)

const (
	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// PromptConfig holds the settings of a prompt cell.
type PromptConfig struct {
	Model       string
	Temperature float64
	// ResponseName is optional. Empty means a name derived from the cell position.
	ResponseName string
}

func NewPromptConfig(model string, temperature float64, responseName string) (PromptConfig, error) {
	config := PromptConfig{
		Model:        model,
		Temperature:  temperature,
		ResponseName: responseName,
	}
	if err := config.Validate(); err != nil {
		return PromptConfig{}, err
	}
	return config, nil
}

func (p PromptConfig) Validate() error {
	// also rejects NaN
	if !(p.Temperature >= MinTemperature && p.Temperature <= MaxTemperature) {
		return fmt.Errorf("%w: must be between %.1f and %.1f, got %v",
			ErrInvalidTemperature, MinTemperature, MaxTemperature, p.Temperature)
	}
	if p.ResponseName != "" && !depends.IsIdentifier(p.ResponseName) {
		return fmt.Errorf("%w: %q is not a valid identifier", ErrInvalidResponseName, p.ResponseName)
	}
	return nil
}

// ResponseName picks where a prompt response is stored: the configured
// name, then the cell position, then the cell id.
func ResponseName(config PromptConfig, index int, id string) string {
	if config.ResponseName != "" {
		return config.ResponseName
	}
	if index >= 0 {
		return fmt.Sprintf("response_%d", index)
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return "response_" + id
}
