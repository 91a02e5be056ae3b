package cells

import (
	"github.com/reusee/cellbook/bookconfigs"
	"github.com/reusee/cellbook/generators"
	"github.com/reusee/cellbook/sandboxes"
	"github.com/reusee/cellbook/vars"
)

// NewPromptCell creates prompt cells. Empty model and nil temperature take
// the configured defaults.
type NewPromptCell func(content string, model string, temperature *float64, responseName string) (*Cell, error)

func (Module) NewPromptCell(
	defaultModel bookconfigs.DefaultModel,
	defaultTemperature bookconfigs.DefaultTemperature,
) NewPromptCell {
	return func(content string, model string, temperature *float64, responseName string) (*Cell, error) {
		if model == "" {
			model = string(defaultModel)
		}
		t := float64(defaultTemperature)
		if temperature != nil {
			t = *temperature
		}
		config, err := NewPromptConfig(model, t, responseName)
		if err != nil {
			return nil, err
		}
		return NewPrompt(content, config)
	}
}

// MakeEnv builds the evaluation environment for a cell at index.
type MakeEnv func(index int) Env

func (Module) MakeEnv(
	engine sandboxes.Engine,
	providers *generators.Providers,
	maxTokens bookconfigs.MaxTokens,
) MakeEnv {
	return func(index int) Env {
		env := Env{
			Engine:    engine,
			Generator: providers,
			Index:     index,
		}
		if maxTokens > 0 {
			env.MaxTokens = vars.PtrTo(int(maxTokens))
		}
		return env
	}
}
