package generators

import (
	"context"
)

// Mock answers without calling any service.
type Mock struct{}

var _ Generator = Mock{}

const mockPromptChars = 50

func (Mock) Generate(ctx context.Context, prompt string, args GenerateArgs) (string, error) {
	runes := []rune(prompt)
	if len(runes) > mockPromptChars {
		runes = runes[:mockPromptChars]
	}
	return "Mock response to: " + string(runes) + "...", nil
}

func (Mock) Models(ctx context.Context) ([]string, error) {
	return []string{"mock"}, nil
}
