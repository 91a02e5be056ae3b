package generators

import (
	"context"
	"errors"

	"github.com/reusee/e5"
)

var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrRetryable       = errors.New("retryable")
	ErrNoAPIKey        = errors.New("api key not found")
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string, args GenerateArgs) (string, error)
	Models(ctx context.Context) ([]string, error)
}

// GenerateArgs are the per-call settings of a prompt cell.
type GenerateArgs struct {
	Model       string
	Temperature float64
	MaxTokens   *int
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string, args GenerateArgs) (string, error)

var _ Generator = GeneratorFunc(nil)

func (g GeneratorFunc) Generate(ctx context.Context, prompt string, args GenerateArgs) (string, error) {
	return g(ctx, prompt, args)
}

func (g GeneratorFunc) Models(ctx context.Context) ([]string, error) {
	return nil, nil
}
