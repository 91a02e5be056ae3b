package generators

import (
	"context"
	"sync"

	"github.com/reusee/cellbook/logs"
)

// Providers holds the process-wide generator selection. A new selection
// applies to later calls only.
type Providers struct {
	mu           sync.Mutex
	current      Generator
	spec         ProviderSpec
	newGenerator NewGenerator
	logger       logs.Logger
}

func (Module) Providers(
	newGenerator NewGenerator,
	defaultSpec DefaultProviderSpec,
	logger logs.Logger,
) *Providers {
	return &Providers{
		spec:         ProviderSpec(defaultSpec),
		newGenerator: newGenerator,
		logger:       logger,
	}
}

// Current resolves the selected generator on first use. A default
// provider that cannot be built falls back to Mock.
func (p *Providers) Current(ctx context.Context) Generator {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil {
		return p.current
	}
	g, err := p.newGenerator(p.spec)
	if err != nil {
		p.logger.WarnContext(ctx, "provider unavailable, using mock",
			"spec", p.spec.String(),
			"error", err,
		)
		p.spec = ProviderSpec{Type: "mock"}
		g = Mock{}
	}
	p.current = g
	return g
}

// Configure builds and selects a provider. On error the selection is unchanged.
func (p *Providers) Configure(ctx context.Context, spec ProviderSpec) error {
	g, err := p.newGenerator(spec)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = g
	p.spec = spec
	p.logger.InfoContext(ctx, "provider configured",
		"spec", spec.String(),
	)
	return nil
}

// Set selects an already built generator.
func (p *Providers) Set(g Generator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = g
	p.spec = ProviderSpec{Type: "custom"}
}

func (p *Providers) Spec() ProviderSpec {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.spec
}

// Generate calls the current generator.
func (p *Providers) Generate(ctx context.Context, prompt string, args GenerateArgs) (string, error) {
	return p.Current(ctx).Generate(ctx, prompt, args)
}

func (p *Providers) Models(ctx context.Context) ([]string, error) {
	return p.Current(ctx).Models(ctx)
}

var _ Generator = new(Providers)
