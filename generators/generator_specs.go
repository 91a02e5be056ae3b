package generators

import (
	"fmt"
	"strings"
	"sync"

	"github.com/reusee/cellbook/configs"
	"github.com/reusee/cellbook/vars"
)

// GeneratorSpec is a named endpoint from the `generators` config list.
type GeneratorSpec struct {
	Name string `json:"name"`
	Type string `json:"type"`
	GeneratorArgs
}

type GetGeneratorSpecs func() ([]GeneratorSpec, error)

func (Module) GetGeneratorSpecs(
	loader configs.Loader,
) GetGeneratorSpecs {
	return sync.OnceValues(func() (ret []GeneratorSpec, err error) {
		for specs, err := range configs.All[[]GeneratorSpec](loader, "generators") {
			if err != nil {
				return nil, err
			}
			ret = append(ret, specs...)
		}
		return
	})
}

// ProviderSpec selects a provider by type tag. Type may also name an
// entry of the `generators` config list.
type ProviderSpec struct {
	Type    string `json:"type"`
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
	Model   string `json:"model,omitempty"`
}

// String omits the api key.
func (p ProviderSpec) String() string {
	ret := p.Type
	if p.BaseURL != "" {
		ret += " " + p.BaseURL
	}
	if p.Model != "" {
		ret += " " + p.Model
	}
	return ret
}

type NewGenerator func(spec ProviderSpec) (Generator, error)

func (Module) NewGenerator(
	newOpenAI NewOpenAI,
	newOpenRouter NewOpenRouter,
	newDeepseek NewDeepseek,
	newOllama NewOllama,
	openAIKey OpenAIAPIKey,
	getSpecs GetGeneratorSpecs,
) NewGenerator {

	var build func(typ string, args GeneratorArgs, depth int) (Generator, error)
	build = func(typ string, args GeneratorArgs, depth int) (Generator, error) {
		var ret *OpenAI
		switch strings.ToLower(typ) {

		case "", "mock":
			return Mock{}, nil

		case "openai", "open-ai", "open_ai":
			args.BaseURL = vars.FirstNonZero(args.BaseURL, OpenAIBaseURL)
			ret = newOpenAI(args, vars.FirstNonZero(args.APIKey, string(openAIKey)))

		case "openrouter", "open-router", "open_router":
			ret = newOpenRouter(args)

		case "deepseek":
			ret = newDeepseek(args)

		case "ollama":
			return newOllama(args), nil

		default:
			// user-defined
			if depth > 0 {
				return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, typ)
			}
			specs, err := getSpecs()
			if err != nil {
				return nil, err
			}
			for _, spec := range specs {
				if spec.Name != typ {
					continue
				}
				specArgs := spec.GeneratorArgs
				specArgs.APIKey = vars.FirstNonZero(args.APIKey, specArgs.APIKey)
				specArgs.BaseURL = vars.FirstNonZero(args.BaseURL, specArgs.BaseURL)
				specArgs.Model = vars.FirstNonZero(args.Model, specArgs.Model)
				return build(spec.Type, specArgs, depth+1)
			}
			return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, typ)
		}

		if ret.apiKey == "" {
			return nil, fmt.Errorf("%w: %s", ErrNoAPIKey, typ)
		}
		return ret, nil
	}

	return func(spec ProviderSpec) (Generator, error) {
		return build(spec.Type, GeneratorArgs{
			BaseURL: spec.BaseURL,
			APIKey:  spec.APIKey,
			Model:   spec.Model,
		}, 0)
	}
}
