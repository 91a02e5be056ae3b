package generators

import (
	"github.com/reusee/cellbook/vars"
)

const (
	OpenAIBaseURL     = "https://api.openai.com/v1"
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DeepseekBaseURL   = "https://api.deepseek.com"
	OllamaBaseURL     = "http://127.0.0.1:11434/v1"
)

type NewOpenRouter func(args GeneratorArgs) *OpenAI

func (Module) NewOpenRouter(
	newOpenAI NewOpenAI,
	apiKey OpenRouterAPIKey,
) NewOpenRouter {
	return func(args GeneratorArgs) *OpenAI {
		args.BaseURL = vars.FirstNonZero(args.BaseURL, OpenRouterBaseURL)
		args.IsOpenRouter = true
		return newOpenAI(
			args,
			vars.FirstNonZero(
				args.APIKey,
				string(apiKey),
			),
		)
	}
}

type NewDeepseek func(args GeneratorArgs) *OpenAI

func (Module) NewDeepseek(
	apiKey DeepseekAPIKey,
	newOpenAI NewOpenAI,
) NewDeepseek {
	return func(args GeneratorArgs) *OpenAI {
		args.BaseURL = vars.FirstNonZero(args.BaseURL, DeepseekBaseURL)
		return newOpenAI(
			args,
			vars.FirstNonZero(
				args.APIKey,
				string(apiKey),
			),
		)
	}
}

type NewOllama func(args GeneratorArgs) *OpenAI

func (Module) NewOllama(
	newOpenAI NewOpenAI,
) NewOllama {
	return func(args GeneratorArgs) *OpenAI {
		args.BaseURL = vars.FirstNonZero(args.BaseURL, OllamaBaseURL)
		return newOpenAI(args, args.APIKey)
	}
}
