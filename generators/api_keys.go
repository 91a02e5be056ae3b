package generators

import (
	"os"

	"github.com/reusee/cellbook/configs"
	"github.com/reusee/cellbook/vars"
)

type (
	OpenAIAPIKey     string
	OpenRouterAPIKey string
	DeepseekAPIKey   string
)

func (Module) OpenAIAPIKey(
	loader configs.Loader,
) OpenAIAPIKey {
	return vars.FirstNonZero(
		configs.First[OpenAIAPIKey](loader, "openai_api_key"),
		OpenAIAPIKey(os.Getenv("OPENAI_API_KEY")),
	)
}

func (Module) OpenRouterAPIKey(
	loader configs.Loader,
) OpenRouterAPIKey {
	return vars.FirstNonZero(
		configs.First[OpenRouterAPIKey](loader, "openrouter_api_key"),
		OpenRouterAPIKey(os.Getenv("OPEN_ROUTER_API_KEY")),
		OpenRouterAPIKey(os.Getenv("OPENROUTER_API_KEY")),
	)
}

func (Module) DeepseekAPIKey(
	loader configs.Loader,
) DeepseekAPIKey {
	return vars.FirstNonZero(
		configs.First[DeepseekAPIKey](loader, "deepseek_api_key"),
		DeepseekAPIKey(os.Getenv("DEEPSEEK_API_KEY")),
	)
}
