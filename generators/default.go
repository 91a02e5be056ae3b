package generators

import (
	"os"

	"github.com/reusee/cellbook/cmds"
	"github.com/reusee/cellbook/configs"
	"github.com/reusee/cellbook/logs"
	"github.com/reusee/cellbook/vars"
)

var providerFlag = cmds.Var[string]("-provider", "default provider: mock, openai, openrouter, deepseek, ollama or a configured name")

// DefaultProviderSpec is the provider used until Providers.Configure is called.
type DefaultProviderSpec ProviderSpec

func (Module) DefaultProviderSpec(
	loader configs.Loader,
	logger logs.Logger,
) (ret DefaultProviderSpec) {
	defer func() {
		logger.Info("default provider", "spec", ProviderSpec(ret).String())
	}()
	spec := configs.First[ProviderSpec](loader, "provider")
	if *providerFlag != "" && *providerFlag != spec.Type {
		// config fields belong to another provider
		spec = ProviderSpec{
			Type: *providerFlag,
		}
	}
	spec.Type = vars.FirstNonZero(
		spec.Type,
		os.Getenv("CELLBOOK_PROVIDER"),
		"mock",
	)
	return DefaultProviderSpec(spec)
}
