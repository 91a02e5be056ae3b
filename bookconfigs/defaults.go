package bookconfigs

import (
	"math"
	"os"
	"strconv"

	"github.com/reusee/cellbook/cmds"
	"github.com/reusee/cellbook/configs"
	"github.com/reusee/cellbook/vars"
)

const (
	FallbackModel       = "gpt-4"
	FallbackTemperature = 0.7
)

var (
	modelFlag       = cmds.Var[string]("-model", "default model of new prompt cells")
	temperatureFlag = cmds.Var[float64]("-temperature", "default temperature of new prompt cells")
	maxTokensFlag   = cmds.Var[int]("-max-tokens", "response token limit, 0 for none")
)

// DefaultModel is the model new prompt cells use.
type DefaultModel string

func (Module) DefaultModel(
	loader configs.Loader,
) DefaultModel {
	return vars.FirstNonZero(
		DefaultModel(*modelFlag),
		configs.First[DefaultModel](loader, "model"),
		DefaultModel(os.Getenv("CELLBOOK_MODEL")),
		FallbackModel,
	)
}

// DefaultTemperature is the sampling temperature new prompt cells use.
type DefaultTemperature float64

func (Module) DefaultTemperature(
	loader configs.Loader,
) DefaultTemperature {
	var env float64
	if s := os.Getenv("CELLBOOK_TEMPERATURE"); s != "" {
		env, _ = strconv.ParseFloat(s, 64)
	}
	return vars.FirstNonZero(
		DefaultTemperature(*temperatureFlag),
		configs.First[DefaultTemperature](loader, "temperature"),
		DefaultTemperature(env),
		FallbackTemperature,
	)
}

// MaxTokens caps generated tokens per prompt cell. Zero means unlimited.
type MaxTokens int

func (Module) MaxTokens(
	loader configs.Loader,
) MaxTokens {
	maxTokens := math.MaxInt

	// flag
	if *maxTokensFlag != 0 {
		maxTokens = min(maxTokens, *maxTokensFlag)
	}

	// config
	if n := configs.First[int](loader, "max_tokens"); n != 0 {
		maxTokens = min(maxTokens, n)
	}

	if maxTokens == math.MaxInt {
		return 0
	}
	return MaxTokens(maxTokens)
}
