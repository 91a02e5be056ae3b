package generators

// GeneratorArgs configures an OpenAI compatible endpoint.
type GeneratorArgs struct {
	BaseURL           string `json:"base_url"`
	APIKey            string `json:"api_key"`
	Model             string `json:"model"`
	MaxGenerateTokens *int   `json:"max_generate_tokens"`
	IsOpenRouter      bool   `json:"is_open_router"`
}
