package generators

type ChatCompletionRequest struct {
	Model               string                  `json:"model"`
	Messages            []ChatCompletionMessage `json:"messages"`
	Stream              bool                    `json:"stream"`
	MaxCompletionTokens int                     `json:"max_completion_tokens,omitempty"`
	Temperature         *float64                `json:"temperature,omitempty"`
	Usage               *UsageOptions           `json:"usage,omitempty"`
}

type UsageOptions struct {
	Include bool `json:"include"`
}

type ChatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionStreamResponse struct {
	Choices []ChatCompletionStreamChoice `json:"choices"`
	Usage   *Usage                       `json:"usage,omitempty"`
	Error   *APIError                    `json:"error,omitempty"`
}

type ChatCompletionStreamChoice struct {
	Delta        ChatCompletionStreamChoiceDelta `json:"delta"`
	FinishReason string                          `json:"finish_reason"`
}

type ChatCompletionStreamChoiceDelta struct {
	Content          string `json:"content,omitempty"`
	Role             string `json:"role,omitempty"`
	ReasoningContent string `json:"reasoning_content,omitempty"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

type ModelList struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type ErrorResponse struct {
	Error *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code           any     `json:"code,omitempty"`
	Message        string  `json:"message,omitempty"`
	Param          *string `json:"param,omitempty"`
	Type           string  `json:"type,omitempty"`
	HTTPStatusCode int     `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}
