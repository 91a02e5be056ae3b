package generators

// OpenAIError carries the request that failed. API keys travel in headers,
// never in the request body.
type OpenAIError struct {
	Err     error
	Request ChatCompletionRequest
}

var _ error = OpenAIError{}

func (o OpenAIError) Error() string {
	return o.Err.Error()
}

func (o OpenAIError) Unwrap() error {
	return o.Err
}
