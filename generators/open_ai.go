package generators

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/reusee/cellbook/cmds"
	"github.com/reusee/cellbook/debugs"
	"github.com/reusee/cellbook/logs"
	"github.com/reusee/cellbook/nets"
	"github.com/reusee/cellbook/vars"
	"github.com/reusee/dscope"
)

var (
	debugOpenAI = cmds.Switch("-debug-openai", "log provider requests and stream events")
	tapOpenAI   = cmds.Switch("-tap-openai", "open a repl on every provider request")
)

// OpenAI talks to an OpenAI compatible chat completion endpoint.
type OpenAI struct {
	args   GeneratorArgs
	apiKey string
	client nets.HTTPClient

	Logger dscope.Inject[logs.Logger]
	Tap    dscope.Inject[debugs.Tap]
}

var _ Generator = new(OpenAI)

func (o *OpenAI) Args() GeneratorArgs {
	return o.args
}

func (o *OpenAI) endpoint(path string) string {
	return strings.TrimSuffix(o.args.BaseURL, "/") + path
}

func (o *OpenAI) Generate(ctx context.Context, prompt string, args GenerateArgs) (string, error) {
	req := ChatCompletionRequest{
		Model: vars.FirstNonZero(args.Model, o.args.Model),
		Messages: []ChatCompletionMessage{
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Stream:      true,
		Temperature: vars.PtrTo(args.Temperature),
		MaxCompletionTokens: vars.FirstNonZero(
			vars.DerefOrZero(args.MaxTokens),
			vars.DerefOrZero(o.args.MaxGenerateTokens),
		),
	}
	if o.args.IsOpenRouter {
		req.Usage = &UsageOptions{
			Include: true,
		}
	}

	if *tapOpenAI {
		o.Tap()(ctx, "before chat completion", map[string]any{
			"request": req,
			"args":    o.args,
		})
	}

	o.Logger().InfoContext(ctx, "generating",
		"model", req.Model,
		"base_url", o.args.BaseURL,
	)

	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return "", wrap(err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint("/chat/completions"), bytes.NewReader(bodyBytes))
	if err != nil {
		return "", wrap(err)
	}
	o.setHeaders(httpReq)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", OpenAIError{
			Err:     err,
			Request: req,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", o.statusError(resp, req)
	}

	var text strings.Builder
	err = readEvents(resp.Body, func(data []byte) error {
		var event ChatCompletionStreamResponse
		if err := json.Unmarshal(data, &event); err != nil {
			return fmt.Errorf("decode stream event: %w", err)
		}
		if *debugOpenAI {
			o.Logger().InfoContext(ctx, "stream event",
				"event", event,
			)
		}
		if event.Error != nil {
			return OpenAIError{
				Err:     event.Error,
				Request: req,
			}
		}
		if event.Usage != nil {
			o.Logger().DebugContext(ctx, "usage",
				"prompt_tokens", event.Usage.PromptTokens,
				"completion_tokens", event.Usage.CompletionTokens,
			)
		}
		for _, choice := range event.Choices {
			text.WriteString(choice.Delta.Content)
			if choice.FinishReason == "error" {
				return errors.Join(errors.New("generation failed"), ErrRetryable)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return text.String(), nil
}

func (o *OpenAI) Models(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, o.endpoint("/models"), nil)
	if err != nil {
		return nil, wrap(err)
	}
	o.setHeaders(httpReq)
	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, wrap(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, o.statusError(resp, ChatCompletionRequest{})
	}
	var list ModelList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, wrap(err)
	}
	ret := make([]string, 0, len(list.Data))
	for _, model := range list.Data {
		ret = append(ret, model.ID)
	}
	return ret, nil
}

func (o *OpenAI) setHeaders(req *http.Request) {
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}
}

func (o *OpenAI) statusError(resp *http.Response, req ChatCompletionRequest) error {
	body, _ := io.ReadAll(resp.Body)
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == nil {
		err := fmt.Errorf("bad status: %d, body: %s", resp.StatusCode, string(body))
		if retryableStatus(resp.StatusCode) {
			return errors.Join(err, ErrRetryable)
		}
		return OpenAIError{
			Err:     err,
			Request: req,
		}
	}

	errResp.Error.HTTPStatusCode = resp.StatusCode
	if retryableStatus(resp.StatusCode) {
		return errors.Join(errResp.Error, ErrRetryable)
	}
	return OpenAIError{
		Err:     errResp.Error,
		Request: req,
	}
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

type NewOpenAI func(args GeneratorArgs, apiKey string) *OpenAI

func (Module) NewOpenAI(
	inject dscope.InjectStruct,
	client nets.HTTPClient,
) NewOpenAI {
	return func(args GeneratorArgs, apiKey string) *OpenAI {
		ret := &OpenAI{
			args:   args,
			client: client,
			apiKey: apiKey,
		}
		inject(&ret)
		return ret
	}
}
