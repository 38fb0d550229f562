package agent

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/pkg/errors"
)

const extractorSystemPrompt = `You read rendered web page text and extract structured records from it.
Respond with a single JSON object and nothing else. If the page contains no
matching records, respond with an empty object {}. Only report values that
literally appear in the page text; never fabricate ids, URLs or counts.`

// PageExtractor turns rendered page text into a structured JSON payload.
type PageExtractor interface {
	Extract(ctx context.Context, objective, pageText string) (json.RawMessage, error)
}

// OpenAIExtractor implements PageExtractor with a chat completion.
type OpenAIExtractor struct {
	client  openai.Client // NewClient returns Client (not *Client)
	model   openai.ChatModel
	timeout time.Duration
}

func NewOpenAIExtractor(apiKey, model string, timeout time.Duration) (*OpenAIExtractor, error) {
	if apiKey == "" {
		return nil, errors.New("openai API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &OpenAIExtractor{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   openai.ChatModel(model),
		timeout: timeout,
	}, nil
}

// Pages longer than this are truncated before being sent; the records of
// interest are at the top of search results anyway.
const maxPageChars = 60000

func (e *OpenAIExtractor) Extract(ctx context.Context, objective, pageText string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if len(pageText) > maxPageChars {
		pageText = pageText[:maxPageChars]
	}

	response, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: e.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(extractorSystemPrompt),
			openai.UserMessage(objective + "\n\n--- PAGE TEXT ---\n" + pageText),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "page extraction call failed")
	}
	if len(response.Choices) == 0 {
		return nil, errors.New("page extraction returned no choices")
	}

	content := strings.TrimSpace(response.Choices[0].Message.Content)
	if !json.Valid([]byte(content)) {
		return nil, errors.Errorf("page extraction returned invalid JSON: %.80s", content)
	}
	return json.RawMessage(content), nil
}
