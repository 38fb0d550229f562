package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/pkg/errors"

	"github.com/moodfeed/tslamood/model"
)

// Scorer produces a market-impact read for one text.
type Scorer interface {
	ScoreText(ctx context.Context, text string) (*model.SentimentScore, error)
}

const classifySystemPrompt = `You categorize Tesla (TSLA) news into exactly one category.
Respond with a single JSON object: {"category": "<category>", "confidence": <0..1>, "rationale": "<one sentence>"}.
The category must be one of the provided list, verbatim.`

const scoreSystemPrompt = `You are a markets analyst reading Tesla (TSLA) coverage.
Given one news item or social post, respond with a single JSON object:
{"sentiment": <-1..1>, "impact": <1..5>, "confidence": <0..1>,
 "stance": "bullish"|"bearish"|"neutral", "rationale": "<one or two sentences>",
 "key_factors": ["<factor>", ...], "summary": "<one sentence>"}.
sentiment is the expected direction for the stock, impact is how much this
item alone could move it. Judge only what the text supports.`

// Texts longer than this are truncated before scoring; the lede carries the
// signal.
const maxAnalysisChars = 6000

// OpenAIAnalyzer implements both classification fallback and scoring on the
// chat completions API. Transient API failures are retried with exponential
// backoff before the caller sees an error.
type OpenAIAnalyzer struct {
	client  openai.Client // NewClient returns Client (not *Client)
	model   openai.ChatModel
	timeout time.Duration
}

func NewOpenAIAnalyzer(apiKey, chatModel string, timeout time.Duration) (*OpenAIAnalyzer, error) {
	if apiKey == "" {
		return nil, errors.New("openai API key is required")
	}
	if chatModel == "" {
		chatModel = "gpt-4o-mini"
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIAnalyzer{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   openai.ChatModel(chatModel),
		timeout: timeout,
	}, nil
}

func (a *OpenAIAnalyzer) ClassifyText(ctx context.Context, text string) (*model.Classification, error) {
	prompt := fmt.Sprintf("Categories:\n- %s\n\nText:\n%s",
		strings.Join(Categories(), "\n- "), truncate(text))

	raw, err := a.complete(ctx, classifySystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var classification model.Classification
	if err := json.Unmarshal(raw, &classification); err != nil {
		return nil, errors.Wrap(err, "undecodable classification response")
	}
	if !isKnownCategory(classification.Category) {
		return nil, errors.Errorf("model invented category %q", classification.Category)
	}
	if classification.Confidence < 0 {
		classification.Confidence = 0
	} else if classification.Confidence > 1 {
		classification.Confidence = 1
	}
	return &classification, nil
}

func (a *OpenAIAnalyzer) ScoreText(ctx context.Context, text string) (*model.SentimentScore, error) {
	raw, err := a.complete(ctx, scoreSystemPrompt, truncate(text))
	if err != nil {
		return nil, err
	}

	var score model.SentimentScore
	if err := json.Unmarshal(raw, &score); err != nil {
		return nil, errors.Wrap(err, "undecodable score response")
	}
	score.Clamp()
	return &score, nil
}

func (a *OpenAIAnalyzer) complete(ctx context.Context, system, user string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var raw json.RawMessage
	operation := func() error {
		response, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: a.model,
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(system),
				openai.UserMessage(user),
			},
			ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
			},
		})
		if err != nil {
			return err
		}
		if len(response.Choices) == 0 {
			return backoff.Permanent(errors.New("completion returned no choices"))
		}
		content := strings.TrimSpace(response.Choices[0].Message.Content)
		if !json.Valid([]byte(content)) {
			return errors.Errorf("completion returned invalid JSON: %.80s", content)
		}
		raw = json.RawMessage(content)
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, errors.Wrap(err, "completion call failed")
	}
	return raw, nil
}

func truncate(text string) string {
	if len(text) > maxAnalysisChars {
		return text[:maxAnalysisChars]
	}
	return text
}

func isKnownCategory(category string) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}
