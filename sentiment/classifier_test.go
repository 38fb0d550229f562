package sentiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodfeed/tslamood/model"
)

func TestClassifyByKeywordsClearCase(t *testing.T) {
	c := classifyByKeywords("Tesla Q2 earnings beat: revenue and deliveries above guidance, gross margin steady")

	assert.Equal(t, CategoryFinancial, c.Category)
	assert.GreaterOrEqual(t, c.Confidence, 0.7)
	assert.Equal(t, model.ClassifyMethodKeyword, c.Method)
}

func TestClassifyByKeywordsConfidenceCapped(t *testing.T) {
	c := classifyByKeywords("earnings earnings earnings earnings earnings")

	assert.Equal(t, CategoryFinancial, c.Category)
	assert.LessOrEqual(t, c.Confidence, 0.95)
}

func TestClassifyByKeywordsNoHits(t *testing.T) {
	c := classifyByKeywords("a completely unrelated text about gardening")

	assert.Equal(t, 0.0, c.Confidence)
}

type fakeLLMClassifier struct {
	result *model.Classification
	err    error
	called bool
}

func (f *fakeLLMClassifier) ClassifyText(ctx context.Context, text string) (*model.Classification, error) {
	f.called = true
	return f.result, f.err
}

func TestClassifierShortCircuitsOnConfidentKeywords(t *testing.T) {
	llm := &fakeLLMClassifier{}
	c := NewClassifier(llm)

	got, err := c.Classify(context.Background(),
		"Tesla Q2 earnings beat: revenue and deliveries above guidance, eps up")
	require.NoError(t, err)

	assert.Equal(t, CategoryFinancial, got.Category)
	assert.False(t, llm.called, "confident keyword match must not call the llm")
}

func TestClassifierEscalatesAmbiguousText(t *testing.T) {
	llm := &fakeLLMClassifier{result: &model.Classification{
		Category: CategoryPolicy, Confidence: 0.8,
	}}
	c := NewClassifier(llm)

	// Mentions spread across categories keep keyword confidence low.
	got, err := c.Classify(context.Background(),
		"Musk comments on the recall as the stock falls and a new factory opens")
	require.NoError(t, err)

	assert.True(t, llm.called)
	assert.Equal(t, CategoryPolicy, got.Category)
	assert.Equal(t, model.ClassifyMethodLLM, got.Method)
}

func TestClassifierFallsBackWhenLLMFails(t *testing.T) {
	llm := &fakeLLMClassifier{err: assert.AnError}
	c := NewClassifier(llm)

	got, err := c.Classify(context.Background(),
		"Musk comments on the recall as the stock falls and a new factory opens")
	require.NoError(t, err)

	assert.True(t, llm.called)
	assert.Equal(t, model.ClassifyMethodKeyword, got.Method)
}
