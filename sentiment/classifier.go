package sentiment

import (
	"context"
	"strings"

	"github.com/moodfeed/tslamood/model"
	Logger "github.com/moodfeed/tslamood/utils/log"
)

// Keyword classification below this confidence defers to the LLM.
const keywordConfidenceFloor = 0.7

// keywordConfidence is capped so a keyword match never claims certainty.
const keywordConfidenceCap = 0.95

// LLMClassifier is the fallback for texts keywords cannot place.
type LLMClassifier interface {
	ClassifyText(ctx context.Context, text string) (*model.Classification, error)
}

// Classifier assigns each text one taxonomy category. Keywords decide the
// clear-cut cases for free; the LLM breaks ties on the rest.
type Classifier struct {
	llm LLMClassifier
}

func NewClassifier(llm LLMClassifier) *Classifier {
	return &Classifier{llm: llm}
}

func (c *Classifier) Classify(ctx context.Context, text string) (*model.Classification, error) {
	if keyword := classifyByKeywords(text); keyword.Confidence >= keywordConfidenceFloor {
		return keyword, nil
	}

	if c.llm == nil {
		// Without an LLM the best keyword guess stands, low confidence
		// and all.
		return classifyByKeywords(text), nil
	}

	classification, err := c.llm.ClassifyText(ctx, text)
	if err != nil {
		Logger.Log.Warnf("llm classification failed, falling back to keywords: %v", err)
		return classifyByKeywords(text), nil
	}
	classification.Method = model.ClassifyMethodLLM
	return classification, nil
}

// classifyByKeywords scores each category by keyword hits. Confidence is the
// winning category's share of all hits, so a text that matches several
// categories scores low and gets escalated.
func classifyByKeywords(text string) *model.Classification {
	lowered := strings.ToLower(text)

	hits := map[string]int{}
	total := 0
	for category, keywords := range categoryKeywords {
		for _, kw := range keywords {
			n := strings.Count(lowered, kw)
			hits[category] += n
			total += n
		}
	}

	if total == 0 {
		return &model.Classification{
			Category:   CategoryMarket,
			Confidence: 0,
			Method:     model.ClassifyMethodKeyword,
		}
	}

	best := ""
	bestHits := 0
	// Iterate in declared order so ties resolve deterministically.
	for _, category := range Categories() {
		if hits[category] > bestHits {
			best = category
			bestHits = hits[category]
		}
	}

	confidence := float64(bestHits) / float64(total)
	if confidence > keywordConfidenceCap {
		confidence = keywordConfidenceCap
	}
	return &model.Classification{
		Category:   best,
		Confidence: confidence,
		Method:     model.ClassifyMethodKeyword,
	}
}
