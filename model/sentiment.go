package model

// Classification is a document's assigned taxonomy category.
type Classification struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale,omitempty"`
	// Method records whether keywords alone decided the category or the
	// LLM was consulted.
	Method string `json:"method"`
}

const (
	ClassifyMethodKeyword = "keyword"
	ClassifyMethodLLM     = "llm"
)

// SentimentScore is the LLM's market-impact read of one document or post.
// Sentiment is in [-1, 1], Impact in [1, 5], Confidence in [0, 1].
type SentimentScore struct {
	Sentiment  float64  `json:"sentiment"`
	Impact     int      `json:"impact"`
	Confidence float64  `json:"confidence"`
	Stance     string   `json:"stance"`
	Rationale  string   `json:"rationale,omitempty"`
	KeyFactors []string `json:"key_factors,omitempty"`
	Summary    string   `json:"summary,omitempty"`
}

const (
	StanceBullish = "bullish"
	StanceBearish = "bearish"
	StanceNeutral = "neutral"
)

// Clamp forces every score field into its documented range. The model
// occasionally returns a 5.5 impact or a -1.2 sentiment; clamping beats
// rejecting a whole batch over one exuberant number.
func (s *SentimentScore) Clamp() {
	if s.Sentiment > 1 {
		s.Sentiment = 1
	} else if s.Sentiment < -1 {
		s.Sentiment = -1
	}
	if s.Impact > 5 {
		s.Impact = 5
	} else if s.Impact < 1 {
		s.Impact = 1
	}
	if s.Confidence > 1 {
		s.Confidence = 1
	} else if s.Confidence < 0 {
		s.Confidence = 0
	}
	switch s.Stance {
	case StanceBullish, StanceBearish, StanceNeutral:
	default:
		s.Stance = StanceNeutral
	}
}
