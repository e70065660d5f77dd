package relevance

import (
	"context"
	"log"

	"ai-receptionist-be/pkg/retrieval"
)

// Tier is the coarse relevance bucket of a query against the corpus.
type Tier string

const (
	TierHighlyRelevant   Tier = "highly_relevant"
	TierSomewhatRelevant Tier = "somewhat_relevant"
	TierNotRelevant      Tier = "not_relevant"
)

// Thresholds are distance bounds: Tight is the stricter (smaller) bound,
// Loose the wider one. Values are corpus and embedding-model dependent and
// come from configuration.
type Thresholds struct {
	Tight float64
	Loose float64
}

// Classifier buckets a query by the distance of its single nearest evidence
// chunk.
type Classifier struct {
	searcher   retrieval.Searcher
	thresholds Thresholds
	logger     *log.Logger
}

// NewClassifier creates a new relevance classifier
func NewClassifier(searcher retrieval.Searcher, thresholds Thresholds, logger *log.Logger) *Classifier {
	return &Classifier{
		searcher:   searcher,
		thresholds: thresholds,
		logger:     logger,
	}
}

// Classify returns the tier and the nearest-chunk distance. When retrieval
// fails or the corpus is empty the query is NotRelevant with no score.
//
// Boundaries: distance < Tight is highly relevant; exactly Tight falls into
// somewhat relevant (half-open on the tight side); Loose and beyond is not
// relevant.
func (c *Classifier) Classify(ctx context.Context, query string) (Tier, *float64) {
	chunks, err := c.searcher.TopK(ctx, query, 1)
	if err != nil {
		c.logger.Printf("[WARN] Similarity check failed: %v", err)
		return TierNotRelevant, nil
	}
	if len(chunks) == 0 {
		return TierNotRelevant, nil
	}

	score := chunks[0].Score
	switch {
	case score < c.thresholds.Tight:
		return TierHighlyRelevant, &score
	case score < c.thresholds.Loose:
		return TierSomewhatRelevant, &score
	default:
		return TierNotRelevant, &score
	}
}
