// Package news fetches startup/tech articles, scores them for
// sentiment, persists them best-effort, and serves a replace-on-refresh
// in-memory cache.
package news

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"founderhq_market/metrics"
	"founderhq_market/models"
	"founderhq_market/utils"
)

const summaryMaxLen = 200

// ArticleWriter is the persistence capability the refresh consumes.
type ArticleWriter interface {
	InsertArticle(ctx context.Context, article models.Article) error
}

// Scorer computes a polarity score and label for article text.
type Scorer interface {
	Analyze(text string) (float64, string)
}

type Feed struct {
	mu    sync.RWMutex
	cache []models.Article

	feedURL     string
	timeout     time.Duration
	minArticles int
	maxArticles int

	parser *gofeed.Parser
	scorer Scorer
	store  ArticleWriter
	logger *zap.SugaredLogger

	now func() time.Time
}

func NewFeed(feedURL string, timeout time.Duration, minArticles, maxArticles int,
	scorer Scorer, store ArticleWriter, logger *zap.SugaredLogger) *Feed {
	return &Feed{
		feedURL:     feedURL,
		timeout:     timeout,
		minArticles: minArticles,
		maxArticles: maxArticles,
		parser:      gofeed.NewParser(),
		scorer:      scorer,
		store:       store,
		logger:      logger,
		now:         time.Now,
	}
}

// Refresh fetches recent articles, falling back to the built-in mock
// set on any failure or an undersized result. Each article is scored,
// stamped, and persisted best-effort; the cache is fully replaced with
// the processed batch.
func (f *Feed) Refresh(ctx context.Context) {
	items, err := f.fetch(ctx)
	if err != nil {
		f.logger.Warnw("News fetch failed, using mock articles", "error", err)
		metrics.IncrementFetchFailures()
		items = nil
	}
	if len(items) < f.minArticles {
		if err == nil {
			f.logger.Infow("News fetch returned too few items, using mock articles",
				"count", len(items), "min", f.minArticles)
			metrics.IncrementFetchFailures()
		}
		items = append([]rawArticle(nil), mockArticles...)
	}
	if len(items) > f.maxArticles {
		items = items[:f.maxArticles]
	}

	scrapedAt := f.now().UTC()
	processed := make([]models.Article, 0, len(items))
	for _, item := range items {
		score, label := f.scorer.Analyze(item.Title + " " + item.Summary)
		article := models.Article{
			ID:             uuid.New().String(),
			Title:          item.Title,
			URL:            item.URL,
			Source:         item.Source,
			Summary:        item.Summary,
			ImageURL:       item.ImageURL,
			SentimentScore: score,
			SentimentLabel: label,
			PublishedAt:    scrapedAt,
			ScrapedAt:      scrapedAt,
		}

		if f.store != nil {
			if err := f.store.InsertArticle(ctx, article); err != nil {
				f.logger.Warnw("Failed to store article", "title", article.Title, "error", err)
				metrics.IncrementStoreErrors()
			}
		}
		processed = append(processed, article)
		metrics.IncrementArticles()
	}

	f.mu.Lock()
	f.cache = processed
	f.mu.Unlock()

	f.logger.Infow("News cache refreshed", "articles", len(processed))
}

// Cached returns the current cache, or the mock set when no refresh
// has populated it yet. limit <= 0 means no truncation.
func (f *Feed) Cached(limit int) []models.Article {
	f.mu.RLock()
	articles := f.cache
	f.mu.RUnlock()

	if len(articles) == 0 {
		articles = mockAsArticles()
	} else {
		articles = append([]models.Article(nil), articles...)
	}
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles
}

// CacheSize reports the number of cached articles for health checks.
func (f *Feed) CacheSize() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.cache)
}

// fetch pulls the RSS feed with a hard deadline and a short retry
// policy for transient failures.
func (f *Feed) fetch(ctx context.Context) ([]rawArticle, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var feed *gofeed.Feed
	operation := func() error {
		var err error
		feed, err = f.parser.ParseURLWithContext(f.feedURL, ctx)
		return err
	}
	if err := backoff.Retry(operation, backoff.WithContext(utils.NewFetchBackoff(), ctx)); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", f.feedURL, err)
	}

	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = "YourStory"
	}

	items := make([]rawArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		items = append(items, rawArticle{
			Title:    strings.TrimSpace(item.Title),
			URL:      strings.TrimSpace(item.Link),
			Source:   source,
			Summary:  truncate(stripHTML(item.Description), summaryMaxLen),
			ImageURL: itemImage(item),
		})
	}
	return items, nil
}

func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}

// stripHTML flattens markup in RSS descriptions to plain text.
func stripHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// mockAsArticles shapes the fallback set for direct serving when the
// cache has never been filled.
func mockAsArticles() []models.Article {
	articles := make([]models.Article, 0, len(mockArticles))
	for i, item := range mockArticles {
		articles = append(articles, models.Article{
			ID:             fmt.Sprintf("mock-%d", i+1),
			Title:          item.Title,
			URL:            item.URL,
			Source:         item.Source,
			Summary:        item.Summary,
			ImageURL:       item.ImageURL,
			SentimentScore: 0,
			SentimentLabel: "neutral",
		})
	}
	return articles
}
