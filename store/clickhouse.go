// Package store persists sentiment-scored articles in ClickHouse.
// All operations run behind a circuit breaker so a dead store trips
// fast and the callers' fallback paths take over.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"founderhq_market/config"
	"founderhq_market/models"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS news_articles (
    id String,
    title String,
    url String,
    source String,
    summary String,
    image_url String,
    sentiment_score Float64,
    sentiment_label String,
    published_at DateTime,
    scraped_at DateTime
) ENGINE = MergeTree()
ORDER BY (scraped_at, id)
`

const recentArticlesSQL = `
SELECT id, title, url, source, summary, image_url,
       sentiment_score, sentiment_label, published_at, scraped_at
FROM news_articles
ORDER BY scraped_at DESC
LIMIT ?
`

type ArticleStore struct {
	conn    driver.Conn
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// NewArticleStore opens the ClickHouse connection and ensures the
// articles table exists. Schema setup failure is logged, not fatal:
// the service degrades to its in-memory fallbacks when the store is
// unreachable.
func NewArticleStore(cfg *config.Config, logger *zap.SugaredLogger) (*ArticleStore, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.ClickHouse.Host, cfg.ClickHouse.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.ClickHouse.Database,
			Username: cfg.ClickHouse.User,
			Password: cfg.ClickHouse.Password,
		},
		Protocol: clickhouse.Native,
		Debug:    cfg.ClickHouse.Debug,
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	s := &ArticleStore{
		conn:    conn,
		breaker: newBreaker(logger),
		timeout: cfg.ClickHouse.QueryTimeout,
		logger:  logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.conn.Exec(ctx, createTableSQL); err != nil {
		logger.Warnw("Failed to ensure news_articles table, store degraded", "error", err)
	}

	return s, nil
}

func newBreaker(logger *zap.SugaredLogger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "article-store",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Infow("Circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
	})
}

// InsertArticle stores a single article record.
func (s *ArticleStore) InsertArticle(ctx context.Context, article models.Article) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		batch, err := s.conn.PrepareBatch(ctx, "INSERT INTO news_articles")
		if err != nil {
			return nil, err
		}
		if err := batch.AppendStruct(&article); err != nil {
			return nil, err
		}
		return nil, batch.Send()
	})
	return err
}

// RecentArticles returns up to limit articles ordered by ingest time
// descending.
func (s *ArticleStore) RecentArticles(ctx context.Context, limit int) ([]models.Article, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		var articles []models.Article
		if err := s.conn.Select(ctx, &articles, recentArticlesSQL, limit); err != nil {
			return nil, err
		}
		return articles, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Article), nil
}

// Ping checks store reachability for health reporting.
func (s *ArticleStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.conn.Ping(ctx)
}

func (s *ArticleStore) Close() error {
	return s.conn.Close()
}
