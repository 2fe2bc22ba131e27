// Package api exposes the market endpoints over HTTP and WebSocket.
package api

import (
	"context"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"founderhq_market/metrics"
	"founderhq_market/models"
	"founderhq_market/sentiment"
	"founderhq_market/utils"
)

// MarketService provides point-in-time views of the simulated market.
type MarketService interface {
	Snapshot() models.Snapshot
	Stocks() []models.StockQuote
}

// NewsService serves cached sentiment-scored articles.
type NewsService interface {
	Cached(limit int) []models.Article
	CacheSize() int
}

// SentimentService provides the aggregate market-sentiment score.
type SentimentService interface {
	MarketScore(ctx context.Context) float64
}

// Pinger reports reachability of the article store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	router    *gin.Engine
	logger    *zap.SugaredLogger
	market    MarketService
	news      NewsService
	sentiment SentimentService
	store     Pinger
	wsHandler http.Handler
}

func NewServer(logger *zap.SugaredLogger, market MarketService, news NewsService,
	sent SentimentService, store Pinger, wsHandler http.Handler) *Server {
	s := &Server{
		logger:    logger,
		market:    market,
		news:      news,
		sentiment: sent,
		store:     store,
		wsHandler: wsHandler,
	}

	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger())

	v1 := router.Group("/api/v1/market")
	v1.GET("/snapshot", s.snapshotHandler)
	v1.GET("/stocks", s.stocksHandler)
	v1.GET("/news", s.newsHandler)
	v1.GET("/sentiment", s.sentimentHandler)

	router.GET("/ws/market", s.marketWSHandler)
	router.GET("/health", s.healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router = router
	return s
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

// articleView is the news API projection of a stored article.
type articleView struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`
	Summary        string    `json:"summary"`
	SentimentScore float64   `json:"sentiment_score"`
	SentimentLabel string    `json:"sentiment_label"`
	PublishedAt    time.Time `json:"published_at"`
}

func (s *Server) snapshotHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.market.Snapshot())
}

func (s *Server) stocksHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.market.Stocks())
}

func (s *Server) newsHandler(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	articles := s.news.Cached(limit)
	views := make([]articleView, 0, len(articles))
	for _, a := range articles {
		views = append(views, articleView{
			ID:             a.ID,
			Title:          a.Title,
			URL:            a.URL,
			Source:         a.Source,
			Summary:        a.Summary,
			SentimentScore: a.SentimentScore,
			SentimentLabel: a.SentimentLabel,
			PublishedAt:    a.PublishedAt,
		})
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) sentimentHandler(c *gin.Context) {
	score := s.sentiment.MarketScore(c.Request.Context())
	label, advice := sentiment.Advice(score)
	c.JSON(http.StatusOK, gin.H{
		"score":  score,
		"label":  label,
		"advice": advice,
	})
}

func (s *Server) marketWSHandler(c *gin.Context) {
	s.wsHandler.ServeHTTP(c.Writer, c.Request)
}

func (s *Server) healthHandler(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	components := gin.H{"news_cache": "empty"}
	if s.news.CacheSize() > 0 {
		components["news_cache"] = "healthy"
	}

	status := "ok"
	if s.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			components["article_store"] = "unreachable"
			status = "degraded"
		} else {
			components["article_store"] = "healthy"
		}
	}

	ticks, articles, lastTick, uptime := metrics.GetStats()
	c.JSON(http.StatusOK, gin.H{
		"status":            status,
		"uptime":            uptime.String(),
		"memory_usage":      m.Alloc,
		"goroutine_count":   runtime.NumGoroutine(),
		"ticks_applied":     ticks,
		"articles_ingested": articles,
		"last_tick_at":      lastTick.UTC().Format(time.RFC3339),
		"component_status":  components,
	})
}
