package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"founderhq_market/api"
	"founderhq_market/config"
	"founderhq_market/market"
	"founderhq_market/news"
	"founderhq_market/sentiment"
	"founderhq_market/store"
	"founderhq_market/utils"
	"founderhq_market/ws"
)

func main() {
	// Load environment variables; a missing .env is fine in production
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := utils.Logger

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Article store; the service degrades to in-memory fallbacks when
	// ClickHouse is unavailable
	var articleStore *store.ArticleStore
	if articleStore, err = store.NewArticleStore(cfg, logger); err != nil {
		logger.Warnw("Article store unavailable, running without persistence", "error", err)
		articleStore = nil
	}

	scorer := sentiment.NewAnalyzer(storeReader(articleStore), logger)
	simulator := market.NewSimulator(market.DefaultSymbols, cfg.Market.TickMinInterval)
	feed := news.NewFeed(cfg.News.FeedURL, cfg.News.FetchTimeout,
		cfg.News.MinArticles, cfg.News.MaxArticles,
		scorer, storeWriter(articleStore), logger)

	// One fetch-and-store pass before serving traffic
	feed.Refresh(ctx)

	// Optional periodic refresh; startup-only when interval is zero
	if cfg.News.RefreshInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.News.RefreshInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					feed.Refresh(ctx)
				}
			}
		}()
	}

	hub := ws.NewHub(simulator, cfg.Market.BroadcastInterval, logger)
	srv := api.NewServer(logger, simulator, feed, scorer, storePinger(articleStore), hub)

	server := &http.Server{
		Addr:    cfg.App.HTTPAddr,
		Handler: srv.Router(),
	}

	go func() {
		logger.Infow("Market service listening", "addr", cfg.App.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Error(err, "HTTP server error")
		}
	}()

	<-ctx.Done()
	logger.Infow("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.Error(err, "HTTP server shutdown error")
	}
	if articleStore != nil {
		if err := articleStore.Close(); err != nil {
			utils.Error(err, "Article store close error")
		}
	}
}

// nil-interface adapters: a nil *ArticleStore must become a nil
// interface, not a typed nil, so the fallback paths engage.

func storeReader(s *store.ArticleStore) sentiment.ArticleReader {
	if s == nil {
		return nil
	}
	return s
}

func storeWriter(s *store.ArticleStore) news.ArticleWriter {
	if s == nil {
		return nil
	}
	return s
}

func storePinger(s *store.ArticleStore) api.Pinger {
	if s == nil {
		return nil
	}
	return s
}
