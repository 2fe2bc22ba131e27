package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"founderhq_market/api"
	"founderhq_market/models"
	"founderhq_market/utils"
	"founderhq_market/ws"
)

type stubMarket struct{}

func (stubMarket) Snapshot() models.Snapshot {
	return models.Snapshot{
		"NIFTY50": {
			Price:     22567.5,
			Change:    67.5,
			ChangePct: 0.3,
			Direction: "up",
			Timestamp: "2024-06-01T12:00:00Z",
		},
	}
}

func (stubMarket) Stocks() []models.StockQuote {
	return []models.StockQuote{
		{Ticker: "NIFTY50", Price: 22567.5, Change: 67.5, ChangePct: 0.3, Direction: "up"},
		{Ticker: "SENSEX", Price: 73900, Change: -100, ChangePct: -0.14, Direction: "down"},
	}
}

type stubNews struct{}

func (stubNews) Cached(limit int) []models.Article {
	articles := []models.Article{
		{ID: "a1", Title: "First", URL: "https://example.com/1", Source: "Inc42",
			Summary: "s1", ImageURL: "https://img/1", SentimentScore: 0.4, SentimentLabel: "positive"},
		{ID: "a2", Title: "Second", URL: "https://example.com/2", Source: "Mint",
			SentimentScore: -0.2, SentimentLabel: "negative"},
	}
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles
}

func (stubNews) CacheSize() int { return 2 }

type stubSentiment struct{ score float64 }

func (s stubSentiment) MarketScore(ctx context.Context) float64 { return s.score }

type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func setupRouter(score float64, pinger api.Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop().Sugar()
	hub := ws.NewHub(stubMarket{}, 10*time.Millisecond, utils.Logger)
	srv := api.NewServer(utils.Logger, stubMarket{}, stubNews{}, stubSentiment{score: score}, pinger, hub)
	return srv.Router()
}

func doGet(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSnapshotEndpoint(t *testing.T) {
	w := doGet(t, setupRouter(0, nil), "/api/v1/market/snapshot")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]models.SnapshotEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	entry, ok := resp["NIFTY50"]
	require.True(t, ok)
	assert.Equal(t, 22567.5, entry.Price)
	assert.Equal(t, "up", entry.Direction)
	assert.NotEmpty(t, entry.Timestamp)
}

func TestStocksEndpoint(t *testing.T) {
	w := doGet(t, setupRouter(0, nil), "/api/v1/market/stocks")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []models.StockQuote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "NIFTY50", resp[0].Ticker)
	assert.Equal(t, "down", resp[1].Direction)
}

func TestNewsEndpoint(t *testing.T) {
	w := doGet(t, setupRouter(0, nil), "/api/v1/market/news")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "First", resp[0]["title"])
	assert.Equal(t, "positive", resp[0]["sentiment_label"])
	// view exposes only the article fields, not image_url
	assert.NotContains(t, resp[0], "image_url")
}

func TestNewsEndpointLimit(t *testing.T) {
	w := doGet(t, setupRouter(0, nil), "/api/v1/market/news?limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
}

func TestNewsEndpointBadLimit(t *testing.T) {
	w := doGet(t, setupRouter(0, nil), "/api/v1/market/news?limit=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSentimentEndpointNeutralAdvice(t *testing.T) {
	// 0.15 is above the label threshold but below the advice threshold
	w := doGet(t, setupRouter(0.15, nil), "/api/v1/market/sentiment")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0.15, resp["score"])
	assert.Equal(t, "neutral", resp["label"])
	assert.Contains(t, resp["advice"], "Mixed signals")
}

func TestSentimentEndpointBullish(t *testing.T) {
	w := doGet(t, setupRouter(0.35, nil), "/api/v1/market/sentiment")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bullish", resp["label"])
	assert.Contains(t, resp["advice"], "Good time to raise funding")
}

func TestHealthEndpoint(t *testing.T) {
	w := doGet(t, setupRouter(0, stubPinger{}), "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	components := resp["component_status"].(map[string]interface{})
	assert.Equal(t, "healthy", components["article_store"])
	assert.Equal(t, "healthy", components["news_cache"])
}

func TestMetricsEndpoint(t *testing.T) {
	w := doGet(t, setupRouter(0, nil), "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMarketWebSocketTickStream(t *testing.T) {
	router := setupRouter(0, nil)
	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/market"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var frame models.TickFrame
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "tick", frame.Type)
	assert.Contains(t, frame.Data, "NIFTY50")

	// a second frame arrives on the broadcast cadence
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "tick", frame.Type)
}
