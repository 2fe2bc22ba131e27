package market

import (
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"founderhq_market/metrics"
	"founderhq_market/models"
)

// maxDriftPerTick bounds the per-tick random walk to +/-0.3%.
const maxDriftPerTick = 0.003

// Symbol pairs a ticker with its fixed base price.
type Symbol struct {
	Ticker string
	Base   float64
}

// DefaultSymbols is the tracked symbol table (INR base prices).
// Order is preserved in Stocks().
var DefaultSymbols = []Symbol{
	{"NIFTY50", 22_500},
	{"SENSEX", 74_000},
	{"PAYTM", 520},
	{"ZOMATO", 205},
	{"SWIGGY", 420},
	{"NYKAA", 170},
	{"POLICYBAZAAR", 890},
	{"DELHIVERY", 390},
	{"MAPMYINDIA", 1_750},
	{"IDEAFORGE", 680},
}

// Simulator advances a bounded random walk over the symbol table.
// All exported methods are safe for concurrent use; the tick throttle
// guarantees at most one price mutation per minInterval regardless of
// how many callers race on it.
type Simulator struct {
	mu          sync.Mutex
	order       []string
	base        map[string]float64
	prices      map[string]float64
	minInterval time.Duration
	lastTick    time.Time

	// seams for deterministic tests
	now   func() time.Time
	drift func() float64
}

func NewSimulator(symbols []Symbol, minInterval time.Duration) *Simulator {
	s := &Simulator{
		order:       make([]string, 0, len(symbols)),
		base:        make(map[string]float64, len(symbols)),
		prices:      make(map[string]float64, len(symbols)),
		minInterval: minInterval,
		now:         time.Now,
		drift: func() float64 {
			return (rand.Float64()*2 - 1) * maxDriftPerTick
		},
	}
	for _, sym := range symbols {
		s.order = append(s.order, sym.Ticker)
		s.base[sym.Ticker] = sym.Base
		s.prices[sym.Ticker] = sym.Base
	}
	return s
}

// tick applies one random-walk step to every price if the throttle
// interval has elapsed. Callers must hold s.mu.
func (s *Simulator) tick() {
	now := s.now()
	if now.Sub(s.lastTick) <= s.minInterval {
		return
	}
	for _, ticker := range s.order {
		s.prices[ticker] = round2(s.prices[ticker] * (1 + s.drift()))
	}
	s.lastTick = now
	metrics.IncrementTicks()
}

// Snapshot returns the point-in-time view of every tracked ticker,
// advancing the walk first if the throttle allows.
func (s *Simulator) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick()

	ts := s.now().UTC().Format(time.RFC3339)
	snapshot := make(models.Snapshot, len(s.order))
	for _, ticker := range s.order {
		price := s.prices[ticker]
		change, changePct := s.deltas(ticker, price)
		snapshot[ticker] = models.SnapshotEntry{
			Price:     price,
			Change:    change,
			ChangePct: changePct,
			Direction: direction(change),
			Timestamp: ts,
		}
	}
	return snapshot
}

// Stocks returns per-ticker quotes in symbol table order.
func (s *Simulator) Stocks() []models.StockQuote {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick()

	stocks := make([]models.StockQuote, 0, len(s.order))
	for _, ticker := range s.order {
		price := s.prices[ticker]
		change, changePct := s.deltas(ticker, price)
		stocks = append(stocks, models.StockQuote{
			Ticker:    ticker,
			Price:     price,
			Change:    change,
			ChangePct: changePct,
			Direction: direction(change),
		})
	}
	return stocks
}

// PriceOf returns the current price for a case-insensitive ticker
// lookup. The second return is false for unknown tickers.
func (s *Simulator) PriceOf(ticker string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick()

	price, ok := s.prices[strings.ToUpper(ticker)]
	return price, ok
}

func (s *Simulator) deltas(ticker string, price float64) (change, changePct float64) {
	base := s.base[ticker]
	change = round2(price - base)
	changePct = round2(change / base * 100)
	return change, changePct
}

func direction(change float64) string {
	if change >= 0 {
		return "up"
	}
	return "down"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
