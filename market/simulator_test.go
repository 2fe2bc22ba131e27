package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSimulator returns a simulator with a controllable clock
// starting well past the throttle window so the first tick applies.
func newTestSimulator(symbols []Symbol) (*Simulator, *time.Time) {
	sim := NewSimulator(symbols, time.Second)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sim.now = func() time.Time { return now }
	return sim, &now
}

func TestForcedTickDeltas(t *testing.T) {
	sim, _ := newTestSimulator([]Symbol{{"NIFTY50", 22_500}})
	sim.drift = func() float64 { return 0.003 }

	snapshot := sim.Snapshot()
	entry, ok := snapshot["NIFTY50"]
	require.True(t, ok)

	assert.Equal(t, 22567.5, entry.Price)
	assert.Equal(t, 67.5, entry.Change)
	assert.Equal(t, 0.3, entry.ChangePct)
	assert.Equal(t, "up", entry.Direction)
	assert.NotEmpty(t, entry.Timestamp)
}

func TestTickThrottledWithinWindow(t *testing.T) {
	sim, now := newTestSimulator([]Symbol{{"NIFTY50", 22_500}})
	sim.drift = func() float64 { return 0.003 }

	first := sim.Snapshot()["NIFTY50"].Price
	assert.Equal(t, 22567.5, first)

	// 500ms later: inside the window, prices must not move again
	*now = now.Add(500 * time.Millisecond)
	second := sim.Snapshot()["NIFTY50"].Price
	assert.Equal(t, first, second)

	// past the window: the walk advances once more
	*now = now.Add(600 * time.Millisecond)
	third := sim.Snapshot()["NIFTY50"].Price
	assert.Equal(t, 22635.2, third)
}

func TestDirectionDownOnNegativeDrift(t *testing.T) {
	sim, _ := newTestSimulator([]Symbol{{"ZOMATO", 205}})
	sim.drift = func() float64 { return -0.003 }

	entry := sim.Snapshot()["ZOMATO"]
	assert.Equal(t, "down", entry.Direction)
	assert.Negative(t, entry.Change)
}

func TestPricesStayPositive(t *testing.T) {
	sim, now := newTestSimulator(DefaultSymbols)

	for i := 0; i < 500; i++ {
		*now = now.Add(2 * time.Second)
		for _, quote := range sim.Stocks() {
			require.Positive(t, quote.Price, "ticker %s", quote.Ticker)
		}
	}
}

func TestStocksPreserveSymbolOrder(t *testing.T) {
	sim, _ := newTestSimulator(DefaultSymbols)

	stocks := sim.Stocks()
	require.Len(t, stocks, len(DefaultSymbols))
	for i, sym := range DefaultSymbols {
		assert.Equal(t, sym.Ticker, stocks[i].Ticker)
	}
}

func TestPriceOfCaseInsensitive(t *testing.T) {
	sim, _ := newTestSimulator(DefaultSymbols)

	price, ok := sim.PriceOf("nifty50")
	require.True(t, ok)
	assert.Positive(t, price)

	_, ok = sim.PriceOf("TSLA")
	assert.False(t, ok)
}

func TestSnapshotDirectionMatchesSign(t *testing.T) {
	sim, now := newTestSimulator(DefaultSymbols)

	for i := 0; i < 50; i++ {
		*now = now.Add(2 * time.Second)
		for ticker, entry := range sim.Snapshot() {
			if entry.Change >= 0 {
				assert.Equal(t, "up", entry.Direction, "ticker %s", ticker)
			} else {
				assert.Equal(t, "down", entry.Direction, "ticker %s", ticker)
			}
		}
	}
}
