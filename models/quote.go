package models

// SnapshotEntry is the per-ticker view inside a market snapshot.
type SnapshotEntry struct {
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
	Direction string  `json:"direction"`
	Timestamp string  `json:"timestamp"`
}

// Snapshot maps ticker symbol to its point-in-time view.
type Snapshot map[string]SnapshotEntry

// StockQuote is the list-shaped view, ordered by symbol table order.
type StockQuote struct {
	Ticker    string  `json:"ticker"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
	Direction string  `json:"direction"`
}

// TickFrame is the message pushed to market WebSocket subscribers.
type TickFrame struct {
	Type string   `json:"type"`
	Data Snapshot `json:"data"`
}
