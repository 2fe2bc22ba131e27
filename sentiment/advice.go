package sentiment

// Advice thresholds are coarser than label thresholds on purpose: a
// mildly positive market is still "neutral" for fundraising purposes.
const (
	bullishThreshold = 0.2
	bearishThreshold = -0.2
)

// Advice maps an aggregate market score to a market stance and a
// founder-facing recommendation.
func Advice(score float64) (label, advice string) {
	switch {
	case score > bullishThreshold:
		return "bullish", "Good time to raise funding — investor sentiment is positive."
	case score < bearishThreshold:
		return "bearish", "Cautious market — consider waiting before approaching investors."
	default:
		return "neutral", "Mixed signals — evaluate carefully before making moves."
	}
}
