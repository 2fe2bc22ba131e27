package news

// rawArticle is a fetched-but-unscored news item.
type rawArticle struct {
	Title    string
	URL      string
	Source   string
	Summary  string
	ImageURL string
}

// mockArticles is the built-in fallback set for offline/dev mode.
// Order matters: cached reads before the first refresh and failed
// fetches both serve this set as-is.
var mockArticles = []rawArticle{
	{
		Title:    "Zepto raises $350M in Series G, eyes quick commerce dominance",
		Source:   "Inc42",
		URL:      "https://inc42.com/",
		Summary:  "Zepto's latest funding round values the company at $5B, making it one of India's fastest-growing unicorns.",
		ImageURL: "https://images.unsplash.com/photo-1526304640581-d334cdbbf45e?auto=format&fit=crop&q=80&w=800",
	},
	{
		Title:    "SEBI approves new framework for startup IPOs in India",
		Source:   "Economic Times",
		URL:      "https://economictimes.com/",
		Summary:  "New regulations ease the path for Indian tech startups to go public with reduced lock-in periods.",
		ImageURL: "https://images.unsplash.com/photo-1611974717483-9b43793014b1?auto=format&fit=crop&q=80&w=800",
	},
	{
		Title:    "AI startup Sarvam raises $41M to build India's foundational model",
		Source:   "TechCrunch",
		URL:      "https://techcrunch.com/",
		Summary:  "Sarvam AI is building LLMs trained entirely on Indic languages, backed by Lightspeed and Peak XV.",
		ImageURL: "https://images.unsplash.com/photo-1677442136019-21780ecad995?auto=format&fit=crop&q=80&w=800",
	},
	{
		Title:    "PhonePe crosses 550M registered users, becomes India's largest fintech",
		Source:   "Business Standard",
		URL:      "https://business-standard.com/",
		Summary:  "PhonePe now processes over 50% of all UPI transactions in India monthly.",
		ImageURL: "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?auto=format&fit=crop&q=80&w=800",
	},
	{
		Title:    "India's startup ecosystem sees $4.5B in Q1 2024 funding — recovery signals",
		Source:   "Inc42",
		URL:      "https://inc42.com/",
		Summary:  "VC funding is recovering after a difficult 2023, with SaaS and AI leading the charge.",
		ImageURL: "https://images.unsplash.com/photo-1559136555-9303baea8ebd?auto=format&fit=crop&q=80&w=800",
	},
	{
		Title:    "Meesho achieves operational profitability, files for IPO",
		Source:   "Mint",
		URL:      "https://livemint.com/",
		Summary:  "The social commerce giant is on track to list at a $4.5B valuation post-profitability milestone.",
		ImageURL: "https://images.unsplash.com/photo-1441986300917-64674bd600d8?auto=format&fit=crop&q=80&w=800",
	},
}
