package models

import "time"

// Article is a sentiment-scored news item. Stored once at ingest time,
// read-only afterwards.
type Article struct {
	ID             string    `json:"id" ch:"id"`
	Title          string    `json:"title" ch:"title"`
	URL            string    `json:"url" ch:"url"`
	Source         string    `json:"source" ch:"source"`
	Summary        string    `json:"summary" ch:"summary"`
	ImageURL       string    `json:"image_url,omitempty" ch:"image_url"`
	SentimentScore float64   `json:"sentiment_score" ch:"sentiment_score"`
	SentimentLabel string    `json:"sentiment_label" ch:"sentiment_label"`
	PublishedAt    time.Time `json:"published_at" ch:"published_at"`
	ScrapedAt      time.Time `json:"scraped_at" ch:"scraped_at"`
}
