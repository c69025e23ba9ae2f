package entity

import "time"

// FaqEntry is one question/answer pair in the vector index. The question text
// is the primary key; entries are immutable once ingested.
type FaqEntry struct {
	Question  string
	Answer    string
	Embedding []float32
	CreatedAt time.Time
}

// RetrievalHit is a FAQ entry returned by a similarity search, with its
// cosine similarity score. Transient, per search call.
type RetrievalHit struct {
	Question string
	Answer   string
	Score    float64
}
