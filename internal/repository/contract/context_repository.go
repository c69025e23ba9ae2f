package contract

import (
	"context"

	"faq-chat-be/internal/entity"
)

// ContextRepository holds short per-session conversational context plus the
// process-wide operational signals (keyword counters, underserved-question
// log). Reads never fail on unknown session keys; an unknown key is simply
// an empty history.
type ContextRepository interface {
	// CreateSession generates a fresh collision-free session key with an
	// empty turn sequence.
	CreateSession(ctx context.Context) (string, error)

	// GetContext renders the retained turns as alternating "User: ... /
	// Bot: ..." lines in chronological order. Empty string for unknown or
	// empty sessions.
	GetContext(ctx context.Context, sessionKey string) (string, error)

	// GetRecentContext renders only the most recent n turns, same format.
	GetRecentContext(ctx context.Context, sessionKey string, n int) (string, error)

	// SaveTurn appends a turn, implicitly creating the session, then trims
	// to the configured window keeping the most recent entries.
	SaveTurn(ctx context.Context, sessionKey string, turn entity.Turn) error

	// RecordKeywords increments the process-wide counter for each keyword.
	RecordKeywords(ctx context.Context, keywords []string) error

	// KeywordCounts returns the current keyword frequency map.
	KeywordCounts(ctx context.Context) (map[string]int64, error)

	// LogUnderservedQuestion upserts a question whose retrieval came back
	// too thin, keyed by question text. Latest embedding wins.
	LogUnderservedQuestion(ctx context.Context, question string, embedding []float32) error

	// UnderservedQuestions lists the logged question texts.
	UnderservedQuestions(ctx context.Context) ([]string, error)
}
