package contract

import (
	"context"

	"faq-chat-be/internal/entity"
)

// FaqRepository is the vector index over FAQ entries. Implementations must
// keep question text unique and never return a search hit scoring at or
// below the configured cutoff.
type FaqRepository interface {
	// EnsureSchema creates the vector extension, table and ANN index if
	// absent, or attaches to existing ones. Must succeed before any other
	// call; failure means the backing store is unreachable.
	EnsureSchema(ctx context.Context) error

	// Exists reports whether a FAQ entry with this exact question is indexed.
	Exists(ctx context.Context, question string) (bool, error)

	// Insert adds a new entry. Inserting an existing question is a no-op;
	// the bool result reports whether a row was actually written.
	Insert(ctx context.Context, entry *entity.FaqEntry) (bool, error)

	// Search returns up to topK entries most similar to the embedding,
	// filtered to score > cutoff, ordered by descending score. May return
	// fewer than topK entries, including none.
	Search(ctx context.Context, embedding []float32, topK int, cutoff float64) ([]*entity.RetrievalHit, error)

	// DeleteAll wipes every entry. The index stays usable afterwards.
	DeleteAll(ctx context.Context) error

	Count(ctx context.Context) (int64, error)
}
