package implementation

import (
	"context"
	"os"
	"testing"

	"faq-chat-be/internal/entity"
	"faq-chat-be/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests against a real postgres with the pgvector extension.
// Run with: TEST_DATABASE_DSN="host=localhost user=... dbname=..." go test ./...
func setupRepo(t *testing.T) *FaqRepositoryImpl {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping integration test")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	repo := NewFaqRepository(db).(*FaqRepositoryImpl)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, repo.DeleteAll(context.Background()))
	return repo
}

// unitVector builds a 1536-dim unit vector with a single axis set, so cosine
// similarity between entries is exactly 0 or 1.
func unitVector(axis int) []float32 {
	vec := make([]float32, 1536)
	vec[axis] = 1
	return vec
}

// blendVector mixes two axes, giving a high but sub-1.0 cosine similarity
// against unitVector(a).
func blendVector(a, b int, w float64) []float32 {
	vec := make([]float32, 1536)
	vec[a] = float32(w)
	vec[b] = float32(1 - w*w)
	return vec
}

func TestInsertIsIdempotent(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	entry := &entity.FaqEntry{Question: "Refund window?", Answer: "14 days.", Embedding: unitVector(0)}

	inserted, err := repo.Insert(ctx, entry)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Insert(ctx, entry)
	require.NoError(t, err)
	assert.False(t, inserted)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSearchFiltersAndOrdersByScore(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	entries := []*entity.FaqEntry{
		{Question: "exact match", Answer: "a", Embedding: unitVector(0)},
		{Question: "close match", Answer: "b", Embedding: blendVector(0, 1, 0.8)},
		{Question: "orthogonal", Answer: "c", Embedding: unitVector(2)},
	}
	for _, e := range entries {
		_, err := repo.Insert(ctx, e)
		require.NoError(t, err)
	}

	hits, err := repo.Search(ctx, unitVector(0), 10, 0.5)
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.Equal(t, "exact match", hits[0].Question)
	assert.Equal(t, "close match", hits[1].Question)
	assert.Greater(t, hits[0].Score, hits[1].Score)
	for _, hit := range hits {
		assert.Greater(t, hit.Score, 0.5)
	}
}

func TestSearchEmptyIndexReturnsNoHits(t *testing.T) {
	repo := setupRepo(t)

	hits, err := repo.Search(context.Background(), unitVector(0), 10, 0.5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
