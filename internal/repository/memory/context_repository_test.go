package memory

import (
	"context"
	"fmt"
	"testing"

	"faq-chat-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSessionReturnsUniqueKeys(t *testing.T) {
	repo := NewContextRepository(3)

	first, err := repo.CreateSession(context.Background())
	require.NoError(t, err)
	second, err := repo.CreateSession(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestGetContextUnknownSessionIsEmpty(t *testing.T) {
	repo := NewContextRepository(3)

	rendered, err := repo.GetContext(context.Background(), "never-created")

	require.NoError(t, err)
	assert.Equal(t, "", rendered)
}

func TestGetContextRendersTurnsInOrder(t *testing.T) {
	repo := NewContextRepository(3)
	ctx := context.Background()

	key, err := repo.CreateSession(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.SaveTurn(ctx, key, entity.Turn{Question: "Do you ship abroad?", Response: "Yes."}))
	require.NoError(t, repo.SaveTurn(ctx, key, entity.Turn{Question: "How long?", Response: "About a week."}))

	rendered, err := repo.GetContext(ctx, key)
	require.NoError(t, err)
	assert.Equal(t,
		"User: Do you ship abroad?\nBot: Yes.\nUser: How long?\nBot: About a week.",
		rendered)
}

func TestSaveTurnEvictsBeyondWindow(t *testing.T) {
	repo := NewContextRepository(3)
	ctx := context.Background()

	key, err := repo.CreateSession(ctx)
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.SaveTurn(ctx, key, entity.Turn{
			Question: fmt.Sprintf("q%d", i),
			Response: fmt.Sprintf("a%d", i),
		}))
	}

	rendered, err := repo.GetContext(ctx, key)
	require.NoError(t, err)

	// Only the last three turns survive, oldest first.
	assert.Equal(t,
		"User: q3\nBot: a3\nUser: q4\nBot: a4\nUser: q5\nBot: a5",
		rendered)
}

func TestSaveTurnImplicitlyCreatesSession(t *testing.T) {
	repo := NewContextRepository(3)
	ctx := context.Background()

	require.NoError(t, repo.SaveTurn(ctx, "external-key", entity.Turn{Question: "q", Response: "a"}))

	rendered, err := repo.GetContext(ctx, "external-key")
	require.NoError(t, err)
	assert.Equal(t, "User: q\nBot: a", rendered)
}

func TestGetRecentContextLimitsTurns(t *testing.T) {
	repo := NewContextRepository(5)
	ctx := context.Background()

	key, _ := repo.CreateSession(ctx)
	for i := 1; i <= 4; i++ {
		require.NoError(t, repo.SaveTurn(ctx, key, entity.Turn{
			Question: fmt.Sprintf("q%d", i),
			Response: fmt.Sprintf("a%d", i),
		}))
	}

	rendered, err := repo.GetRecentContext(ctx, key, 2)
	require.NoError(t, err)
	assert.Equal(t, "User: q3\nBot: a3\nUser: q4\nBot: a4", rendered)
}

func TestRecordKeywordsAccumulates(t *testing.T) {
	repo := NewContextRepository(3)
	ctx := context.Background()

	require.NoError(t, repo.RecordKeywords(ctx, []string{"refund policy", "shipping time"}))
	require.NoError(t, repo.RecordKeywords(ctx, []string{"refund policy"}))

	counts, err := repo.KeywordCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["refund policy"])
	assert.Equal(t, int64(1), counts["shipping time"])
}

func TestLogUnderservedQuestionDeduplicates(t *testing.T) {
	repo := NewContextRepository(3)
	ctx := context.Background()

	require.NoError(t, repo.LogUnderservedQuestion(ctx, "Do you sell gift cards?", []float32{0.1}))
	require.NoError(t, repo.LogUnderservedQuestion(ctx, "Do you sell gift cards?", []float32{0.2}))

	questions, err := repo.UnderservedQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Do you sell gift cards?"}, questions)
}
