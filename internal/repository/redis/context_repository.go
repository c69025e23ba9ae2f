package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"faq-chat-be/internal/entity"
	"faq-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix   = "faq:session:"
	keywordCountersKey = "faq:stats:keywords"
	underservedLogKey  = "faq:stats:underserved"

	sessionTTL = time.Hour
)

// ContextRepository stores session context in redis lists (one JSON-encoded
// turn per element, trimmed to the window), keyword counters in a hash and
// the underserved-question log in a hash keyed by question text. Durability
// is whatever the redis deployment provides; the pipeline assumes nothing
// beyond that.
type ContextRepository struct {
	rdb        *redis.Client
	windowSize int
}

func NewContextRepository(rdb *redis.Client, windowSize int) contract.ContextRepository {
	return &ContextRepository{
		rdb:        rdb,
		windowSize: windowSize,
	}
}

func (r *ContextRepository) CreateSession(ctx context.Context) (string, error) {
	// The list is created lazily on the first SaveTurn; a fresh key with no
	// entries already reads back as empty history.
	return uuid.NewString(), nil
}

func (r *ContextRepository) readTurns(ctx context.Context, sessionKey string) ([]entity.Turn, error) {
	raw, err := r.rdb.LRange(ctx, sessionKeyPrefix+sessionKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", sessionKey, err)
	}

	turns := make([]entity.Turn, 0, len(raw))
	for _, item := range raw {
		var t entity.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			// Skip unreadable entries rather than failing the whole read
			continue
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (r *ContextRepository) GetContext(ctx context.Context, sessionKey string) (string, error) {
	turns, err := r.readTurns(ctx, sessionKey)
	if err != nil {
		return "", err
	}
	return renderTurns(turns), nil
}

func (r *ContextRepository) GetRecentContext(ctx context.Context, sessionKey string, n int) (string, error) {
	turns, err := r.readTurns(ctx, sessionKey)
	if err != nil {
		return "", err
	}
	if n > 0 && len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	return renderTurns(turns), nil
}

func (r *ContextRepository) SaveTurn(ctx context.Context, sessionKey string, turn entity.Turn) error {
	payload, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshal turn: %w", err)
	}

	key := sessionKeyPrefix + sessionKey
	pipe := r.rdb.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, int64(-r.windowSize), -1)
	pipe.Expire(ctx, key, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save turn for session %s: %w", sessionKey, err)
	}
	return nil
}

func (r *ContextRepository) RecordKeywords(ctx context.Context, keywords []string) error {
	if len(keywords) == 0 {
		return nil
	}
	pipe := r.rdb.Pipeline()
	for _, kw := range keywords {
		pipe.HIncrBy(ctx, keywordCountersKey, kw, 1)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *ContextRepository) KeywordCounts(ctx context.Context) (map[string]int64, error) {
	raw, err := r.rdb.HGetAll(ctx, keywordCountersKey).Result()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, _ := strconv.ParseInt(v, 10, 64)
		counts[k] = n
	}
	return counts, nil
}

func (r *ContextRepository) LogUnderservedQuestion(ctx context.Context, question string, embedding []float32) error {
	payload, err := json.Marshal(embedding)
	if err != nil {
		return fmt.Errorf("marshal embedding: %w", err)
	}
	// Overwrite semantics: latest embedding wins
	return r.rdb.HSet(ctx, underservedLogKey, question, payload).Err()
}

func (r *ContextRepository) UnderservedQuestions(ctx context.Context) ([]string, error) {
	return r.rdb.HKeys(ctx, underservedLogKey).Result()
}

func renderTurns(turns []entity.Turn) string {
	if len(turns) == 0 {
		return ""
	}
	lines := make([]string, len(turns))
	for i, t := range turns {
		lines[i] = fmt.Sprintf("User: %s\nBot: %s", t.Question, t.Response)
	}
	return strings.Join(lines, "\n")
}
