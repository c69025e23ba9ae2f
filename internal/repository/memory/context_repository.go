package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"faq-chat-be/internal/entity"
	"faq-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ContextRepository is the in-process session context store, for tests and
// single-instance deployments. Sessions expire passively through go-cache;
// keyword counters and the underserved log live for the process lifetime.
type ContextRepository struct {
	sessions   *cache.Cache
	windowSize int

	mu          sync.Mutex
	keywords    map[string]int64
	underserved map[string][]float32
}

func NewContextRepository(windowSize int) contract.ContextRepository {
	// Sessions idle for an hour are dropped, purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ContextRepository{
		sessions:    c,
		windowSize:  windowSize,
		keywords:    make(map[string]int64),
		underserved: make(map[string][]float32),
	}
}

func (r *ContextRepository) CreateSession(ctx context.Context) (string, error) {
	sessionKey := uuid.NewString()
	r.sessions.Set(sessionKey, []entity.Turn{}, cache.DefaultExpiration)
	return sessionKey, nil
}

func (r *ContextRepository) getTurns(sessionKey string) []entity.Turn {
	if x, found := r.sessions.Get(sessionKey); found {
		return x.([]entity.Turn)
	}
	return nil
}

func (r *ContextRepository) GetContext(ctx context.Context, sessionKey string) (string, error) {
	return renderTurns(r.getTurns(sessionKey)), nil
}

func (r *ContextRepository) GetRecentContext(ctx context.Context, sessionKey string, n int) (string, error) {
	turns := r.getTurns(sessionKey)
	if n > 0 && len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	return renderTurns(turns), nil
}

func (r *ContextRepository) SaveTurn(ctx context.Context, sessionKey string, turn entity.Turn) error {
	turns := append(r.getTurns(sessionKey), turn)
	if len(turns) > r.windowSize {
		turns = turns[len(turns)-r.windowSize:]
	}
	r.sessions.Set(sessionKey, turns, cache.DefaultExpiration)
	return nil
}

func (r *ContextRepository) RecordKeywords(ctx context.Context, keywords []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, kw := range keywords {
		r.keywords[kw]++
	}
	return nil
}

func (r *ContextRepository) KeywordCounts(ctx context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64, len(r.keywords))
	for k, v := range r.keywords {
		counts[k] = v
	}
	return counts, nil
}

func (r *ContextRepository) LogUnderservedQuestion(ctx context.Context, question string, embedding []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.underserved[question] = embedding
	return nil
}

func (r *ContextRepository) UnderservedQuestions(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	questions := make([]string, 0, len(r.underserved))
	for q := range r.underserved {
		questions = append(questions, q)
	}
	return questions, nil
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
