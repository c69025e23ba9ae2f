package implementation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"faq-chat-be/internal/entity"
	"faq-chat-be/internal/mapper"
	"faq-chat-be/internal/model"
	"faq-chat-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type FaqRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FaqEntryMapper
}

func NewFaqRepository(db *gorm.DB) contract.FaqRepository {
	return &FaqRepositoryImpl{
		db:     db,
		mapper: mapper.NewFaqEntryMapper(),
	}
}

func (r *FaqRepositoryImpl) EnsureSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}

	if err := r.db.WithContext(ctx).AutoMigrate(&model.FaqEntry{}); err != nil {
		return fmt.Errorf("migrate faq_entries: %w", err)
	}

	// ANN index is a tuning knob; exact scan would satisfy the same contract.
	// ivfflat with cosine ops matches how Search computes scores.
	if err := r.db.WithContext(ctx).Exec(
		"CREATE INDEX IF NOT EXISTS idx_faq_entries_embedding ON faq_entries USING ivfflat (embedding vector_cosine_ops) WITH (lists = 128)",
	).Error; err != nil {
		return fmt.Errorf("create embedding index: %w", err)
	}

	return nil
}

func (r *FaqRepositoryImpl) Exists(ctx context.Context, question string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.FaqEntry{}).
		Where("question = ?", question).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *FaqRepositoryImpl) Insert(ctx context.Context, entry *entity.FaqEntry) (bool, error) {
	exists, err := r.Exists(ctx, entry.Question)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		// Concurrent ingestion can race past the Exists check; the unique
		// primary key makes the loser a no-op rather than a failure.
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *FaqRepositoryImpl) Search(ctx context.Context, embedding []float32, topK int, cutoff float64) ([]*entity.RetrievalHit, error) {
	if topK <= 0 {
		topK = 10
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding <=> query) recovers the similarity score.
	type result struct {
		Question   string
		Answer     string
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("faq_entries").
		Select("question, answer, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("1 - (embedding <=> ?) > ?", queryVector, cutoff).
		Order("similarity DESC").
		Limit(topK).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	hits := make([]*entity.RetrievalHit, len(results))
	for i, res := range results {
		hits[i] = &entity.RetrievalHit{
			Question: res.Question,
			Answer:   res.Answer,
			Score:    res.Similarity,
		}
	}
	return hits, nil
}

func (r *FaqRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM faq_entries").Error
}

func (r *FaqRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FaqEntry{}).Count(&count).Error
	return count, err
}
