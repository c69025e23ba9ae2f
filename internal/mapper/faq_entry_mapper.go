package mapper

import (
	"faq-chat-be/internal/entity"
	"faq-chat-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type FaqEntryMapper struct{}

func NewFaqEntryMapper() *FaqEntryMapper {
	return &FaqEntryMapper{}
}

func (m *FaqEntryMapper) ToEntity(e *model.FaqEntry) *entity.FaqEntry {
	if e == nil {
		return nil
	}

	return &entity.FaqEntry{
		Question:  e.Question,
		Answer:    e.Answer,
		Embedding: e.Embedding.Slice(),
		CreatedAt: e.CreatedAt,
	}
}

func (m *FaqEntryMapper) ToModel(e *entity.FaqEntry) *model.FaqEntry {
	if e == nil {
		return nil
	}

	return &model.FaqEntry{
		Question:  e.Question,
		Answer:    e.Answer,
		Embedding: pgvector.NewVector(e.Embedding),
		CreatedAt: e.CreatedAt,
	}
}

func (m *FaqEntryMapper) ToEntities(models []*model.FaqEntry) []*entity.FaqEntry {
	entities := make([]*entity.FaqEntry, len(models))
	for i, e := range models {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
