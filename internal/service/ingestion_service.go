package service

import (
	"context"
	"fmt"

	"faq-chat-be/internal/dto"
	"faq-chat-be/internal/entity"
	"faq-chat-be/internal/pkg/logger"
	"faq-chat-be/internal/repository/contract"
	"faq-chat-be/pkg/utils"
)

// IngestionService batch-loads a raw question->answer mapping into the
// vector index. Safe to re-run: the existence check makes duplicate entries
// no-ops, so two runs over the same source end in the same index state.
type IIngestionService interface {
	Run(ctx context.Context, source map[string]string) (*dto.IngestResponse, error)
	Reset(ctx context.Context) error
}

type ingestionService struct {
	faqRepo contract.FaqRepository
	gateway ModelGateway
	logger  logger.ILogger
}

func NewIngestionService(
	faqRepo contract.FaqRepository,
	gateway ModelGateway,
	sysLogger logger.ILogger,
) IIngestionService {
	return &ingestionService{
		faqRepo: faqRepo,
		gateway: gateway,
		logger:  sysLogger,
	}
}

func (s *ingestionService) Run(ctx context.Context, source map[string]string) (*dto.IngestResponse, error) {
	report := &dto.IngestResponse{}

	for rawQuestion, rawAnswer := range source {
		question := utils.CleanText(rawQuestion)
		answer := utils.CleanText(rawAnswer)
		if question == "" {
			report.Skipped++
			continue
		}

		exists, err := s.faqRepo.Exists(ctx, question)
		if err != nil {
			return report, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
		}
		if exists {
			s.logger.Info("ingestion", "Question already indexed, skipping", map[string]interface{}{"question": question})
			report.Skipped++
			continue
		}

		// A single bad pair must not sink the batch
		embedding, err := s.gateway.Embed(ctx, question)
		if err != nil {
			s.logger.Warn("ingestion", "Embedding failed, skipping pair", map[string]interface{}{
				"question": question,
				"error":    err.Error(),
			})
			report.Failed++
			continue
		}

		inserted, err := s.faqRepo.Insert(ctx, &entity.FaqEntry{
			Question:  question,
			Answer:    answer,
			Embedding: embedding,
		})
		if err != nil {
			s.logger.Warn("ingestion", "Insert failed, skipping pair", map[string]interface{}{
				"question": question,
				"error":    err.Error(),
			})
			report.Failed++
			continue
		}
		if !inserted {
			// Lost an ingestion race; same outcome as the exists check
			report.Skipped++
			continue
		}

		report.Inserted++
	}

	s.logger.Info("ingestion", "Batch completed", map[string]interface{}{
		"inserted": report.Inserted,
		"skipped":  report.Skipped,
		"failed":   report.Failed,
	})
	return report, nil
}

func (s *ingestionService) Reset(ctx context.Context) error {
	if err := s.faqRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	s.logger.Info("ingestion", "Index wiped", nil)
	return nil
}
