package service

import (
	"context"
	"fmt"

	"faq-chat-be/internal/dto"
	"faq-chat-be/internal/repository/contract"
)

// StatsService exposes the operational signals for the admin surface:
// keyword frequencies, underserved questions and the index size.
type IStatsService interface {
	GetKeywordStats(ctx context.Context) (*dto.KeywordStatsResponse, error)
	GetUnderservedStats(ctx context.Context) (*dto.UnderservedStatsResponse, error)
	GetIndexCount(ctx context.Context) (*dto.IndexCountResponse, error)
}

type statsService struct {
	contextRepo contract.ContextRepository
	faqRepo     contract.FaqRepository
}

func NewStatsService(contextRepo contract.ContextRepository, faqRepo contract.FaqRepository) IStatsService {
	return &statsService{
		contextRepo: contextRepo,
		faqRepo:     faqRepo,
	}
}

func (s *statsService) GetKeywordStats(ctx context.Context) (*dto.KeywordStatsResponse, error) {
	counts, err := s.contextRepo.KeywordCounts(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.KeywordStatsResponse{Keywords: counts}, nil
}

func (s *statsService) GetUnderservedStats(ctx context.Context) (*dto.UnderservedStatsResponse, error) {
	questions, err := s.contextRepo.UnderservedQuestions(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.UnderservedStatsResponse{Questions: questions}, nil
}

func (s *statsService) GetIndexCount(ctx context.Context) (*dto.IndexCountResponse, error) {
	count, err := s.faqRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	return &dto.IndexCountResponse{Count: count}, nil
}
