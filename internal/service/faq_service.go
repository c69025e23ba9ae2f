package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"faq-chat-be/internal/config"
	"faq-chat-be/internal/dto"
	"faq-chat-be/internal/entity"
	"faq-chat-be/internal/pkg/logger"
	"faq-chat-be/internal/repository/contract"
	"faq-chat-be/pkg/faq/stream"
)

// persistTimeout bounds the post-stream SaveTurn write, which runs detached
// from the request context.
const persistTimeout = 10 * time.Second

// IFaqService is the conversational answering pipeline:
// refine -> embed -> retrieve -> generate (streamed) -> persist -> signals.
type IFaqService interface {
	// Answer resolves the session (creating one for an empty key), runs the
	// pipeline and returns the resolved key plus the answer stream. Chunks
	// arrive in backend emission order; the stream finishing without error
	// guarantees the turn was persisted.
	Answer(ctx context.Context, sessionKey, rawQuestion string) (string, *stream.Stream, error)
}

type faqService struct {
	faqRepo     contract.FaqRepository
	contextRepo contract.ContextRepository
	gateway     ModelGateway
	publisher   IPublisherService
	logger      logger.ILogger
	rag         config.RagConfig
	topics      config.TopicConfig
}

func NewFaqService(
	faqRepo contract.FaqRepository,
	contextRepo contract.ContextRepository,
	gateway ModelGateway,
	publisher IPublisherService,
	sysLogger logger.ILogger,
	rag config.RagConfig,
	topics config.TopicConfig,
) IFaqService {
	return &faqService{
		faqRepo:     faqRepo,
		contextRepo: contextRepo,
		gateway:     gateway,
		publisher:   publisher,
		logger:      sysLogger,
		rag:         rag,
		topics:      topics,
	}
}

func (s *faqService) Answer(ctx context.Context, sessionKey, rawQuestion string) (string, *stream.Stream, error) {
	// 1. Resolve session
	if sessionKey == "" {
		key, err := s.contextRepo.CreateSession(ctx)
		if err != nil {
			return "", nil, fmt.Errorf("create session: %w", err)
		}
		sessionKey = key
	}

	// 2. Refine against prior context. A failing context read degrades to an
	// empty history; a failing refinement aborts the request.
	sessionContext, err := s.contextRepo.GetContext(ctx, sessionKey)
	if err != nil {
		s.logger.Warn("faq", "Failed to load session context, continuing without", map[string]interface{}{
			"session": sessionKey,
			"error":   err.Error(),
		})
		sessionContext = ""
	}

	refined, err := s.gateway.Refine(ctx, sessionContext, rawQuestion)
	if err != nil {
		return sessionKey, nil, err
	}

	// 3. Embed. No embedding, no retrieval: hard failure.
	embedding, err := s.gateway.Embed(ctx, refined)
	if err != nil {
		return sessionKey, nil, err
	}

	// 4. Retrieve and build the grounding context
	hits, err := s.faqRepo.Search(ctx, embedding, s.rag.TopK, s.rag.ScoreCutoff)
	if err != nil {
		return sessionKey, nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}

	if len(hits) <= s.rag.LowHitThreshold {
		s.publishRetrievalInsufficient(refined, embedding, len(hits))
	}

	grounding := buildGroundingContext(hits)

	// 5-7. Generate, relay while accumulating, persist on normal completion
	relayCtx, relayCancel := context.WithCancel(ctx)
	upstream := s.gateway.AnswerStream(relayCtx, refined, grounding)

	out := stream.New(relayCancel)
	go s.relay(relayCtx, out, upstream, sessionKey, refined)

	return sessionKey, out, nil
}

// relay forwards every chunk in arrival order while accumulating the full
// answer. The turn is persisted only when the upstream stream completed
// normally and the consumer is still attached; anything else ends the
// outbound stream with an error and persists nothing.
func (s *faqService) relay(relayCtx context.Context, out, upstream *stream.Stream, sessionKey, refinedQuestion string) {
	var full strings.Builder

	for chunk := range upstream.Chunks() {
		full.WriteString(chunk)
		if !out.Send(relayCtx, chunk) {
			// Consumer is gone; stop the backend and drop the exchange
			upstream.Close()
			out.Fail(relayCtx.Err())
			return
		}
	}

	if err := upstream.Err(); err != nil {
		out.Fail(err)
		return
	}
	if relayCtx.Err() != nil {
		out.Fail(relayCtx.Err())
		return
	}

	// Persist with a fresh context: the request context may be cancelled the
	// moment the caller sees the final chunk.
	persistCtx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	turn := entity.Turn{Question: refinedQuestion, Response: full.String()}
	if err := s.contextRepo.SaveTurn(persistCtx, sessionKey, turn); err != nil {
		s.logger.Error("faq", "Failed to persist turn", map[string]interface{}{
			"session": sessionKey,
			"error":   err.Error(),
		})
		out.Fail(fmt.Errorf("persist turn: %w", err))
		return
	}

	s.publishExchangeCompleted(sessionKey, refinedQuestion)
	out.Finish()
}

func (s *faqService) publishExchangeCompleted(sessionKey, refinedQuestion string) {
	payload, _ := json.Marshal(dto.ExchangeCompletedMessage{
		SessionId:       sessionKey,
		RefinedQuestion: refinedQuestion,
	})
	if err := s.publisher.Publish(context.Background(), s.topics.ExchangeCompleted, payload); err != nil {
		s.logger.Warn("faq", "Failed to publish exchange event", map[string]interface{}{"error": err.Error()})
	}
}

func (s *faqService) publishRetrievalInsufficient(question string, embedding []float32, hitCount int) {
	payload, _ := json.Marshal(dto.RetrievalInsufficientMessage{
		Question:  question,
		Embedding: embedding,
		HitCount:  hitCount,
	})
	if err := s.publisher.Publish(context.Background(), s.topics.RetrievalInsufficient, payload); err != nil {
		s.logger.Warn("faq", "Failed to publish retrieval event", map[string]interface{}{"error": err.Error()})
	}
}

// buildGroundingContext renders retrieval hits as bullet lines for the
// answer prompt. An empty hit list yields an empty section; the prompt's
// refusal rule covers that case.
func buildGroundingContext(hits []*entity.RetrievalHit) string {
	if len(hits) == 0 {
		return ""
	}
	lines := make([]string, len(hits))
	for i, hit := range hits {
		lines[i] = fmt.Sprintf("- Q: %s\n  A: %s", hit.Question, hit.Answer)
	}
	return strings.Join(lines, "\n")
}
