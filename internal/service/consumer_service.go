package service

import (
	"context"
	"encoding/json"

	"faq-chat-be/internal/config"
	"faq-chat-be/internal/dto"
	"faq-chat-be/internal/pkg/logger"
	"faq-chat-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ConsumerService handles the fire-and-forget side work published by the
// answer pipeline: keyword extraction/recording and underserved-question
// logging. Failures here are logged and dropped; they never reach a caller.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub      *gochannel.GoChannel
	topics      config.TopicConfig
	gateway     ModelGateway
	contextRepo contract.ContextRepository
	logger      logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topics config.TopicConfig,
	gateway ModelGateway,
	contextRepo contract.ContextRepository,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topics:      topics,
		gateway:     gateway,
		contextRepo: contextRepo,
		logger:      sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	completed, err := cs.pubSub.Subscribe(ctx, cs.topics.ExchangeCompleted)
	if err != nil {
		return err
	}
	insufficient, err := cs.pubSub.Subscribe(ctx, cs.topics.RetrievalInsufficient)
	if err != nil {
		return err
	}

	go func() {
		for msg := range completed {
			cs.processExchangeCompleted(ctx, msg)
		}
	}()
	go func() {
		for msg := range insufficient {
			cs.processRetrievalInsufficient(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processExchangeCompleted(ctx context.Context, msg *message.Message) {
	// Ack unconditionally: these signals are best-effort, retrying a failed
	// extraction forever would only skew the counters.
	defer msg.Ack()

	var payload dto.ExchangeCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal exchange message", map[string]interface{}{"error": err.Error()})
		return
	}

	keywords, err := cs.gateway.ExtractKeywords(ctx, payload.RefinedQuestion)
	if err != nil {
		cs.logger.Warn("consumer", "Keyword extraction failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if len(keywords) == 0 {
		return
	}

	if err := cs.contextRepo.RecordKeywords(ctx, keywords); err != nil {
		cs.logger.Warn("consumer", "Failed to record keywords", map[string]interface{}{"error": err.Error()})
	}
}

func (cs *consumerService) processRetrievalInsufficient(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.RetrievalInsufficientMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal retrieval message", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := cs.contextRepo.LogUnderservedQuestion(ctx, payload.Question, payload.Embedding); err != nil {
		cs.logger.Warn("consumer", "Failed to log underserved question", map[string]interface{}{
			"error":    err.Error(),
			"question": payload.Question,
		})
		return
	}

	cs.logger.Info("consumer", "Underserved question logged", map[string]interface{}{
		"question":  payload.Question,
		"hit_count": payload.HitCount,
	})
}
