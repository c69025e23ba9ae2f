package service

import (
	"context"

	"faq-chat-be/pkg/faq/stream"
)

// ModelGateway is the slice of the language-model gateway the services use.
// Satisfied by *gateway.ModelGateway; narrowed here so tests can fake it.
type ModelGateway interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Refine(ctx context.Context, sessionContext, question string) (string, error)
	AnswerStream(ctx context.Context, question, faqContext string) *stream.Stream
	ExtractKeywords(ctx context.Context, question string) ([]string, error)
}
