package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"faq-chat-be/pkg/embedding"
	"faq-chat-be/pkg/faq/prompt"
	"faq-chat-be/pkg/faq/stream"
	"faq-chat-be/pkg/llm"

	gocache "github.com/patrickmn/go-cache"
)

// ModelGateway wraps the generative/embedding backends behind the four narrow
// calls the answer pipeline needs: Embed, Refine, AnswerStream and
// ExtractKeywords. Each call is a single (possibly streamed) round trip; no
// retries happen at this layer.
type ModelGateway struct {
	llmProvider llm.LLMProvider
	embedder    embedding.EmbeddingProvider
	embedCache  *gocache.Cache
}

func New(llmProvider llm.LLMProvider, embedder embedding.EmbeddingProvider) *ModelGateway {
	return &ModelGateway{
		llmProvider: llmProvider,
		embedder:    embedder,
		// Identical questions within a short window reuse the same vector
		embedCache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Embed converts text into its vector representation. A nil/empty embedding
// is a hard failure; the pipeline cannot retrieve without it.
func (g *ModelGateway) Embed(ctx context.Context, text string) ([]float32, error) {
	if cached, found := g.embedCache.Get(text); found {
		return cached.([]float32), nil
	}

	vec, err := g.embedder.Generate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("%w: empty embedding", ErrMalformedResponse)
	}

	g.embedCache.Set(text, vec, gocache.DefaultExpiration)
	return vec, nil
}

// Refine disambiguates the question against prior session context. With no
// context there is nothing to resolve: the question is returned unchanged
// without a backend call.
func (g *ModelGateway) Refine(ctx context.Context, sessionContext, question string) (string, error) {
	if sessionContext == "" {
		return question, nil
	}

	p := prompt.NewRefineBuilder(sessionContext, question).Build()
	refined, err := g.llmProvider.Generate(ctx, p,
		llm.WithTemperature(0.5),
		llm.WithMaxTokens(100),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	refined = strings.TrimSpace(refined)
	if refined == "" {
		return "", fmt.Errorf("%w: empty refinement", ErrMalformedResponse)
	}
	return refined, nil
}

// AnswerStream opens a grounding-constrained generation stream. The returned
// stream is finite and non-restartable; closing it cancels the backend call.
// A connection dropping mid-generation surfaces as ErrStreamInterrupted on
// the stream, never as a silent truncation.
func (g *ModelGateway) AnswerStream(ctx context.Context, question, faqContext string) *stream.Stream {
	streamCtx, cancel := context.WithCancel(ctx)
	s := stream.New(cancel)

	p := prompt.NewAnswerBuilder(question, faqContext).Build()

	go func() {
		err := g.llmProvider.ChatStream(streamCtx, []llm.Message{
			{Role: "user", Content: p},
		}, func(chunk string) error {
			if !s.Send(streamCtx, chunk) {
				return streamCtx.Err()
			}
			return nil
		},
			llm.WithTemperature(0.7),
			llm.WithMaxTokens(500),
		)

		if err != nil {
			s.Fail(fmt.Errorf("%w: %v", ErrStreamInterrupted, err))
			return
		}
		s.Finish()
	}()

	return s
}

// ExtractKeywords pulls 2-3-word salient phrases out of a question. Unusable
// backend output degrades to an empty list, not an error; this feeds an
// operational counter, nothing user-facing.
func (g *ModelGateway) ExtractKeywords(ctx context.Context, question string) ([]string, error) {
	p := prompt.NewKeywordBuilder(question).Build()
	raw, err := g.llmProvider.Generate(ctx, p,
		llm.WithTemperature(0.5),
		llm.WithMaxTokens(100),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	var keywords []string
	for _, part := range strings.Split(raw, ",") {
		kw := strings.TrimSpace(part)
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords, nil
}
