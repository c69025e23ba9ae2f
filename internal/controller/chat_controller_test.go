package controller

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"faq-chat-be/internal/pkg/serverutils"
	"faq-chat-be/internal/service"
	"faq-chat-be/pkg/faq/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeFaqService struct {
	sessionKey string
	chunks     []string
	streamErr  error
	answerErr  error
}

func (f *fakeFaqService) Answer(ctx context.Context, sessionKey, rawQuestion string) (string, *stream.Stream, error) {
	if f.answerErr != nil {
		return f.sessionKey, nil, f.answerErr
	}
	s := stream.New(nil)
	go func() {
		for _, chunk := range f.chunks {
			if !s.Send(ctx, chunk) {
				s.Fail(ctx.Err())
				return
			}
		}
		if f.streamErr != nil {
			s.Fail(f.streamErr)
			return
		}
		s.Finish()
	}()
	return f.sessionKey, s, nil
}

var _ service.IFaqService = (*fakeFaqService)(nil)

func newChatApp(svc service.IFaqService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatController(svc, nopLogger{}).RegisterRoutes(app.Group("/api"))
	return app
}

func TestChatRejectsEmptyQuestion(t *testing.T) {
	app := newChatApp(&fakeFaqService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/chat/v1?question=", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEqual(t, "text/event-stream", resp.Header.Get(fiber.HeaderContentType))
}

func TestChatStreamsChunksAndEndSentinel(t *testing.T) {
	app := newChatApp(&fakeFaqService{
		sessionKey: "abc-123",
		chunks:     []string{"Refunds take ", "14 days.\nAnything else?"},
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/chat/v1?question=refunds", nil), 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "abc-123", resp.Header.Get("X-Session-Id"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t,
		"data: Refunds take \n\n"+
			`data: 14 days.\nAnything else?`+"\n\n"+
			"data: [END]\n\n",
		string(body))
}

func TestChatStreamFailureEmitsErrorThenEnd(t *testing.T) {
	app := newChatApp(&fakeFaqService{
		sessionKey: "abc-123",
		chunks:     []string{"partial"},
		streamErr:  errors.New("generation backend interrupted"),
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/chat/v1?question=q", nil), 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t,
		"data: partial\n\n"+
			"data: [ERROR] generation backend interrupted\n\n"+
			"data: [END]\n\n",
		string(body))
}

func TestChatPipelineFailureBeforeStreaming(t *testing.T) {
	app := newChatApp(&fakeFaqService{
		sessionKey: "abc-123",
		answerErr:  errors.New("vector index unavailable"),
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/chat/v1?question=q", nil), 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t,
		"data: [ERROR] vector index unavailable\n\n"+
			"data: [END]\n\n",
		string(body))
}
