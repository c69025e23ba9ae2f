package controller

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"faq-chat-be/internal/constant"
	"faq-chat-be/internal/dto"
	"faq-chat-be/internal/pkg/logger"
	"faq-chat-be/internal/pkg/serverutils"
	"faq-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IFaqService
	logger  logger.ILogger
}

func NewChatController(faqService service.IFaqService, sysLogger logger.ILogger) IChatController {
	return &chatController{
		service: faqService,
		logger:  sysLogger,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Get("", c.Chat)
}

// Chat serves GET /chat/v1?question=...&session_id=... as a server-sent
// event stream. The resolved session key travels out of band in the
// X-Session-Id header. Content chunks are emitted verbatim (embedded
// newlines escaped as literal \n); the stream always ends with exactly one
// [END] event, after an [ERROR] event when the pipeline failed.
func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.QueryParser(&req); err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if strings.TrimSpace(req.Question) == "" {
		return serverutils.NewApiError(fiber.StatusBadRequest, "Question must not be empty")
	}

	// The SSE body is written after this handler returns, so the pipeline
	// runs on a detached context cancelled when the client goes away.
	reqCtx, cancel := context.WithCancel(context.Background())

	sessionKey, answerStream, err := c.service.Answer(reqCtx, req.SessionId, req.Question)

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")
	if sessionKey != "" {
		ctx.Set("X-Session-Id", sessionKey)
	}

	if err != nil {
		cancel()
		c.logger.Warn("chat", "Pipeline failed before streaming", map[string]interface{}{
			"session": sessionKey,
			"error":   err.Error(),
		})
		ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			writeEvent(w, constant.StreamErrorPrefix+err.Error())
			writeEvent(w, constant.StreamEndSentinel)
			w.Flush()
		}))
		return nil
	}

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		for chunk := range answerStream.Chunks() {
			if err := writeEvent(w, chunk); err != nil {
				// Client disconnected: stop forwarding, cancel upstream,
				// and let the pipeline drop the unpersisted exchange.
				answerStream.Close()
				return
			}
			if err := w.Flush(); err != nil {
				answerStream.Close()
				return
			}
		}

		if err := answerStream.Err(); err != nil {
			writeEvent(w, constant.StreamErrorPrefix+err.Error())
		}
		writeEvent(w, constant.StreamEndSentinel)
		w.Flush()
	}))

	return nil
}

func writeEvent(w *bufio.Writer, payload string) error {
	// SSE payloads are line-framed; embedded newlines become literal \n for
	// the client to re-expand.
	payload = strings.ReplaceAll(payload, "\n", `\n`)
	_, err := fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}
