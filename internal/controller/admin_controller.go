package controller

import (
	"errors"

	"faq-chat-be/internal/dto"
	"faq-chat-be/internal/pkg/logger"
	"faq-chat-be/internal/pkg/serverutils"
	"faq-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	ResetIndex(ctx *fiber.Ctx) error
	IndexCount(ctx *fiber.Ctx) error
	KeywordStats(ctx *fiber.Ctx) error
	UnderservedStats(ctx *fiber.Ctx) error
}

type adminController struct {
	ingestion service.IIngestionService
	stats     service.IStatsService
	logger    logger.ILogger
}

func NewAdminController(ingestion service.IIngestionService, stats service.IStatsService, sysLogger logger.ILogger) IAdminController {
	return &adminController{
		ingestion: ingestion,
		stats:     stats,
		logger:    sysLogger,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Post("/ingest", c.Ingest)
	h.Delete("/index", c.ResetIndex)
	h.Get("/index/count", c.IndexCount)
	h.Get("/stats/keywords", c.KeywordStats)
	h.Get("/stats/underserved", c.UnderservedStats)
}

func (c *adminController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	if req.Reset {
		if err := c.ingestion.Reset(ctx.Context()); err != nil {
			return c.mapServiceError(err)
		}
	}

	result, err := c.ingestion.Run(ctx.Context(), req.Entries)
	if err != nil {
		return c.mapServiceError(err)
	}

	return ctx.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("Ingestion completed", result))
}

func (c *adminController) ResetIndex(ctx *fiber.Ctx) error {
	if err := c.ingestion.Reset(ctx.Context()); err != nil {
		return c.mapServiceError(err)
	}
	return ctx.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("Index cleared", struct{}{}))
}

func (c *adminController) IndexCount(ctx *fiber.Ctx) error {
	result, err := c.stats.GetIndexCount(ctx.Context())
	if err != nil {
		return c.mapServiceError(err)
	}
	return ctx.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("Index count retrieved", result))
}

func (c *adminController) KeywordStats(ctx *fiber.Ctx) error {
	result, err := c.stats.GetKeywordStats(ctx.Context())
	if err != nil {
		return c.mapServiceError(err)
	}
	return ctx.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("Keyword stats retrieved", result))
}

func (c *adminController) UnderservedStats(ctx *fiber.Ctx) error {
	result, err := c.stats.GetUnderservedStats(ctx.Context())
	if err != nil {
		return c.mapServiceError(err)
	}
	return ctx.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("Underserved stats retrieved", result))
}

func (c *adminController) mapServiceError(err error) error {
	if errors.Is(err, service.ErrIndexUnavailable) {
		return serverutils.NewApiError(fiber.StatusServiceUnavailable, "Vector index is unavailable")
	}
	c.logger.Error("admin", "Unhandled admin operation error", map[string]interface{}{
		"error": err.Error(),
	})
	return serverutils.NewApiError(fiber.StatusInternalServerError, "Internal server error")
}
