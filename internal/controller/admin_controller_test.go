package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"faq-chat-be/internal/dto"
	"faq-chat-be/internal/pkg/serverutils"
	"faq-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIngestionService struct {
	lastSource map[string]string
	resetCalls int
	runErr     error
}

func (f *fakeIngestionService) Run(ctx context.Context, source map[string]string) (*dto.IngestResponse, error) {
	if f.runErr != nil {
		return nil, f.runErr
	}
	f.lastSource = source
	return &dto.IngestResponse{Inserted: len(source)}, nil
}

func (f *fakeIngestionService) Reset(ctx context.Context) error {
	f.resetCalls++
	return nil
}

type fakeStatsService struct{}

func (fakeStatsService) GetKeywordStats(ctx context.Context) (*dto.KeywordStatsResponse, error) {
	return &dto.KeywordStatsResponse{Keywords: map[string]int64{"refund policy": 3}}, nil
}

func (fakeStatsService) GetUnderservedStats(ctx context.Context) (*dto.UnderservedStatsResponse, error) {
	return &dto.UnderservedStatsResponse{Questions: []string{"Do you sell gift cards?"}}, nil
}

func (fakeStatsService) GetIndexCount(ctx context.Context) (*dto.IndexCountResponse, error) {
	return &dto.IndexCountResponse{Count: 42}, nil
}

var _ service.IIngestionService = (*fakeIngestionService)(nil)
var _ service.IStatsService = (*fakeStatsService)(nil)

func newAdminApp(ingestion service.IIngestionService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewAdminController(ingestion, &fakeStatsService{}, nopLogger{}).RegisterRoutes(app.Group("/api"))
	return app
}

func TestIngestRejectsEmptyEntries(t *testing.T) {
	app := newAdminApp(&fakeIngestionService{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/ingest", strings.NewReader(`{"entries":{}}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIngestRunsBatchWithOptionalReset(t *testing.T) {
	ingestion := &fakeIngestionService{}
	app := newAdminApp(ingestion)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/ingest",
		strings.NewReader(`{"entries":{"q":"a"},"reset":true}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, ingestion.resetCalls)
	assert.Equal(t, map[string]string{"q": "a"}, ingestion.lastSource)
}

func TestIndexCountEnvelope(t *testing.T) {
	app := newAdminApp(&fakeIngestionService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/v1/index/count", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope struct {
		Success bool                   `json:"success"`
		Data    dto.IndexCountResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, int64(42), envelope.Data.Count)
}
