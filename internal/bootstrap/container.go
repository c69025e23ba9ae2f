package bootstrap

import (
	"context"
	"log"

	"faq-chat-be/internal/config"
	"faq-chat-be/internal/controller"
	"faq-chat-be/internal/pkg/logger"
	"faq-chat-be/internal/repository/contract"
	"faq-chat-be/internal/repository/implementation"
	"faq-chat-be/internal/repository/memory"
	redisrepo "faq-chat-be/internal/repository/redis"
	"faq-chat-be/internal/service"
	"faq-chat-be/pkg/embedding"
	"faq-chat-be/pkg/faq/gateway"
	"faq-chat-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController  controller.IChatController
	AdminController controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for the admin CLIs
	IngestionService service.IIngestionService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Keys.OpenAI,
		llmBaseURL(cfg),
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	modelGateway := gateway.New(llmProvider, embeddingProvider)

	// Session / signal storage
	var contextRepo contract.ContextRepository
	if cfg.Session.Store == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		contextRepo = redisrepo.NewContextRepository(rdb, cfg.Session.WindowSize)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		contextRepo = memory.NewContextRepository(cfg.Session.WindowSize)
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// Vector index
	faqRepo := implementation.NewFaqRepository(db)
	if err := faqRepo.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("[FATAL] Failed to prepare vector index schema: %v", err)
	}

	// Services
	publisherService := service.NewPublisherService(pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics,
		modelGateway,
		contextRepo,
		sysLogger,
	)

	faqService := service.NewFaqService(
		faqRepo,
		contextRepo,
		modelGateway,
		publisherService,
		sysLogger,
		cfg.Rag,
		cfg.Topics,
	)
	ingestionService := service.NewIngestionService(faqRepo, modelGateway, sysLogger)
	statsService := service.NewStatsService(contextRepo, faqRepo)

	return &Container{
		ChatController:  controller.NewChatController(faqService, sysLogger),
		AdminController: controller.NewAdminController(ingestionService, statsService, sysLogger),

		ConsumerService:  consumerService,
		IngestionService: ingestionService,

		Logger: sysLogger,
	}
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.LLMBaseURL
}
