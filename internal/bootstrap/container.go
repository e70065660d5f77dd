package bootstrap

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"ai-receptionist-be/internal/config"
	"ai-receptionist-be/internal/controller"
	"ai-receptionist-be/internal/pkg/logger"
	"ai-receptionist-be/internal/pkg/mailer"
	"ai-receptionist-be/internal/repository/implementation"
	"ai-receptionist-be/internal/repository/memory"
	"ai-receptionist-be/internal/repository/redisstore"
	"ai-receptionist-be/internal/service"
	"ai-receptionist-be/pkg/embedding"
	"ai-receptionist-be/pkg/llm/factory"
	"ai-receptionist-be/pkg/maildraft"
	"ai-receptionist-be/pkg/reception/ack"
	"ai-receptionist-be/pkg/reception/facts"
	"ai-receptionist-be/pkg/reception/intent"
	"ai-receptionist-be/pkg/reception/persona"
	"ai-receptionist-be/pkg/reception/relevance"
	"ai-receptionist-be/pkg/reception/responder"
	"ai-receptionist-be/pkg/reception/session"
	"ai-receptionist-be/pkg/retrieval"

	pktNats "ai-receptionist-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	MailDraftController controller.IMailDraftController
	CorpusController    controller.ICorpusController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for the seed command
	DocumentService service.IDocumentService
	IndexerService  service.IIndexerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pipelineLogger := newPipelineLogger(cfg.App.PipelineLogPath)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	apiKey := cfg.Keys.GoogleGemini
	if cfg.Ai.LLMProvider == "openai" {
		apiKey = cfg.Keys.OpenAI
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		apiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	var sessionRepo session.Repository
	if cfg.Pipeline.SessionBackend == "redis" {
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
		sessionRepo = redisstore.NewSessionRepository(rdb, cfg.Pipeline.SessionTTL)
	} else {
		sessionRepo = memory.NewSessionRepository(cfg.Pipeline.SessionTTL)
	}
	sessions := session.NewManager(sessionRepo)

	// 5. Repositories
	documentRepo := implementation.NewDocumentRepository(db)
	evidenceRepo := implementation.NewEvidenceRepository(db)

	// 6. Reception Pipeline
	searcher := retrieval.NewVectorSearcher(embeddingProvider, evidenceRepo, pipelineLogger)

	personaRegistry := persona.NewRegistry()
	if cfg.Pipeline.PersonaFile != "" {
		if err := personaRegistry.LoadFile(cfg.Pipeline.PersonaFile); err != nil {
			log.Printf("[WARN] Failed to load persona file %s: %v", cfg.Pipeline.PersonaFile, err)
		}
	}

	factExtractor := facts.NewExtractor(llmProvider, pipelineLogger)
	intentClassifier := intent.NewClassifier(llmProvider, pipelineLogger)
	ackDetector := ack.NewDetector(llmProvider, pipelineLogger)
	relevanceClassifier := relevance.NewClassifier(searcher, relevance.Thresholds{
		Tight: cfg.Pipeline.TightThreshold,
		Loose: cfg.Pipeline.LooseThreshold,
	}, pipelineLogger)
	ragResponder := responder.NewGenerator(llmProvider, searcher, cfg.Pipeline.TopK, pipelineLogger)
	transformer := persona.NewTransformer(llmProvider, personaRegistry, pipelineLogger)

	draftPipeline := maildraft.NewPipeline(llmProvider, pipelineLogger)

	// 7. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	indexerService := service.NewIndexerService(documentRepo, evidenceRepo, embeddingProvider, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.EmbedTopic, indexerService, sysLogger)
	documentService := service.NewDocumentService(documentRepo, publisherService, sysLogger)

	assistantService := service.NewAssistantService(
		sessions,
		factExtractor,
		intentClassifier,
		ackDetector,
		relevanceClassifier,
		ragResponder,
		personaRegistry,
		transformer,
		natsPub,
		cfg.Pipeline.LLMTimeout,
		sysLogger,
	)
	mailDraftService := service.NewMailDraftService(draftPipeline, emailService, cfg.Pipeline.LLMTimeout, sysLogger)

	// 8. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		MailDraftController: controller.NewMailDraftController(mailDraftService),
		CorpusController:    controller.NewCorpusController(documentService),

		ConsumerService: consumerService,
		DocumentService: documentService,
		IndexerService:  indexerService,
	}
}

// newPipelineLogger writes the LLM pipeline trace to its own file so the
// request log stays readable.
func newPipelineLogger(path string) *log.Logger {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("[WARN] Failed to create log directory: %v", err)
		return log.New(os.Stdout, "", log.LstdFlags)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("[WARN] Failed to open pipeline log %s: %v", path, err)
		return log.New(os.Stdout, "", log.LstdFlags)
	}
	return log.New(f, "", log.LstdFlags)
}
