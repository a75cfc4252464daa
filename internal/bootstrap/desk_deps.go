// Package bootstrap wires adapters, agents, and services together.
package bootstrap

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"helpdesk_server/adapter/out/mailbox"
	"helpdesk_server/adapter/out/mailer"
	"helpdesk_server/adapter/out/mongodb"
	"helpdesk_server/config"
	"helpdesk_server/core/agent/llm"
	"helpdesk_server/core/agent/rag"
	"helpdesk_server/core/service/knowledge"
	"helpdesk_server/core/service/ticket"
	"helpdesk_server/pkg/cache"
)

// Dependencies holds every wired component of the application.
type Dependencies struct {
	Config  *config.Config
	Log     zerolog.Logger
	MongoDB *mongo.Client
	Redis   *redis.Client

	// Repositories
	TicketRepo    *mongodb.TicketAdapter
	KnowledgeRepo *mongodb.KnowledgeAdapter

	// Agents
	LLMClient *llm.Client
	Extractor *llm.Extractor
	Responder *llm.Responder
	Retriever *rag.Retriever

	// Mail
	Mailer  *mailer.SMTPMailer
	Fetcher *mailbox.IMAPFetcher

	// Services
	TicketService    *ticket.Service
	KnowledgeService *knowledge.Service
}

// NewLogger builds the root logger. Development gets a console writer,
// production stays on structured JSON.
func NewLogger(cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.IsDevelopment() {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	if cfg.IsDevelopment() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return logger.With().Str("service", "helpdesk").Logger()
}

// NewDependencies connects the backing stores and wires the full object
// graph. The returned cleanup closes every connection it opened.
func NewDependencies(cfg *config.Config, log zerolog.Logger) (*Dependencies, func(), error) {
	mongoClient, err := mongodb.NewClient(cfg.MongoDBURL)
	if err != nil {
		return nil, nil, err
	}

	db := mongoClient.Database(cfg.MongoDBName)
	ticketRepo := mongodb.NewTicketAdapter(db)
	knowledgeRepo := mongodb.NewKnowledgeAdapter(db)

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ticketRepo.EnsureIndexes(indexCtx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure ticket indexes")
	}
	if err := knowledgeRepo.EnsureIndexes(indexCtx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure knowledge indexes")
	}

	// Redis is optional. Without it extraction results are simply not cached.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("invalid redis url, extraction cache disabled")
		} else {
			redisClient = redis.NewClient(opts)
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := redisClient.Ping(pingCtx).Err(); err != nil {
				log.Warn().Err(err).Msg("redis unreachable, extraction cache disabled")
				_ = redisClient.Close()
				redisClient = nil
			}
			pingCancel()
		}
	}

	llmClient := llm.NewClient(llm.ClientConfig{
		APIKey:         cfg.OpenAIAPIKey,
		Model:          cfg.LLMModel,
		EmbeddingModel: cfg.EmbeddingModel,
		MaxTokens:      cfg.LLMMaxTokens,
		Temperature:    cfg.LLMTemperature,
	}, log)

	extractor := llm.NewExtractor(llmClient, log)
	if redisClient != nil {
		extractor = extractor.WithCache(cache.NewRedisCache(redisClient), cfg.ExtractionCacheTTL)
	}

	retriever := rag.NewRetriever(knowledgeRepo, rag.NewEmbedder(llmClient), log)

	// Warm the vector index. An empty or unreachable knowledge base is not
	// fatal; retrieval degrades to context-free drafts until the next rebuild.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := retriever.Rebuild(warmCtx); err != nil {
		log.Warn().Err(err).Msg("initial index build failed, continuing without context")
	}
	warmCancel()

	responder := llm.NewResponder(llmClient, retriever, log)

	smtpMailer := mailer.NewSMTPMailer(cfg)
	imapFetcher := mailbox.NewIMAPFetcher(cfg, log)

	ticketService := ticket.NewService(ticketRepo, knowledgeRepo, extractor, responder, retriever, smtpMailer, log)
	knowledgeService := knowledge.NewService(knowledgeRepo, retriever, log)

	deps := &Dependencies{
		Config:           cfg,
		Log:              log,
		MongoDB:          mongoClient,
		Redis:            redisClient,
		TicketRepo:       ticketRepo,
		KnowledgeRepo:    knowledgeRepo,
		LLMClient:        llmClient,
		Extractor:        extractor,
		Responder:        responder,
		Retriever:        retriever,
		Mailer:           smtpMailer,
		Fetcher:          imapFetcher,
		TicketService:    ticketService,
		KnowledgeService: knowledgeService,
	}

	cleanup := func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()

		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("error disconnecting mongodb")
		}
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Warn().Err(err).Msg("error closing redis")
			}
		}
	}

	return deps, cleanup, nil
}
