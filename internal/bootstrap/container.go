package bootstrap

import (
	"context"
	"log"

	"greenwatch-be/internal/config"
	"greenwatch-be/internal/controller"
	"greenwatch-be/internal/handler"
	"greenwatch-be/internal/pkg/logger"
	"greenwatch-be/internal/pkg/mailer"
	"greenwatch-be/internal/pkg/serverutils"
	"greenwatch-be/internal/repository/contract"
	"greenwatch-be/internal/repository/memory"
	"greenwatch-be/internal/repository/redisstore"
	"greenwatch-be/internal/repository/unitofwork"
	"greenwatch-be/internal/service"
	"greenwatch-be/internal/websocket"
	"greenwatch-be/pkg/audit"
	"greenwatch-be/pkg/intake/schema"
	"greenwatch-be/pkg/intake/sequence"
	llmfactory "greenwatch-be/pkg/llm/factory"
	runnerfactory "greenwatch-be/pkg/runner/factory"

	pktNats "greenwatch-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	IntakeController controller.IIntakeController

	// Background Services (started by Start)
	ConsumerService service.IConsumerService
	AuditService    service.IAuditService

	// WebSockets
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub

	Logger logger.ILogger

	natsPub *pktNats.Publisher
	natsSub *pktNats.Subscriber
	rdb     *redis.Client
	pubSub  *gochannel.GoChannel
}

// NewContainer wires every dependency. db may be nil, in which case
// sessions live only in the session store.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		log.Println("[WARN] No database configured, transcripts are not persisted")
	}

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
		)
	}

	// 2. Dialogue configuration
	logSchema, err := schema.Load(cfg.Intake.SchemaPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load intake schema: %v", err)
	}
	questions, err := sequence.LoadQuestions(cfg.Intake.QuestionsPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load intake questions: %v", err)
	}
	if err := sequence.CheckBindings(questions, logSchema); err != nil {
		log.Fatalf("[FATAL] Intake questions do not match the schema: %v", err)
	}
	log.Printf("[INFO] Using intake schema: %s (%d fields, %d questions)", logSchema.Name, len(logSchema.Fields), len(questions))

	// 3. Runner
	r, err := runnerfactory.NewRunner(runnerfactory.Config{
		Provider:    cfg.Runner.Provider,
		BaseURL:     cfg.Runner.BaseURL,
		Timeout:     cfg.Runner.Timeout,
		SessionTTL:  cfg.Runner.SessionTTL,
		ReplyTokens: cfg.Ai.ReplyTokens,
		LLM: llmfactory.Config{
			Model:   cfg.Ai.LLMModel,
			BaseURL: cfg.Ai.OllamaBaseURL,
			APIKey:  cfg.Ai.HuggingFaceKey,
		},
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize runner: %v", err)
	}
	log.Printf("[INFO] Using runner: %s", cfg.Runner.Provider)

	// 4. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 5. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
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
		if cfg.Intake.SessionStore == "redis" {
			log.Fatalf("[FATAL] SESSION_STORE=redis needs a reachable Redis")
		}
		rdb.Close()
		rdb = nil
	}

	var sessions contract.SessionStore
	var locker contract.SessionLocker
	switch cfg.Intake.SessionStore {
	case "redis":
		sessions = redisstore.NewSessionStore(rdb, cfg.Intake.SessionTTL)
		locker = redisstore.NewLocker(rdb, cfg.Intake.LockLease)
	case "memory", "":
		sessions = memory.NewSessionRepository(cfg.Intake.SessionTTL)
	default:
		log.Fatalf("[FATAL] Unknown session store: %s", cfg.Intake.SessionStore)
	}
	log.Printf("[INFO] Using session store: %s", cfg.Intake.SessionStore)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)

	// 6. Services
	var auditPublisher audit.Publisher = audit.NewNatsPublisher(natsPub, sysLogger)
	publisherService := service.NewPublisherService(cfg.Intake.CompletionTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Intake.CompletionTopic,
		uowFactory,
		emailService,
		cfg.Intake.SummaryRecipient,
		sysLogger,
	)

	intakeService := service.NewIntakeService(
		service.IntakeOptions{
			Schema:             logSchema,
			Questions:          questions,
			ReflectiveMinChars: cfg.Intake.ReflectiveMinChars,
			Title:              cfg.Intake.Title,
			Locker:             locker,
		},
		sessions,
		r,
		uowFactory,
		auditPublisher,
		publisherService,
		wsHub,
		sysLogger,
	)

	var auditService service.IAuditService
	if natsSub != nil {
		auditService = service.NewAuditService(
			natsSub,
			logger.NewIsolatedLogger(cfg.App.AuditLogFilePath),
			logger.NewFileLogReader(cfg.App.AuditLogFilePath),
			sysLogger,
		)
	}

	streamHandler := handler.NewStreamHandler(intakeService, wsHub, cfg.Auth.JWTSecret, wsLogger)

	// 7. Controllers
	return &Container{
		IntakeController: controller.NewIntakeController(
			intakeService,
			auditService,
			serverutils.JwtMiddleware(cfg.Auth.JWTSecret),
			streamHandler.ServeWs,
		),
		ConsumerService: consumerService,
		AuditService:    auditService,
		StreamHandler:   streamHandler,
		WebSocketHub:    wsHub,
		Logger:          sysLogger,
		natsPub:         natsPub,
		natsSub:         natsSub,
		rdb:             rdb,
		pubSub:          pubSub,
	}
}

// Start launches the background workers. They stop when ctx is done.
func (c *Container) Start(ctx context.Context) {
	go c.WebSocketHub.Run(ctx)

	if err := c.ConsumerService.Consume(ctx); err != nil {
		log.Printf("[WARN] Failed to start consumer: %v", err)
	}

	if c.AuditService != nil {
		if err := c.AuditService.Start(ctx); err != nil {
			log.Printf("[WARN] Failed to start audit trail: %v", err)
		}
	}
}

func (c *Container) Close() {
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.pubSub != nil {
		c.pubSub.Close()
	}
	if c.rdb != nil {
		c.rdb.Close()
	}
	c.Logger.Sync()
}
