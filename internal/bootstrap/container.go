package bootstrap

import (
	"context"
	"io"
	"log"

	"funeral-docs-be/internal/config"
	"funeral-docs-be/internal/controller"
	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/internal/pkg/mailer"
	"funeral-docs-be/internal/pkg/serverutils"
	"funeral-docs-be/internal/repository/memory"
	"funeral-docs-be/internal/repository/unitofwork"
	"funeral-docs-be/internal/service"
	"funeral-docs-be/internal/websocket"
	"funeral-docs-be/pkg/admin/dashboard"
	adminEvents "funeral-docs-be/pkg/admin/events"
	"funeral-docs-be/pkg/admin/usage"
	"funeral-docs-be/pkg/admin/user"
	"funeral-docs-be/pkg/compositor"
	"funeral-docs-be/pkg/extraction"
	"funeral-docs-be/pkg/llm"
	"funeral-docs-be/pkg/llm/factory"
	pktNats "funeral-docs-be/pkg/nats"
	"funeral-docs-be/pkg/render"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	AuthController        controller.IAuthController
	TranscriptController  controller.ITranscriptController
	ArrangementController controller.IArrangementController
	DocumentController    controller.IDocumentController
	TaskController        controller.ITaskController
	AdminController       controller.IAdminController
	AnalyticsController   controller.IAnalyticsController

	// Background Services (run by main.go)
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService

	// WebSockets
	WebSocketHub *websocket.Hub
	JWTSecret    string

	closers []io.Closer
	stops   []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{JWTSecret: cfg.Auth.JWTSecret}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	c.Logger = sysLogger

	var emailService mailer.IEmailService
	if cfg.SMTP.Enabled() {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
			cfg.App.ClientURL,
			sysLogger,
		)
	} else {
		log.Printf("[WARN] SMTP is not configured, reset links are only logged")
		emailService = mailer.NewLogOnlyEmailService(cfg.App.ClientURL, sysLogger)
	}

	// 2. In-process mail outbox
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, pubSub)
	mailQueue := service.NewMailQueue(pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, service.MailTopic, emailService, sysLogger)

	// 3. Optional infrastructure: NATS and Redis
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
			c.stops = append(c.stops, pub.Close)
		}
	}

	rdb := connectRedis(cfg.App.RedisURL)
	if rdb != nil {
		c.closers = append(c.closers, rdb)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)

	if natsPub != nil {
		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			c.stops = append(c.stops, natsSub.Close)
			c.NotificationService = service.NewNotificationService(natsSub, c.WebSocketHub, sysLogger)
		}
	}

	// 4. LLM and rendering
	var llmProvider llm.LLMProvider
	var extractor service.Extractor
	if cfg.Ai.Configured() {
		provider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.BaseURL, cfg.Ai.APIKey)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
		}
		llmProvider = provider
		extractor = extraction.NewExtractor(provider, cfg.Ai.MaxTokens)
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	} else {
		log.Printf("[WARN] LLM is not configured; processing and approval will fail")
	}

	var engine render.Renderer
	if cfg.Render.EngineEnabled {
		e := render.NewEngineRenderer(cfg.Render.ChromeBin, cfg.Render.EngineTimeout)
		engine = e
		c.closers = append(c.closers, e)
	}
	renderers := render.NewRegistry(render.NewDirectRenderer(), engine)

	comp := compositor.New(llmProvider, renderers, service.NewDocumentStore(uowFactory), sysLogger, compositor.Config{
		Timeout:   cfg.Ai.DocumentTimeout,
		MaxTokens: cfg.Ai.MaxTokens,
	}).WithNotifier(c.WebSocketHub)

	// 5. Usage tracking
	var statsCache memory.StatsCache
	if cfg.Cache.Driver == "redis" && rdb != nil {
		statsCache = memory.NewRedisStatsCache(rdb, cfg.Cache.TTL, sysLogger)
	} else {
		statsCache = memory.NewLocalStatsCache(cfg.Cache.TTL)
	}
	tracker := usage.NewTracker(sysLogger, statsCache)
	publisher := adminEvents.NewNatsPublisher(natsPub, sysLogger)

	// 6. Services
	authService := service.NewAuthService(uowFactory, mailQueue, cfg.Auth, sysLogger)
	transcriptService := service.NewTranscriptService(uowFactory, extractor, tracker, publisher, sysLogger)
	arrangementService := service.NewArrangementService(uowFactory, comp, tracker, publisher, sysLogger)
	documentService := service.NewDocumentService(uowFactory, comp, tracker, publisher, sysLogger)
	taskService := service.NewTaskService(uowFactory, sysLogger)
	adminService := service.NewAdminService(
		uowFactory,
		sysLogger,
		user.NewManager(sysLogger, publisher, tracker),
		tracker,
		dashboard.NewAggregator(sysLogger),
	)
	analyticsService := service.NewAnalyticsService(uowFactory, tracker, sysLogger)

	// 7. Controllers
	auth := serverutils.JwtMiddleware(cfg.Auth.JWTSecret)
	c.AuthController = controller.NewAuthController(authService, auth)
	c.TaskController = controller.NewTaskController(taskService, auth)
	c.ArrangementController = controller.NewArrangementController(arrangementService, c.TaskController, auth)
	c.TranscriptController = controller.NewTranscriptController(transcriptService, c.ArrangementController, auth)
	c.DocumentController = controller.NewDocumentController(documentService, auth)
	c.AdminController = controller.NewAdminController(adminService, auth)
	c.AnalyticsController = controller.NewAnalyticsController(analyticsService, auth)

	return c
}

// Start launches the background workers. They stop when ctx is done.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.ConsumerService.Consume(ctx); err != nil {
		return err
	}
	if c.NotificationService != nil {
		if err := c.NotificationService.Start(ctx); err != nil {
			c.Logger.Warn("BOOTSTRAP", "Notification service not started", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.stops) - 1; i >= 0; i-- {
		c.stops[i]()
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			log.Printf("[WARN] close: %v", err)
		}
	}
	_ = c.Logger.Sync()
}

func connectRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (running single instance)", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
