package bootstrap

import (
	"context"
	"log"
	"time"

	"topicmatch-be/internal/config"
	"topicmatch-be/internal/controller"
	"topicmatch-be/internal/handler"
	"topicmatch-be/internal/pkg/logger"
	"topicmatch-be/internal/pkg/mailer"
	"topicmatch-be/internal/repository/implementation"
	"topicmatch-be/internal/repository/memory"
	"topicmatch-be/internal/repository/unitofwork"
	"topicmatch-be/internal/service"
	"topicmatch-be/internal/websocket"
	"topicmatch-be/pkg/admin/dashboard"
	adminEvents "topicmatch-be/pkg/admin/events"
	"topicmatch-be/pkg/matching"

	pktNats "topicmatch-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	QuestionnaireController controller.IQuestionnaireController
	TopicController         controller.ITopicController
	RankingController       controller.IRankingController
	AdminController         controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus (in-process commit queue)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// In-memory session storage for live questionnaire runs
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Engine.SessionTTLMinutes) * time.Minute)

	// 2.5 Infrastructure
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
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Engine.CommitTopic, pubSub)
	committer := service.NewAnswerCommitter(publisherService, uowFactory, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Engine.CommitTopic,
		uowFactory,
		sessionRepo,
	)

	questionnaireService := service.NewQuestionnaireService(
		uowFactory,
		sessionRepo,
		committer,
		natsPub,
		cfg.Engine,
		sysLogger,
	)

	// Admin Domain Components
	adminEventPublisher := adminEvents.NewNatsPublisher(natsPub, sysLogger)
	dashboardAggregator := dashboard.NewAggregator(sysLogger)
	matchingBuilder := matching.NewBuilder(cfg.Matching.TeamSize, sysLogger)

	adminService := service.NewAdminService(
		uowFactory,
		sysLogger,
		dashboardAggregator,
		matchingBuilder,
		adminEventPublisher,
		cfg.Matching.ExportDir,
	)

	topicService := service.NewTopicService(uowFactory, adminEventPublisher)
	rankingService := service.NewRankingService(uowFactory, natsPub, sysLogger)

	// 3.5 Notification System Infrastructure
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, emailService, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	// Handler
	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler:     notifHandler,
		WebSocketHub:            wsHub,
		QuestionnaireController: controller.NewQuestionnaireController(questionnaireService),
		TopicController:         controller.NewTopicController(topicService),
		RankingController:       controller.NewRankingController(rankingService),
		AdminController:         controller.NewAdminController(adminService, topicService),

		ConsumerService: consumerService,
	}
}
