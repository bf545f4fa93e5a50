package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/config"
	"github.com/Fusion-Mind-co/worklog-system/internal/controller"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/logger"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/mailer"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/unitofwork"
	"github.com/Fusion-Mind-co/worklog-system/internal/service"
	"github.com/Fusion-Mind-co/worklog-system/internal/websocket"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const auditTopic = "audit_events"

type Container struct {
	AuthController      controller.IAuthController
	WorklogController   controller.IWorklogController
	HistoryController   controller.IHistoryController
	ApprovalController  controller.IApprovalController
	ChatController      controller.IChatController
	AdminUserController controller.IAdminUserController
	UnitController      controller.IUnitController
	RealtimeController  controller.IRealtimeController

	// Exposed for main.go to run.
	AuditConsumer service.IAuditConsumerService

	WebSocketHub *websocket.Hub
	Logger       logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// Event bus for the audit trail.
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// Redis relays realtime events across instances. The hub degrades to
	// single-instance delivery when the connection is unavailable.
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	wsLogger := logger.NewIsolatedLogger("logs/realtime.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	publisherService := service.NewPublisherService(pubSub, auditTopic)
	auditConsumer := service.NewAuditConsumerService(pubSub, auditTopic, uowFactory, sysLogger)

	notificationService := service.NewNotificationService(uowFactory, wsHub, wsLogger)

	optionsTTL := time.Duration(cfg.Cache.UnitOptionsTTLMinutes) * time.Minute
	worklogService := service.NewWorklogService(uowFactory, publisherService, optionsTTL)
	historyService := service.NewHistoryService(uowFactory, notificationService, publisherService)
	approvalService := service.NewApprovalService(uowFactory, notificationService, publisherService)
	chatService := service.NewChatService(uowFactory, notificationService)
	authService := service.NewAuthService(uowFactory, emailService, publisherService, sysLogger)
	adminUserService := service.NewAdminUserService(uowFactory, publisherService)
	unitService := service.NewUnitService(uowFactory, publisherService, worklogService)

	return &Container{
		AuthController:      controller.NewAuthController(authService),
		WorklogController:   controller.NewWorklogController(worklogService),
		HistoryController:   controller.NewHistoryController(historyService),
		ApprovalController:  controller.NewApprovalController(approvalService),
		ChatController:      controller.NewChatController(chatService),
		AdminUserController: controller.NewAdminUserController(adminUserService, chatService),
		UnitController:      controller.NewUnitController(unitService),
		RealtimeController:  controller.NewRealtimeController(wsHub),

		AuditConsumer: auditConsumer,
		WebSocketHub:  wsHub,
		Logger:        sysLogger,
	}
}
