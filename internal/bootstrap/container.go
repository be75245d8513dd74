package bootstrap

import (
	"context"
	"log"

	"legal-consult-be/internal/config"
	"legal-consult-be/internal/controller"
	"legal-consult-be/internal/pkg/logger"
	"legal-consult-be/internal/pkg/mailer"
	"legal-consult-be/internal/repository/unitofwork"
	"legal-consult-be/internal/service"
	"legal-consult-be/internal/websocket"
	"legal-consult-be/pkg/cache"
	pktNats "legal-consult-be/pkg/nats"
	"legal-consult-be/pkg/sepay"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	UserController    controller.IUserController
	LawyerController  controller.ILawyerController
	BookingController controller.IBookingController
	PaymentController controller.IPaymentController
	ChatController    controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	SchedulerService service.ISchedulerService

	// WebSockets
	WebSocketHub *websocket.Hub
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

	sepayCfg := sepay.Config{
		ApiKey:        cfg.SePay.ApiKey,
		BankCode:      cfg.SePay.BankCode,
		AccountNumber: cfg.SePay.AccountNumber,
		AccountName:   cfg.SePay.AccountName,
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

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

	// Cache store. Falls back to in-process cache when Redis is down so a
	// dev box without Redis still boots.
	var cacheStore cache.Store
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-memory cache", err)
		cacheStore = cache.NewMemoryStore()
	} else {
		cacheStore = cache.NewRedisStore(rdb)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/realtime.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Keys.BookingCreatedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.BookingCreatedTopic,
		uowFactory,
		emailService,
	)

	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	userService := service.NewUserService(uowFactory)
	lawyerService := service.NewLawyerService(uowFactory, cacheStore, natsPub, sysLogger)
	bookingService := service.NewBookingService(
		uowFactory,
		cacheStore,
		sepayCfg,
		publisherService,
		natsPub,
		emailService,
		sysLogger,
	)
	paymentService := service.NewPaymentService(
		uowFactory,
		cacheStore,
		sepayCfg,
		natsPub,
		wsHub,
		sysLogger,
	)
	chatService := service.NewChatService(uowFactory, wsHub)
	schedulerService := service.NewSchedulerService(uowFactory, cacheStore, emailService, natsPub, sysLogger)

	// 3.5 Notification worker: forwards bus events to connected users.
	if natsSub != nil {
		notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
		go func() {
			if err := notifService.Start(); err != nil {
				log.Printf("[WARN] Notification worker failed to start: %v", err)
			}
		}()
	}

	// 4. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService),
		UserController:    controller.NewUserController(userService),
		LawyerController:  controller.NewLawyerController(lawyerService),
		BookingController: controller.NewBookingController(bookingService),
		PaymentController: controller.NewPaymentController(paymentService, sepayCfg, sysLogger),
		ChatController:    controller.NewChatController(chatService),

		ConsumerService:  consumerService,
		SchedulerService: schedulerService,

		WebSocketHub: wsHub,
	}
}
