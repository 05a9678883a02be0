package bootstrap

import (
	"log"
	"time"

	"pii-redaction-be/internal/config"
	"pii-redaction-be/internal/controller"
	"pii-redaction-be/internal/pkg/logger"
	"pii-redaction-be/internal/repository/memory"
	"pii-redaction-be/internal/repository/unitofwork"
	"pii-redaction-be/internal/service"
	pktNats "pii-redaction-be/pkg/nats"
	"pii-redaction-be/pkg/redactor"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	ReviewController   controller.IReviewController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS (optional; the app runs without a broker)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// In-memory review sessions
	sessionRepo := memory.NewSessionRepository()

	// Redaction engine client
	engine := redactor.NewHTTPEngine(
		cfg.Apply.EndpointURL,
		time.Duration(cfg.Apply.TimeoutSeconds)*time.Second,
	)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.AuditTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.AuditTopic,
		uowFactory,
	)

	documentService := service.NewDocumentService(uowFactory, publisherService, sessionRepo)
	reviewService := service.NewReviewService(uowFactory, sessionRepo, publisherService, sysLogger)
	redactionService := service.NewRedactionService(
		uowFactory,
		sessionRepo,
		engine,
		publisherService,
		natsPub,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		DocumentController: controller.NewDocumentController(documentService),
		ReviewController:   controller.NewReviewController(reviewService, redactionService),
		ConsumerService:    consumerService,
	}
}
