package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"oak-village-be/internal/config"
	"oak-village-be/internal/controller"
	"oak-village-be/internal/entity"
	"oak-village-be/internal/pkg/logger"
	"oak-village-be/internal/repository/localstore"
	"oak-village-be/internal/repository/memory"
	"oak-village-be/internal/service"
	"oak-village-be/pkg/gateway/factory"
	"oak-village-be/pkg/gateway/gemini"
)

type Container struct {
	// Controllers
	DreamController     controller.IDreamController
	StoryController     controller.IStoryController
	ChapelController    controller.IChapelController
	GuestbookController controller.IGuestbookController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Generative Gateway
	gatewayFactory, err := factory.NewGatewayFactory(cfg.Gateway.Provider, gemini.Config{
		ApiKey:             cfg.Keys.GoogleGemini,
		BaseURL:            cfg.Gateway.BaseURL,
		TranscriptionModel: cfg.Gateway.TranscriptionModel,
		ImageModel:         cfg.Gateway.ImageModel,
		TextModel:          cfg.Gateway.TextModel,
		TTSModel:           cfg.Gateway.TTSModel,
		TTSVoice:           cfg.Gateway.TTSVoice,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Gateway Provider: %v", err)
	}
	log.Printf("[INFO] Using Gateway Provider: %s", cfg.Gateway.Provider)

	// 4. Repositories
	storyRepo := memory.NewStoryRepository()
	guestbookRepo, err := localstore.NewGuestbookRepository(cfg.Store.GuestbookFilePath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to open guestbook store: %v", err)
	}

	// 5. Services
	publisherService := service.NewPublisherService(pubSub)
	consumerService := service.NewConsumerService(pubSub, sysLogger)

	relayService := service.NewRelayService(sysLogger)
	dreamService := service.NewDreamService(
		gatewayFactory,
		relayService,
		publisherService,
		sysLogger,
		entity.ImageSize(cfg.Gateway.DefaultImageSize),
	)
	storyService := service.NewStoryService(gatewayFactory, storyRepo, publisherService, sysLogger)
	chapelService := service.NewChapelService(gatewayFactory, sysLogger)
	guestbookService := service.NewGuestbookService(guestbookRepo)

	// 6. Controllers
	return &Container{
		DreamController:     controller.NewDreamController(dreamService, relayService),
		StoryController:     controller.NewStoryController(storyService),
		ChapelController:    controller.NewChapelController(chapelService),
		GuestbookController: controller.NewGuestbookController(guestbookService),

		ConsumerService: consumerService,
	}
}
