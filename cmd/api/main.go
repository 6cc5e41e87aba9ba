package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/config"
	"github.com/vialtrack/vialtrack-api/internal/infrastructure/database"
	"github.com/vialtrack/vialtrack-api/internal/infrastructure/repository"
	"github.com/vialtrack/vialtrack-api/internal/presentation/http/handler"
	"github.com/vialtrack/vialtrack-api/internal/presentation/http/routes"
	"github.com/vialtrack/vialtrack-api/pkg/agent"
	"github.com/vialtrack/vialtrack-api/pkg/jwtauth"
	"github.com/vialtrack/vialtrack-api/pkg/printclient"
	"github.com/vialtrack/vialtrack-api/pkg/shipping"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if cfg.App.Debug {
		log.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(log.Formatter)
	logrus.SetLevel(log.Level)

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedDefaultData(db); err != nil {
		log.Warnf("Failed to seed default data: %v", err)
	}

	jwtManager := jwtauth.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer)

	// Repositories
	orgRepo := repository.NewOrgRepository(db)
	contactRepo := repository.NewContactRepository(db)
	peptideRepo := repository.NewPeptideRepository(db)
	lotRepo := repository.NewLotRepository(db)
	bottleRepo := repository.NewBottleRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	orderRepo := repository.NewSalesOrderRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	protocolRepo := repository.NewProtocolRepository(db)
	chatRepo := repository.NewChatMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Outbound clients
	agentClient := agent.NewClient(cfg.Agent.Endpoint, cfg.Agent.APIKey)
	shippingClient := shipping.NewClient(cfg.Shipping.BaseURL, cfg.Shipping.APIKey)
	printClient := printclient.NewClient()

	// Services
	orgService := service.NewOrgService(orgRepo)
	contactService := service.NewContactService(contactRepo, profileRepo)
	inventoryService := service.NewInventoryService(peptideRepo, lotRepo, bottleRepo)
	movementService := service.NewMovementService(movementRepo, bottleRepo, contactRepo)
	orderService := service.NewOrderService(orderRepo, contactRepo, peptideRepo, profileRepo, commissionRepo)
	shippingService := service.NewShippingService(orderRepo, contactRepo, notificationRepo, shippingClient, printClient)
	protocolService := service.NewProtocolService(protocolRepo, contactRepo, peptideRepo)
	profileService := service.NewProfileService(profileRepo, commissionRepo)
	referralService := service.NewReferralService(profileRepo, referralRepo)
	chatService := service.NewChatService(chatRepo, agentClient)
	notificationService := service.NewNotificationService(notificationRepo)
	leadService := service.NewLeadService(leadRepo)

	handlers := &routes.Handlers{
		Org:          handler.NewOrgHandler(orgService),
		Contact:      handler.NewContactHandler(contactService),
		Inventory:    handler.NewInventoryHandler(inventoryService),
		Movement:     handler.NewMovementHandler(movementService),
		Order:        handler.NewOrderHandler(orderService),
		Shipping:     handler.NewShippingHandler(shippingService),
		Protocol:     handler.NewProtocolHandler(protocolService),
		Profile:      handler.NewProfileHandler(profileService),
		Referral:     handler.NewReferralHandler(referralService),
		Chat:         handler.NewChatHandler(chatService),
		Notification: handler.NewNotificationHandler(notificationService),
		Lead:         handler.NewLeadHandler(leadService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Log:             log,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port": port,
			"env":  cfg.App.Env,
		}).Infof("Starting %s", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Info("Server exited")
}
