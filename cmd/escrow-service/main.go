package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/LavaJover/shvark-escrow-service/internal/app/background"
	"github.com/LavaJover/shvark-escrow-service/internal/config"
	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/httpapi"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/notifier"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/storage"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)
	if err := migrate.RunMigrations(db, cfg.EscrowDB.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Kafka event publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	publisher := kafka.NewKafkaPublisher(brokers, cfg.KafkaService.TransactionTopic, cfg.KafkaService.DisputeTopic)

	// Init repositories
	transactionRepo := repository.NewDefaultTransactionRepository(db)
	disputeRepo := repository.NewDefaultDisputeRepository(db)
	reminderLogRepo := repository.NewDefaultReminderLogRepository(db)
	paymentRepo := repository.NewDefaultPaymentRepository(db)
	deletionRepo := repository.NewDefaultDeletionRepository(db)

	// Init payment handler
	httpPaymentHandler, err := handlers.NewHTTPPaymentHandler(fmt.Sprintf("%s:%s", cfg.PaymentService.Host, cfg.PaymentService.Port))
	if err != nil {
		log.Fatalf("failed to init payment handler")
	}

	httpNotifier := notifier.NewHTTPNotifier(fmt.Sprintf("%s:%s", cfg.NotificationService.Host, cfg.NotificationService.Port))
	auditLogger := logger.NewPGAuditLogger(db)
	escrowMetrics := metrics.NewEscrowMetrics()

	fileStore := storage.NewLocalFileStore(cfg.Storage.FilesRoot)
	archiveStore := storage.NewArchiveStore(cfg.Storage.ArchiveRoot)

	// Init transaction usecase
	transactionUC := usecase.NewDefaultTransactionUsecase(
		transactionRepo,
		reminderLogRepo,
		paymentRepo,
		httpPaymentHandler,
		httpNotifier,
		publisher,
		auditLogger,
		escrowMetrics,
		usecase.EscrowPolicy{
			InspectionWindow: cfg.Escrow.InspectionWindow,
			PaymentWindow:    cfg.Escrow.PaymentWindow,
			ServiceFeeRate:   cfg.Escrow.ServiceFeeRate,
			ServiceFeeMin:    cfg.Escrow.ServiceFeeMin,
			DealerCommission: cfg.Escrow.DealerCommission,
		},
	)

	// Init dispute usecase
	disputeUC := usecase.NewDefaultDisputeUsecase(
		transactionUC,
		disputeRepo,
		httpNotifier,
		publisher,
		escrowMetrics,
	)

	// Init deletion usecase
	deletionUC := usecase.NewDefaultDeletionUsecase(
		deletionRepo,
		archiveStore,
		fileStore,
		auditLogger,
		escrowMetrics,
	)

	// Background sweeps: reminders + implicit acceptance, scheduled deletions
	tasks := background.NewTasks(transactionUC, deletionUC, cfg.Escrow.ReminderInterval, cfg.Escrow.DeletionInterval)
	tasks.Start(context.Background())

	handler := httpapi.NewEscrowHandler(transactionUC, disputeUC, deletionUC)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("HTTP server started on %s\n", addr)
	if err := http.ListenAndServe(addr, handler.Router()); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
