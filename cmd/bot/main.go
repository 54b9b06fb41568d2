package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	walog "go.mau.fi/whatsmeow/util/log"
	_ "modernc.org/sqlite"

	"github.com/fardanhakim/onepercent-bot/internal/app/usecase"
	"github.com/fardanhakim/onepercent-bot/internal/config"
	"github.com/fardanhakim/onepercent-bot/internal/domain"
	"github.com/fardanhakim/onepercent-bot/internal/infra/gemini"
	"github.com/fardanhakim/onepercent-bot/internal/infra/sheets"
	"github.com/fardanhakim/onepercent-bot/internal/infra/sqlite"
	"github.com/fardanhakim/onepercent-bot/internal/infra/wa"
)

func main() {
	ctx := context.Background()

	// 1. Load Config
	cfg := config.Load()
	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY is not set")
	}
	if len(cfg.AuthorizedUsers) == 0 {
		log.Fatal("AUTHORIZED_USERS is not set; refusing to run an open bot")
	}

	// 2. Loggers
	zapConfig := zap.NewProductionConfig()
	if cfg.Verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	waLogger := walog.Stdout("Client", "INFO", true)

	// 3. Record & goal stores
	records, goals, cleanup, err := openStores(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open stores", zap.Error(err))
	}
	defer cleanup()

	// 4. Classifier
	classifier, err := gemini.NewClassifier(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Fatal("Failed to create classifier", zap.Error(err))
	}

	// 5. Use Cases
	handleUC := usecase.NewHandleMessageUsecase(
		classifier,
		usecase.NewLogActivityUsecase(records, logger),
		usecase.NewQueryMetricUsecase(records),
		usecase.NewSetGoalUsecase(goals),
		usecase.NewCheckGoalsUsecase(records, goals),
		cfg.AuthorizedUsers,
		cfg.ClassifyTimeout,
		cfg.StoreTimeout,
		logger,
	)

	// 6. WhatsApp transport
	waService := wa.NewService(cfg.SQLitePath, waLogger)
	waService.SetMessageHandler(handleUC.Execute)
	if err := waService.Initialize(ctx); err != nil {
		logger.Fatal("Failed to initialize WhatsApp service", zap.Error(err))
	}

	// 7. Connect / Login
	if !waService.IsLoggedIn() {
		if err := waService.Connect(); err != nil {
			logger.Fatal("Failed to connect for login", zap.Error(err))
		}
		if cfg.BotPhone != "" {
			code, err := waService.Pair(ctx, cfg.BotPhone)
			if err != nil {
				logger.Error("Failed to generate pair code", zap.Error(err))
			} else {
				logger.Info("Pair code ready, confirm it under Linked Devices", zap.String("code", code))
			}
		} else {
			logger.Info("Not logged in and BOT_PHONE not set, printing QR")
			waService.PrintQR()
		}
	} else {
		if err := waService.Connect(); err != nil {
			logger.Fatal("Failed to connect", zap.Error(err))
		}
	}

	logger.Info("Bot is running, press Ctrl+C to exit")

	// 8. Wait for OS signal
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info("Shutting down")
	waService.Disconnect()
}

// openStores builds the record and goal tables for the configured
// backend and provisions schema / header rows.
func openStores(ctx context.Context, cfg config.Config) (domain.Table, domain.Table, func(), error) {
	switch cfg.StorageBackend {
	case "sheets":
		if cfg.SheetsCredentialsFile == "" || cfg.SpreadsheetID == "" {
			return nil, nil, nil, fmt.Errorf("sheets backend needs SHEETS_CREDENTIALS_FILE and SPREADSHEET_ID")
		}
		creds, err := os.ReadFile(cfg.SheetsCredentialsFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("reading sheets credentials: %w", err)
		}
		client, err := sheets.NewClient(ctx, creds, cfg.SpreadsheetID)
		if err != nil {
			return nil, nil, nil, err
		}
		records := sheets.NewTable(client, cfg.RecordsSheet, domain.RecordHeader())
		goals := sheets.NewTable(client, cfg.GoalsSheet, domain.GoalHeader())
		for _, t := range []*sheets.Table{records, goals} {
			if err := t.Ensure(ctx); err != nil {
				return nil, nil, nil, err
			}
		}
		return records, goals, func() {}, nil

	case "sqlite":
		// WAL mode and a busy timeout avoid "database is locked" next
		// to the WhatsApp session store.
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.SQLitePath)
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening database: %w", err)
		}
		records := sqlite.NewRecordRepository(db)
		goals := sqlite.NewGoalRepository(db)
		for _, repo := range []*sqlite.TableRepository{records, goals} {
			if err := repo.InitTable(ctx); err != nil {
				db.Close()
				return nil, nil, nil, err
			}
		}
		return records, goals, func() { db.Close() }, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
