package main

import (
	"os"

	"go-inventory-ledger/internal/config"
	"go-inventory-ledger/internal/handler"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/internal/store"
	"go-inventory-ledger/pkg/logger"
)

func main() {
	// 1. Load config
	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	// 2. Open the ledger document
	st, err := store.Open(store.NewFileAdapter(cfg.DataFile), log)
	if err != nil {
		log.WithError(err).WithField("file", cfg.DataFile).Fatal("Failed to open ledger")
	}
	log.WithField("file", cfg.DataFile).Info("Ledger opened")

	// 3. Dependency injection
	goodRepo := repository.NewGoodRepo(st, log)
	clientRepo := repository.NewClientRepo(st, log)
	merchantRepo := repository.NewMerchantRepo(st, log)
	txRepo := repository.NewTransactionRepo(st, log)

	workflow := service.NewTransactionService(st, goodRepo, clientRepo, merchantRepo, txRepo, log)
	reports := service.NewReportService(goodRepo, txRepo)

	app := handler.NewApp(handler.NewSurveyPrompter(), os.Stdout, log, handler.Deps{
		Goods:        goodRepo,
		Clients:      clientRepo,
		Merchants:    merchantRepo,
		Transactions: txRepo,
		Workflow:     workflow,
		Reports:      reports,
	})

	// 4. Menu loop until the user exits
	if err := app.Run(); err != nil {
		log.WithError(err).Fatal("Prompt failed")
	}
	log.Info("Ledger closed")
}
