package main

import (
	"flag"

	"go-inventory-ledger/internal/config"
	"go-inventory-ledger/internal/handler"
	"go-inventory-ledger/internal/store"
	"go-inventory-ledger/pkg/logger"
)

func main() {
	force := flag.Bool("force", false, "reset without asking for confirmation")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Format).WithField("file", cfg.DataFile)

	if !*force {
		ok, err := handler.NewSurveyPrompter().Confirm("Se borrarán todos los bienes, clientes, mercaderes y transacciones. ¿Continuar?")
		if err != nil || !ok {
			log.Info("Reset aborted")
			return
		}
	}

	if err := store.New(store.NewFileAdapter(cfg.DataFile), log).Reset(); err != nil {
		log.WithError(err).Fatal("Failed to reset ledger")
	}
	log.Info("Ledger reset to empty collections")
}
