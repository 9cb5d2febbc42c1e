package handler

import (
	"errors"
	"fmt"
	"io"

	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/service"

	"github.com/sirupsen/logrus"
)

// App is the interactive menu tree. It collects input through a Prompter and
// calls the managers for plain CRUD or the workflow for compound operations.
type App struct {
	prompt Prompter
	out    io.Writer
	log    logrus.FieldLogger

	goods        *InventoryHandler
	parties      *PartyHandler
	transactions *TransactionHandler
	reports      *ReportHandler
}

type Deps struct {
	Goods        repository.GoodRepository
	Clients      repository.ClientRepository
	Merchants    repository.MerchantRepository
	Transactions repository.TransactionRepository
	Workflow     service.TransactionService
	Reports      service.ReportService
}

func NewApp(p Prompter, out io.Writer, log logrus.FieldLogger, deps Deps) *App {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &App{
		prompt:       p,
		out:          out,
		log:          log,
		goods:        NewInventoryHandler(p, out, deps.Goods),
		parties:      NewPartyHandler(p, out, deps.Clients, deps.Merchants),
		transactions: NewTransactionHandler(p, out, deps.Workflow, deps.Goods, deps.Clients, deps.Merchants, deps.Transactions),
		reports:      NewReportHandler(p, out, deps.Reports),
	}
}

const exitValue = "exit"

var mainMenu = []Option{
	{Label: "Gestionar bienes", Value: "goods"},
	{Label: "Gestionar clientes y mercaderes", Value: "parties"},
	{Label: "Gestionar transacciones", Value: "transactions"},
	{Label: "Generar informes", Value: "reports"},
	{Label: "Salir", Value: exitValue},
}

// Run shows the main menu until the user exits or interrupts it at the main
// menu. Operation failures and interrupts are reported and control returns to
// the menu; only prompt failures end the loop.
func (a *App) Run() error {
	for {
		choice, err := a.prompt.Select("¿Qué desea hacer?", mainMenu)
		if err != nil {
			if errors.Is(err, ErrInterrupted) {
				return nil
			}
			return err
		}

		var opErr error
		switch choice {
		case "goods":
			opErr = a.goods.Menu()
		case "parties":
			opErr = a.parties.Menu()
		case "transactions":
			opErr = a.transactions.Menu()
		case "reports":
			opErr = a.reports.Menu()
		case exitValue:
			fmt.Fprintln(a.out, "¡Hasta pronto!")
			return nil
		}
		// Ctrl-C inside an operation only abandons that operation
		if errors.Is(opErr, ErrInterrupted) {
			fmt.Fprintln(a.out, "Operación cancelada.")
			continue
		}
		a.report(opErr)
	}
}

// report turns an operation error into a user-facing message. Not-found and
// precondition failures are expected outcomes; anything else is logged as a hard failure.
func (a *App) report(err error) {
	switch {
	case err == nil, errors.Is(err, errBack):
		return
	case service.IsPrecondition(err), service.IsNotFound(err),
		errors.Is(err, repository.ErrAlreadyExists), errors.Is(err, repository.ErrInvalidRecord):
		fmt.Fprintf(a.out, "Operación cancelada: %v\n", err)
	default:
		a.log.WithError(err).Error("Operation failed")
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}
