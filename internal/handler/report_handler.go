package handler

import (
	"fmt"
	"io"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/service"
)

type ReportHandler struct {
	prompt  Prompter
	out     io.Writer
	service service.ReportService
}

func NewReportHandler(p Prompter, out io.Writer, s service.ReportService) *ReportHandler {
	return &ReportHandler{prompt: p, out: out, service: s}
}

func (h *ReportHandler) Menu() error {
	report, err := choose(h.prompt, "Seleccione el informe:", []Option{
		{Label: "Stock disponible de un bien", Value: "stock"},
		{Label: "Bienes más vendidos", Value: "sold"},
		{Label: "Bienes más demandados", Value: "bought"},
		{Label: "Ingresos y gastos", Value: "finance"},
		{Label: "Histórico de un cliente o mercader", Value: "history"},
	})
	if err != nil {
		return err
	}

	switch report {
	case "stock":
		return h.Stock()
	case "sold":
		return h.Popular(model.TxSale)
	case "bought":
		return h.Popular(model.TxPurchase)
	case "finance":
		return h.IncomeExpenses()
	case "history":
		return h.History()
	}
	return nil
}

func (h *ReportHandler) Stock() error {
	name, err := h.prompt.Input("Nombre del bien:")
	if err != nil {
		return err
	}
	goods, err := h.service.StockByName(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Stock de %q: %d unidades.\n", name, len(goods))
	if len(goods) > 0 {
		repository.RenderGoods(h.out, goods)
	}
	return nil
}

func (h *ReportHandler) Popular(kind model.TransactionType) error {
	counts, err := h.service.PopularGoods(kind)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		fmt.Fprintln(h.out, "No hay transacciones para este informe.")
		return nil
	}
	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{c.Name, fmt.Sprint(c.Count)}
	}
	repository.RenderTable(h.out, []string{"Bien", "Veces"}, rows)
	return nil
}

func (h *ReportHandler) IncomeExpenses() error {
	summary, err := h.service.IncomeExpenses()
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Ingresos por ventas: %s coronas.\n", summary.Income)
	fmt.Fprintf(h.out, "Gastos en compras: %s coronas.\n", summary.Expenses)
	return nil
}

func (h *ReportHandler) History() error {
	name, err := h.prompt.Input("Nombre del cliente o mercader:")
	if err != nil {
		return err
	}
	txs, err := h.service.History(name)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Fprintf(h.out, "No hay transacciones de %q.\n", name)
		return nil
	}
	repository.RenderTransactions(h.out, txs)
	return nil
}
