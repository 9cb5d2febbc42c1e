package handler

import (
	"fmt"
	"io"
	"strings"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/service"

	"github.com/shopspring/decimal"
)

// TransactionHandler collects purchase, sale and return input and hands it to
// the workflow. It never mutates collections itself.
type TransactionHandler struct {
	prompt       Prompter
	out          io.Writer
	workflow     service.TransactionService
	goods        repository.GoodRepository
	clients      repository.ClientRepository
	merchants    repository.MerchantRepository
	transactions repository.TransactionRepository
}

func NewTransactionHandler(
	p Prompter,
	out io.Writer,
	workflow service.TransactionService,
	goods repository.GoodRepository,
	clients repository.ClientRepository,
	merchants repository.MerchantRepository,
	transactions repository.TransactionRepository,
) *TransactionHandler {
	return &TransactionHandler{
		prompt:       p,
		out:          out,
		workflow:     workflow,
		goods:        goods,
		clients:      clients,
		merchants:    merchants,
		transactions: transactions,
	}
}

func (h *TransactionHandler) Menu() error {
	action, err := choose(h.prompt, "Tipo de transacción:", []Option{
		{Label: "Venta", Value: string(model.TxSale)},
		{Label: "Compra", Value: string(model.TxPurchase)},
		{Label: "Devolución", Value: string(model.TxReturn)},
		{Label: "Listar transacciones", Value: "list"},
		{Label: "Buscar transacciones", Value: "search"},
	})
	if err != nil {
		return err
	}

	switch action {
	case string(model.TxSale):
		return h.Sale()
	case string(model.TxPurchase):
		return h.Purchase()
	case string(model.TxReturn):
		return h.Return()
	case "list":
		return h.transactions.Show(h.out)
	case "search":
		return h.Search()
	}
	return nil
}

// Purchase buffers the bought goods until the amount is entered, then records
// goods and transaction in one step.
func (h *TransactionHandler) Purchase() error {
	merchants, err := h.merchants.GetAll()
	if err != nil {
		return err
	}
	if len(merchants) == 0 {
		fmt.Fprintln(h.out, "No hay mercaderes disponibles para esta transacción.")
		return nil
	}
	merchantID, err := choose(h.prompt, "Seleccione el mercader:", merchantOptions(merchants))
	if err != nil {
		return err
	}

	var bought []model.Good
	for {
		good, err := promptGood(h.prompt)
		if err != nil {
			return err
		}
		bought = append(bought, good)

		more, err := h.prompt.Confirm("¿Desea añadir otro bien?")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	amount, err := h.prompt.Number("Cantidad total de coronas pagadas:")
	if err != nil {
		return err
	}

	res, err := h.workflow.RegisterPurchase(service.PurchaseRequest{
		MerchantID: merchantID,
		Goods:      bought,
		Amount:     &amount,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Transacción de compra registrada con éxito (%s).\n", res.Transaction.ID)
	return nil
}

func (h *TransactionHandler) Sale() error {
	clients, err := h.clients.GetAll()
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		fmt.Fprintln(h.out, "No hay clientes disponibles para esta transacción.")
		return nil
	}
	goods, err := h.goods.GetAll()
	if err != nil {
		return err
	}
	if len(goods) == 0 {
		fmt.Fprintln(h.out, "No hay bienes disponibles para la venta.")
		return nil
	}

	clientID, err := choose(h.prompt, "Seleccione el cliente:", clientOptions(clients))
	if err != nil {
		return err
	}
	ids, err := chooseMany(h.prompt, "Seleccione los bienes a vender:", goodOptions(goods))
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(h.out, "No se seleccionaron bienes para la venta.")
		return nil
	}

	prices := make(map[string]decimal.Decimal, len(ids))
	for _, id := range ids {
		price, err := h.prompt.Number(fmt.Sprintf("Ingrese el precio de venta para el bien con id %s:", id))
		if err != nil {
			return err
		}
		prices[id] = price
	}
	amount, err := h.prompt.Number("Cantidad total de coronas recibidas:")
	if err != nil {
		return err
	}

	res, err := h.workflow.RegisterSale(service.SaleRequest{
		ClientID: clientID,
		GoodIDs:  ids,
		Prices:   prices,
		Amount:   &amount,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Transacción de venta registrada con éxito (%s).\n", res.Transaction.ID)
	return nil
}

func (h *TransactionHandler) Return() error {
	candidates, err := h.workflow.ReturnableTransactions()
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		fmt.Fprintln(h.out, "No hay transacciones de compra o venta disponibles para devolución.")
		return nil
	}

	opts := make([]Option, len(candidates))
	for i, t := range candidates {
		opts[i] = Option{
			Label: fmt.Sprintf("%s - %s - %s (%s coronas)", t.Type, t.Date.Format("2006-01-02"), t.Party.Name(), t.Amount),
			Value: t.ID,
		}
	}
	txID, err := choose(h.prompt, "Seleccione la transacción para la devolución:", opts)
	if err != nil {
		return err
	}
	var orig model.Transaction
	for _, t := range candidates {
		if t.ID == txID {
			orig = t
		}
	}

	req := service.ReturnRequest{TransactionID: txID}
	req.Full, err = h.prompt.Confirm("¿Desea devolver todos los bienes de esta transacción?")
	if err != nil {
		return err
	}
	if !req.Full {
		req.GoodIDs, err = chooseMany(h.prompt, "Seleccione los bienes a devolver:", goodOptions(orig.Goods))
		if err != nil {
			return err
		}
		if len(req.GoodIDs) == 0 {
			fmt.Fprintln(h.out, "No se seleccionaron bienes para devolver.")
			return nil
		}
	}

	res, err := h.workflow.RegisterReturn(req)
	if err != nil {
		return err
	}
	if res.AlreadyRecorded {
		fmt.Fprintln(h.out, "Esta devolución ya ha sido registrada previamente.")
		return nil
	}

	if res.Dissolved {
		fmt.Fprintln(h.out, "Todos los bienes fueron devueltos. La transacción original ha sido eliminada.")
	} else if res.Original != nil {
		names := make([]string, len(res.Original.Goods))
		for i, g := range res.Original.Goods {
			names[i] = g.Name
		}
		fmt.Fprintf(h.out, "La transacción original ahora tiene un valor total de %s coronas.\n", res.Original.Amount)
		fmt.Fprintf(h.out, "Los bienes restantes en la transacción original son: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintln(h.out, "Devolución registrada con éxito.")
	fmt.Fprintf(h.out, "Se devolvieron bienes por un valor total de %s coronas.\n", res.Amount)
	return nil
}

func (h *TransactionHandler) Search() error {
	field, err := choose(h.prompt, "Buscar por:", []Option{
		{Label: "Tipo", Value: repository.TxType},
		{Label: "Nombre del involucrado", Value: repository.TxPartyName},
		{Label: "Id del involucrado", Value: repository.TxPartyID},
	})
	if err != nil {
		return err
	}
	value, err := h.prompt.Input("Valor a buscar:")
	if err != nil {
		return err
	}
	sortBy, err := choose(h.prompt, "Ordenar por:", []Option{
		{Label: "Fecha", Value: repository.TxDate},
		{Label: "Cantidad de coronas", Value: repository.TxAmount},
	})
	if err != nil {
		return err
	}
	order, err := chooseOrder(h.prompt)
	if err != nil {
		return err
	}

	txs, err := h.transactions.Search(repository.SearchQuery{Field: field, Value: value, SortBy: sortBy, Order: order})
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Fprintln(h.out, "No se encontraron transacciones con ese criterio.")
		return nil
	}
	repository.RenderTransactions(h.out, txs)
	return nil
}
