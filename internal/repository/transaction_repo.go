package repository

import (
	"io"
	"strings"
	"time"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/store"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Searchable transaction fields
const (
	TxType      = "tipo"
	TxPartyName = "involucrado"
	TxPartyID   = "involucradoId"
	TxDate      = "fecha"
	TxAmount    = "cantidadCoronas"
)

type TransactionRepository interface {
	Add(tx model.Transaction) error
	GetAll() ([]model.Transaction, error)
	FindByID(id string) (model.Transaction, bool, error)
	RemoveByID(id string) (bool, error)
	UpdateByID(id string, upd model.TransactionUpdate) (bool, error)
	Search(q SearchQuery) ([]model.Transaction, error)
	Show(w io.Writer) error

	// Variants that run inside a store.Transaction
	AddTx(doc *store.Document, tx model.Transaction) error
	FindTx(doc *store.Document, id string) (model.Transaction, bool, error)
	ListTx(doc *store.Document) ([]model.Transaction, error)
	RemoveTx(doc *store.Document, id string) (bool, error)
	UpdateTx(doc *store.Document, id string, upd model.TransactionUpdate) (bool, error)
}

type transactionRepo struct {
	records collection[model.Transaction]
}

var transactionFields = fieldSet[model.Transaction]{
	TxType:      {text: func(t model.Transaction) string { return string(t.Type) }},
	TxPartyName: {text: func(t model.Transaction) string { return t.Party.Name() }},
	TxPartyID:   {text: func(t model.Transaction) string { return t.Party.ID() }},
	TxDate:      {date: func(t model.Transaction) time.Time { return t.Date }},
	TxAmount:    {number: func(t model.Transaction) decimal.Decimal { return t.Amount }},
}

func NewTransactionRepo(s *store.Store, log logrus.FieldLogger) TransactionRepository {
	return &transactionRepo{records: newCollection(s, log, store.KeyTransactions, (*store.Document).Transactions)}
}

func (r *transactionRepo) Add(tx model.Transaction) error {
	return r.records.add(tx)
}

func (r *transactionRepo) GetAll() ([]model.Transaction, error) {
	return r.records.getAll()
}

func (r *transactionRepo) FindByID(id string) (model.Transaction, bool, error) {
	return r.records.find(id)
}

func (r *transactionRepo) RemoveByID(id string) (bool, error) {
	return r.records.remove(id)
}

func (r *transactionRepo) UpdateByID(id string, upd model.TransactionUpdate) (bool, error) {
	return r.records.update(id, upd.Apply)
}

func (r *transactionRepo) Search(q SearchQuery) ([]model.Transaction, error) {
	txs, err := r.records.getAll()
	if err != nil {
		return nil, err
	}
	return transactionFields.search(txs, q)
}

func (r *transactionRepo) Show(w io.Writer) error {
	txs, err := r.records.getAll()
	if err != nil {
		return err
	}
	RenderTransactions(w, txs)
	return nil
}

// RenderTransactions prints transactions with goods collapsed to their names
func RenderTransactions(w io.Writer, txs []model.Transaction) {
	rows := make([][]string, 0, len(txs))
	for _, t := range txs {
		names := make([]string, len(t.Goods))
		for i, g := range t.Goods {
			names[i] = g.Name
		}
		rows = append(rows, []string{
			string(t.Type),
			t.Date.Local().Format("2006-01-02 15:04:05"),
			strings.Join(names, ", "),
			t.Amount.String(),
			t.Party.Name(),
			t.ID,
		})
	}
	renderTable(w, []string{"Tipo", "Fecha", "Bienes", "Coronas", "Involucrado", "ID"}, rows, "No hay transacciones registradas.")
}

func (r *transactionRepo) AddTx(doc *store.Document, tx model.Transaction) error {
	return r.records.addTx(doc, tx)
}

func (r *transactionRepo) FindTx(doc *store.Document, id string) (model.Transaction, bool, error) {
	return r.records.findTx(doc, id)
}

func (r *transactionRepo) ListTx(doc *store.Document) ([]model.Transaction, error) {
	txs, err := doc.Transactions()
	if err != nil {
		return nil, err
	}
	return *txs, nil
}

func (r *transactionRepo) RemoveTx(doc *store.Document, id string) (bool, error) {
	return r.records.removeTx(doc, id)
}

func (r *transactionRepo) UpdateTx(doc *store.Document, id string, upd model.TransactionUpdate) (bool, error) {
	return r.records.updateTx(doc, id, upd.Apply)
}
