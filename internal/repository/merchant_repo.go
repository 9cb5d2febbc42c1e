package repository

import (
	"io"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/store"

	"github.com/sirupsen/logrus"
)

// Searchable merchant fields
const (
	MerchantName     = "nombre"
	MerchantType     = "tipo"
	MerchantLocation = "ubicacion"
)

type MerchantRepository interface {
	Add(merchant model.Merchant) error
	GetAll() ([]model.Merchant, error)
	FindByID(id string) (model.Merchant, bool, error)
	RemoveByID(id string) (bool, error)
	UpdateByID(id string, upd model.MerchantUpdate) (bool, error)
	Search(q SearchQuery) ([]model.Merchant, error)
	Show(w io.Writer) error

	FindTx(doc *store.Document, id string) (model.Merchant, bool, error)
}

type merchantRepo struct {
	records collection[model.Merchant]
}

var merchantFields = fieldSet[model.Merchant]{
	MerchantName:     {text: func(m model.Merchant) string { return m.Name }},
	MerchantType:     {text: func(m model.Merchant) string { return m.Type }},
	MerchantLocation: {text: func(m model.Merchant) string { return m.Location }},
}

func NewMerchantRepo(s *store.Store, log logrus.FieldLogger) MerchantRepository {
	return &merchantRepo{records: newCollection(s, log, store.KeyMerchants, (*store.Document).Merchants)}
}

func (r *merchantRepo) Add(merchant model.Merchant) error {
	return r.records.add(merchant)
}

func (r *merchantRepo) GetAll() ([]model.Merchant, error) {
	return r.records.getAll()
}

func (r *merchantRepo) FindByID(id string) (model.Merchant, bool, error) {
	return r.records.find(id)
}

func (r *merchantRepo) RemoveByID(id string) (bool, error) {
	return r.records.remove(id)
}

func (r *merchantRepo) UpdateByID(id string, upd model.MerchantUpdate) (bool, error) {
	return r.records.update(id, upd.Apply)
}

func (r *merchantRepo) Search(q SearchQuery) ([]model.Merchant, error) {
	merchants, err := r.records.getAll()
	if err != nil {
		return nil, err
	}
	return merchantFields.search(merchants, q)
}

func (r *merchantRepo) Show(w io.Writer) error {
	merchants, err := r.records.getAll()
	if err != nil {
		return err
	}
	RenderMerchants(w, merchants)
	return nil
}

func RenderMerchants(w io.Writer, merchants []model.Merchant) {
	rows := make([][]string, 0, len(merchants))
	for _, m := range merchants {
		rows = append(rows, []string{m.ID, m.Name, m.Type, m.Location})
	}
	renderTable(w, []string{"ID", "Nombre", "Tipo", "Ubicación"}, rows, "No hay mercaderes registrados.")
}

func (r *merchantRepo) FindTx(doc *store.Document, id string) (model.Merchant, bool, error) {
	return r.records.findTx(doc, id)
}
