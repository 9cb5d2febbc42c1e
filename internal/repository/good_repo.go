package repository

import (
	"io"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/store"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Searchable good fields
const (
	GoodName        = "nombre"
	GoodDescription = "descripcion"
	GoodMaterial    = "material"
	GoodValue       = "valor"
)

type GoodRepository interface {
	Add(good model.Good) error
	GetAll() ([]model.Good, error)
	FindByID(id string) (model.Good, bool, error)
	RemoveByID(id string) (bool, error)
	UpdateByID(id string, upd model.GoodUpdate) (bool, error)
	Search(q SearchQuery) ([]model.Good, error)
	Show(w io.Writer) error

	// Variants that run inside a store.Transaction
	AddTx(doc *store.Document, good model.Good) error
	FindTx(doc *store.Document, id string) (model.Good, bool, error)
	RemoveTx(doc *store.Document, id string) (bool, error)
}

type goodRepo struct {
	records collection[model.Good]
}

var goodFields = fieldSet[model.Good]{
	GoodName:        {text: func(g model.Good) string { return g.Name }},
	GoodDescription: {text: func(g model.Good) string { return g.Description }, substring: true},
	GoodMaterial:    {text: func(g model.Good) string { return g.Material }},
	GoodValue:       {number: func(g model.Good) decimal.Decimal { return g.Value }},
}

func NewGoodRepo(s *store.Store, log logrus.FieldLogger) GoodRepository {
	return &goodRepo{records: newCollection(s, log, store.KeyGoods, (*store.Document).Goods)}
}

func (r *goodRepo) Add(good model.Good) error {
	return r.records.add(good)
}

func (r *goodRepo) GetAll() ([]model.Good, error) {
	return r.records.getAll()
}

func (r *goodRepo) FindByID(id string) (model.Good, bool, error) {
	return r.records.find(id)
}

func (r *goodRepo) RemoveByID(id string) (bool, error) {
	return r.records.remove(id)
}

func (r *goodRepo) UpdateByID(id string, upd model.GoodUpdate) (bool, error) {
	return r.records.update(id, upd.Apply)
}

func (r *goodRepo) Search(q SearchQuery) ([]model.Good, error) {
	goods, err := r.records.getAll()
	if err != nil {
		return nil, err
	}
	return goodFields.search(goods, q)
}

func (r *goodRepo) Show(w io.Writer) error {
	goods, err := r.records.getAll()
	if err != nil {
		return err
	}
	RenderGoods(w, goods)
	return nil
}

func RenderGoods(w io.Writer, goods []model.Good) {
	rows := make([][]string, 0, len(goods))
	for _, g := range goods {
		rows = append(rows, []string{g.ID, g.Name, g.Description, g.Material, formatWeight(g.Weight), g.Value.String()})
	}
	renderTable(w, []string{"ID", "Nombre", "Descripción", "Material", "Peso", "Valor"}, rows, "No hay bienes en el inventario.")
}

func (r *goodRepo) AddTx(doc *store.Document, good model.Good) error {
	return r.records.addTx(doc, good)
}

func (r *goodRepo) FindTx(doc *store.Document, id string) (model.Good, bool, error) {
	return r.records.findTx(doc, id)
}

func (r *goodRepo) RemoveTx(doc *store.Document, id string) (bool, error) {
	return r.records.removeTx(doc, id)
}
