package repository

import (
	"io"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/store"

	"github.com/sirupsen/logrus"
)

// Searchable client fields
const (
	ClientName     = "nombre"
	ClientRace     = "raza"
	ClientLocation = "ubicacion"
)

type ClientRepository interface {
	Add(client model.Client) error
	GetAll() ([]model.Client, error)
	FindByID(id string) (model.Client, bool, error)
	RemoveByID(id string) (bool, error)
	UpdateByID(id string, upd model.ClientUpdate) (bool, error)
	Search(q SearchQuery) ([]model.Client, error)
	Show(w io.Writer) error

	FindTx(doc *store.Document, id string) (model.Client, bool, error)
}

type clientRepo struct {
	records collection[model.Client]
}

var clientFields = fieldSet[model.Client]{
	ClientName:     {text: func(c model.Client) string { return c.Name }},
	ClientRace:     {text: func(c model.Client) string { return c.Race }},
	ClientLocation: {text: func(c model.Client) string { return c.Location }},
}

func NewClientRepo(s *store.Store, log logrus.FieldLogger) ClientRepository {
	return &clientRepo{records: newCollection(s, log, store.KeyClients, (*store.Document).Clients)}
}

func (r *clientRepo) Add(client model.Client) error {
	return r.records.add(client)
}

func (r *clientRepo) GetAll() ([]model.Client, error) {
	return r.records.getAll()
}

func (r *clientRepo) FindByID(id string) (model.Client, bool, error) {
	return r.records.find(id)
}

func (r *clientRepo) RemoveByID(id string) (bool, error) {
	return r.records.remove(id)
}

func (r *clientRepo) UpdateByID(id string, upd model.ClientUpdate) (bool, error) {
	return r.records.update(id, upd.Apply)
}

func (r *clientRepo) Search(q SearchQuery) ([]model.Client, error) {
	clients, err := r.records.getAll()
	if err != nil {
		return nil, err
	}
	return clientFields.search(clients, q)
}

func (r *clientRepo) Show(w io.Writer) error {
	clients, err := r.records.getAll()
	if err != nil {
		return err
	}
	RenderClients(w, clients)
	return nil
}

func RenderClients(w io.Writer, clients []model.Client) {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{c.ID, c.Name, c.Race, c.Location})
	}
	renderTable(w, []string{"ID", "Nombre", "Raza", "Ubicación"}, rows, "No hay clientes registrados.")
}

func (r *clientRepo) FindTx(doc *store.Document, id string) (model.Client, bool, error) {
	return r.records.findTx(doc, id)
}
