package handler

import (
	"fmt"
	"io"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
)

// PartyHandler manages clients and merchants
type PartyHandler struct {
	prompt    Prompter
	out       io.Writer
	clients   repository.ClientRepository
	merchants repository.MerchantRepository
}

func NewPartyHandler(p Prompter, out io.Writer, clients repository.ClientRepository, merchants repository.MerchantRepository) *PartyHandler {
	return &PartyHandler{prompt: p, out: out, clients: clients, merchants: merchants}
}

var partyActions = []Option{
	{Label: "Añadir", Value: "add"},
	{Label: "Listar", Value: "list"},
	{Label: "Eliminar", Value: "remove"},
	{Label: "Modificar", Value: "update"},
	{Label: "Buscar", Value: "search"},
}

func (h *PartyHandler) Menu() error {
	kind, err := choose(h.prompt, "¿Sobre quién desea operar?", []Option{
		{Label: "Clientes", Value: string(model.PartyClient)},
		{Label: "Mercaderes", Value: string(model.PartyMerchant)},
	})
	if err != nil {
		return err
	}
	action, err := choose(h.prompt, "Acción:", partyActions)
	if err != nil {
		return err
	}

	if model.PartyKind(kind) == model.PartyClient {
		return h.clientAction(action)
	}
	return h.merchantAction(action)
}

func (h *PartyHandler) clientAction(action string) error {
	switch action {
	case "add":
		name, race, location, err := h.readParty("Raza")
		if err != nil {
			return err
		}
		client := model.Client{ID: model.NewID(), Name: name, Race: race, Location: location}
		if err := h.clients.Add(client); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "Cliente %q añadido con id %s.\n", client.Name, client.ID)
	case "list":
		return h.clients.Show(h.out)
	case "remove":
		id, err := h.pickClient("Seleccione el cliente a eliminar:")
		if err != nil {
			return err
		}
		removed, err := h.clients.RemoveByID(id)
		if err != nil {
			return err
		}
		h.done(removed, "Cliente eliminado.")
	case "update":
		id, err := h.pickClient("Seleccione el cliente a modificar:")
		if err != nil {
			return err
		}
		field, value, err := h.readFieldChange(repository.ClientRace, "Raza")
		if err != nil {
			return err
		}
		var upd model.ClientUpdate
		switch field {
		case repository.ClientName:
			upd.Name = &value
		case repository.ClientRace:
			upd.Race = &value
		case repository.ClientLocation:
			upd.Location = &value
		}
		updated, err := h.clients.UpdateByID(id, upd)
		if err != nil {
			return err
		}
		h.done(updated, "Cliente actualizado.")
	case "search":
		q, err := h.readQuery(repository.ClientRace, "Raza")
		if err != nil {
			return err
		}
		clients, err := h.clients.Search(q)
		if err != nil {
			return err
		}
		if len(clients) == 0 {
			fmt.Fprintln(h.out, "No se encontraron clientes con ese criterio.")
			return nil
		}
		repository.RenderClients(h.out, clients)
	}
	return nil
}

func (h *PartyHandler) merchantAction(action string) error {
	switch action {
	case "add":
		name, kind, location, err := h.readParty("Tipo")
		if err != nil {
			return err
		}
		merchant := model.Merchant{ID: model.NewID(), Name: name, Type: kind, Location: location}
		if err := h.merchants.Add(merchant); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "Mercader %q añadido con id %s.\n", merchant.Name, merchant.ID)
	case "list":
		return h.merchants.Show(h.out)
	case "remove":
		id, err := h.pickMerchant("Seleccione el mercader a eliminar:")
		if err != nil {
			return err
		}
		removed, err := h.merchants.RemoveByID(id)
		if err != nil {
			return err
		}
		h.done(removed, "Mercader eliminado.")
	case "update":
		id, err := h.pickMerchant("Seleccione el mercader a modificar:")
		if err != nil {
			return err
		}
		field, value, err := h.readFieldChange(repository.MerchantType, "Tipo")
		if err != nil {
			return err
		}
		var upd model.MerchantUpdate
		switch field {
		case repository.MerchantName:
			upd.Name = &value
		case repository.MerchantType:
			upd.Type = &value
		case repository.MerchantLocation:
			upd.Location = &value
		}
		updated, err := h.merchants.UpdateByID(id, upd)
		if err != nil {
			return err
		}
		h.done(updated, "Mercader actualizado.")
	case "search":
		q, err := h.readQuery(repository.MerchantType, "Tipo")
		if err != nil {
			return err
		}
		merchants, err := h.merchants.Search(q)
		if err != nil {
			return err
		}
		if len(merchants) == 0 {
			fmt.Fprintln(h.out, "No se encontraron mercaderes con ese criterio.")
			return nil
		}
		repository.RenderMerchants(h.out, merchants)
	}
	return nil
}

// readParty asks for name, the kind-specific attribute and location
func (h *PartyHandler) readParty(attrLabel string) (name, attr, location string, err error) {
	if name, err = h.prompt.Input("Nombre:"); err != nil {
		return
	}
	if attr, err = h.prompt.Input(attrLabel + ":"); err != nil {
		return
	}
	location, err = h.prompt.Input("Ubicación:")
	return
}

// partyFields lists the editable fields. Client and merchant keys share
// "nombre" and "ubicacion"; the middle one is raza or tipo.
func partyFields(attrField, attrLabel string) []Option {
	return []Option{
		{Label: "Nombre", Value: repository.ClientName},
		{Label: attrLabel, Value: attrField},
		{Label: "Ubicación", Value: repository.ClientLocation},
	}
}

func (h *PartyHandler) readFieldChange(attrField, attrLabel string) (string, string, error) {
	field, err := choose(h.prompt, "Campo a modificar:", partyFields(attrField, attrLabel))
	if err != nil {
		return "", "", err
	}
	value, err := h.prompt.Input("Nuevo valor:")
	return field, value, err
}

func (h *PartyHandler) readQuery(attrField, attrLabel string) (repository.SearchQuery, error) {
	field, err := choose(h.prompt, "Buscar por:", partyFields(attrField, attrLabel))
	if err != nil {
		return repository.SearchQuery{}, err
	}
	value, err := h.prompt.Input("Valor a buscar:")
	if err != nil {
		return repository.SearchQuery{}, err
	}
	order, err := chooseOrder(h.prompt)
	if err != nil {
		return repository.SearchQuery{}, err
	}
	return repository.SearchQuery{Field: field, Value: value, SortBy: field, Order: order}, nil
}

func (h *PartyHandler) pickClient(message string) (string, error) {
	clients, err := h.clients.GetAll()
	if err != nil {
		return "", err
	}
	if len(clients) == 0 {
		fmt.Fprintln(h.out, "No hay clientes registrados.")
		return "", errBack
	}
	return choose(h.prompt, message, clientOptions(clients))
}

func (h *PartyHandler) pickMerchant(message string) (string, error) {
	merchants, err := h.merchants.GetAll()
	if err != nil {
		return "", err
	}
	if len(merchants) == 0 {
		fmt.Fprintln(h.out, "No hay mercaderes registrados.")
		return "", errBack
	}
	return choose(h.prompt, message, merchantOptions(merchants))
}

func (h *PartyHandler) done(ok bool, msg string) {
	if !ok {
		fmt.Fprintln(h.out, "No se encontró el registro especificado.")
		return
	}
	fmt.Fprintln(h.out, msg)
}

func clientOptions(clients []model.Client) []Option {
	opts := make([]Option, len(clients))
	for i, c := range clients {
		opts[i] = Option{Label: fmt.Sprintf("%s (%s, %s)", c.Name, c.Race, c.Location), Value: c.ID}
	}
	return opts
}

func merchantOptions(merchants []model.Merchant) []Option {
	opts := make([]Option, len(merchants))
	for i, m := range merchants {
		opts[i] = Option{Label: fmt.Sprintf("%s (%s, %s)", m.Name, m.Type, m.Location), Value: m.ID}
	}
	return opts
}
