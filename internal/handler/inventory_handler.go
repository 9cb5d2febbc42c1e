package handler

import (
	"fmt"
	"io"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
)

type InventoryHandler struct {
	prompt Prompter
	out    io.Writer
	goods  repository.GoodRepository
}

func NewInventoryHandler(p Prompter, out io.Writer, goods repository.GoodRepository) *InventoryHandler {
	return &InventoryHandler{prompt: p, out: out, goods: goods}
}

func (h *InventoryHandler) Menu() error {
	action, err := choose(h.prompt, "Bienes:", []Option{
		{Label: "Añadir bien", Value: "add"},
		{Label: "Listar bienes", Value: "list"},
		{Label: "Eliminar bien", Value: "remove"},
		{Label: "Modificar bien", Value: "update"},
		{Label: "Buscar bienes", Value: "search"},
	})
	if err != nil {
		return err
	}

	switch action {
	case "add":
		return h.Create()
	case "list":
		return h.goods.Show(h.out)
	case "remove":
		return h.Remove()
	case "update":
		return h.Update()
	case "search":
		return h.Search()
	}
	return nil
}

// promptGood asks for the fields of a new good
func promptGood(p Prompter) (model.Good, error) {
	name, err := p.Input("Nombre del bien:")
	if err != nil {
		return model.Good{}, err
	}
	desc, err := p.Input("Descripción del bien:")
	if err != nil {
		return model.Good{}, err
	}
	material, err := p.Input("Material del bien:")
	if err != nil {
		return model.Good{}, err
	}
	weight, err := p.Number("Peso del bien:")
	if err != nil {
		return model.Good{}, err
	}
	value, err := p.Number("Valor del bien:")
	if err != nil {
		return model.Good{}, err
	}
	return model.NewGood(name, desc, material, weight.InexactFloat64(), value), nil
}

func (h *InventoryHandler) Create() error {
	good, err := promptGood(h.prompt)
	if err != nil {
		return err
	}
	if err := h.goods.Add(good); err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Bien %q añadido con id %s.\n", good.Name, good.ID)
	return nil
}

func goodOptions(goods []model.Good) []Option {
	opts := make([]Option, len(goods))
	for i, g := range goods {
		opts[i] = Option{Label: fmt.Sprintf("%s (%s coronas)", g.Name, g.Value), Value: g.ID}
	}
	return opts
}

func (h *InventoryHandler) pick(message string) (string, error) {
	goods, err := h.goods.GetAll()
	if err != nil {
		return "", err
	}
	if len(goods) == 0 {
		fmt.Fprintln(h.out, "No hay bienes en el inventario.")
		return "", errBack
	}
	return choose(h.prompt, message, goodOptions(goods))
}

func (h *InventoryHandler) Remove() error {
	id, err := h.pick("Seleccione el bien a eliminar:")
	if err != nil {
		return err
	}
	removed, err := h.goods.RemoveByID(id)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintln(h.out, "No se encontró el bien especificado.")
		return nil
	}
	fmt.Fprintln(h.out, "Bien eliminado.")
	return nil
}

func (h *InventoryHandler) Update() error {
	id, err := h.pick("Seleccione el bien a modificar:")
	if err != nil {
		return err
	}
	field, err := choose(h.prompt, "Campo a modificar:", []Option{
		{Label: "Nombre", Value: repository.GoodName},
		{Label: "Descripción", Value: repository.GoodDescription},
		{Label: "Material", Value: repository.GoodMaterial},
		{Label: "Peso", Value: "peso"},
		{Label: "Valor", Value: repository.GoodValue},
	})
	if err != nil {
		return err
	}

	var upd model.GoodUpdate
	switch field {
	case "peso", repository.GoodValue:
		n, err := h.prompt.Number("Nuevo valor:")
		if err != nil {
			return err
		}
		if field == "peso" {
			w := n.InexactFloat64()
			upd.Weight = &w
		} else {
			upd.Value = &n
		}
	default:
		s, err := h.prompt.Input("Nuevo valor:")
		if err != nil {
			return err
		}
		switch field {
		case repository.GoodName:
			upd.Name = &s
		case repository.GoodDescription:
			upd.Description = &s
		case repository.GoodMaterial:
			upd.Material = &s
		}
	}

	updated, err := h.goods.UpdateByID(id, upd)
	if err != nil {
		return err
	}
	if !updated {
		fmt.Fprintln(h.out, "No se encontró el bien especificado.")
		return nil
	}
	fmt.Fprintln(h.out, "Bien actualizado.")
	return nil
}

func (h *InventoryHandler) Search() error {
	criterion, err := choose(h.prompt, "Buscar por:", []Option{
		{Label: "Nombre", Value: repository.GoodName},
		{Label: "Descripción", Value: repository.GoodDescription},
		{Label: "Material", Value: repository.GoodMaterial},
	})
	if err != nil {
		return err
	}
	value, err := h.prompt.Input("Valor a buscar:")
	if err != nil {
		return err
	}
	sortBy, err := choose(h.prompt, "Ordenar por:", []Option{
		{Label: "Alfabéticamente", Value: criterion},
		{Label: "Valor", Value: repository.GoodValue},
	})
	if err != nil {
		return err
	}
	order, err := chooseOrder(h.prompt)
	if err != nil {
		return err
	}

	goods, err := h.goods.Search(repository.SearchQuery{Field: criterion, Value: value, SortBy: sortBy, Order: order})
	if err != nil {
		return err
	}
	if len(goods) == 0 {
		fmt.Fprintln(h.out, "No se encontraron bienes con ese criterio.")
		return nil
	}
	repository.RenderGoods(h.out, goods)
	return nil
}

func chooseOrder(p Prompter) (repository.SortOrder, error) {
	order, err := choose(p, "Orden:", []Option{
		{Label: "Ascendente", Value: string(repository.Asc)},
		{Label: "Descendente", Value: string(repository.Desc)},
	})
	return repository.SortOrder(order), err
}
