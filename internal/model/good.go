package model

import "github.com/shopspring/decimal"

// Good is a tradeable item held in inventory ("bien")
type Good struct {
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Material    string          `json:"material"`
	Weight      float64         `json:"peso"`
	Value       decimal.Decimal `json:"valor"`
}

func (g Good) GetID() string { return g.ID }

// NewGood mints a good with a fresh ID
func NewGood(name, description, material string, weight float64, value decimal.Decimal) Good {
	return Good{
		ID:          NewID(),
		Name:        name,
		Description: description,
		Material:    material,
		Weight:      weight,
		Value:       value,
	}
}

// GoodUpdate carries the fields to change on a good. Nil fields are left untouched.
type GoodUpdate struct {
	Name        *string
	Description *string
	Material    *string
	Weight      *float64
	Value       *decimal.Decimal
}

// Apply merges the non-nil fields into g
func (u GoodUpdate) Apply(g *Good) {
	if u.Name != nil {
		g.Name = *u.Name
	}
	if u.Description != nil {
		g.Description = *u.Description
	}
	if u.Material != nil {
		g.Material = *u.Material
	}
	if u.Weight != nil {
		g.Weight = *u.Weight
	}
	if u.Value != nil {
		g.Value = *u.Value
	}
}

// SumValues adds up the value of every good in the list
func SumValues(goods []Good) decimal.Decimal {
	total := decimal.Zero
	for _, g := range goods {
		total = total.Add(g.Value)
	}
	return total
}

// GoodIDs returns the IDs of goods in order
func GoodIDs(goods []Good) []string {
	ids := make([]string, len(goods))
	for i, g := range goods {
		ids[i] = g.ID
	}
	return ids
}
