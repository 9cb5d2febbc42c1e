package model

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxPurchase TransactionType = "compra"
	TxSale     TransactionType = "venta"
	TxReturn   TransactionType = "devolución"
)

// Transaction records a purchase, sale or return. Goods are copies taken when the
// transaction was recorded, not references into inventory.
type Transaction struct {
	ID     string          `json:"id" validate:"required"`
	Type   TransactionType `json:"tipo" validate:"required,oneof=compra venta devolución"`
	Date   time.Time       `json:"fecha"`
	Goods  []Good          `json:"bienes"`
	Amount decimal.Decimal `json:"cantidadCoronas"` // may differ from the sum of Goods (negotiated price)
	Party  Party           `json:"involucrado"`
}

func (t Transaction) GetID() string { return t.ID }

func NewTransaction(kind TransactionType, date time.Time, goods []Good, amount decimal.Decimal, party Party) Transaction {
	return Transaction{
		ID:     NewID(),
		Type:   kind,
		Date:   date,
		Goods:  append([]Good{}, goods...),
		Amount: amount,
		Party:  party,
	}
}

// Returnable reports whether a return can be registered against t
func (t Transaction) Returnable() bool {
	return t.Type == TxPurchase || t.Type == TxSale
}

// Clone returns a copy that shares no slices with t
func (t Transaction) Clone() Transaction {
	t.Goods = slices.Clone(t.Goods)
	if t.Party.Client != nil {
		c := *t.Party.Client
		t.Party.Client = &c
	}
	if t.Party.Merchant != nil {
		m := *t.Party.Merchant
		t.Party.Merchant = &m
	}
	return t
}

// TransactionUpdate carries the transaction fields to change. Nil fields are left untouched.
type TransactionUpdate struct {
	Type   *TransactionType
	Date   *time.Time
	Goods  *[]Good
	Amount *decimal.Decimal
	Party  *Party
}

func (u TransactionUpdate) Apply(t *Transaction) {
	if u.Type != nil {
		t.Type = *u.Type
	}
	if u.Date != nil {
		t.Date = *u.Date
	}
	if u.Goods != nil {
		t.Goods = slices.Clone(*u.Goods)
	}
	if u.Amount != nil {
		t.Amount = *u.Amount
	}
	if u.Party != nil {
		t.Party = *u.Party
	}
}
