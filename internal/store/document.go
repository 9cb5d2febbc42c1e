package store

import (
	"errors"
	"fmt"
	"slices"

	"go-inventory-ledger/internal/model"
)

var (
	// ErrNotInitialized means no document is loaded (store never opened, or the
	// backing was emptied underneath us).
	ErrNotInitialized = errors.New("store not initialized")
	// ErrMissingCollection means the document is present but lacks a collection key.
	ErrMissingCollection = errors.New("missing collection")
)

// Collection keys in the JSON document
const (
	KeyGoods        = "bienes"
	KeyMerchants    = "mercaderes"
	KeyClients      = "clientes"
	KeyTransactions = "transacciones"
)

// Document is the whole ledger. A nil collection pointer is a key that is absent
// (or null) in the backing JSON.
type Document struct {
	GoodList        *[]model.Good        `json:"bienes"`
	MerchantList    *[]model.Merchant    `json:"mercaderes"`
	ClientList      *[]model.Client      `json:"clientes"`
	TransactionList *[]model.Transaction `json:"transacciones"`
}

// EmptyDocument returns a document with the four collections present and empty
func EmptyDocument() *Document {
	return &Document{
		GoodList:        &[]model.Good{},
		MerchantList:    &[]model.Merchant{},
		ClientList:      &[]model.Client{},
		TransactionList: &[]model.Transaction{},
	}
}

func missing(key string) error {
	return fmt.Errorf("%w: %q", ErrMissingCollection, key)
}

func (d *Document) Goods() (*[]model.Good, error) {
	if d.GoodList == nil {
		return nil, missing(KeyGoods)
	}
	return d.GoodList, nil
}

func (d *Document) Merchants() (*[]model.Merchant, error) {
	if d.MerchantList == nil {
		return nil, missing(KeyMerchants)
	}
	return d.MerchantList, nil
}

func (d *Document) Clients() (*[]model.Client, error) {
	if d.ClientList == nil {
		return nil, missing(KeyClients)
	}
	return d.ClientList, nil
}

func (d *Document) Transactions() (*[]model.Transaction, error) {
	if d.TransactionList == nil {
		return nil, missing(KeyTransactions)
	}
	return d.TransactionList, nil
}

// Clone deep-copies the document, keeping absent collections absent
func (d *Document) Clone() *Document {
	out := &Document{
		GoodList:     clonePtr(d.GoodList),
		MerchantList: clonePtr(d.MerchantList),
		ClientList:   clonePtr(d.ClientList),
	}
	if d.TransactionList != nil {
		txs := make([]model.Transaction, len(*d.TransactionList))
		for i, t := range *d.TransactionList {
			txs[i] = t.Clone()
		}
		out.TransactionList = &txs
	}
	return out
}

func clonePtr[T any](p *[]T) *[]T {
	if p == nil {
		return nil
	}
	c := slices.Clone(*p)
	if c == nil {
		c = []T{}
	}
	return &c
}
