package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Ledger files store money as plain JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// NewID generates an opaque record identifier (UUID v4)
func NewID() string {
	return uuid.NewString()
}

// Record is implemented by every entity stored in a ledger collection
type Record interface {
	GetID() string
}
