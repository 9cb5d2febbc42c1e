package service

import (
	"errors"
	"fmt"
	"strings"
)

// Not-found errors: the target of the operation does not exist
var (
	ErrClientNotFound      = errors.New("client not found")
	ErrMerchantNotFound    = errors.New("merchant not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Workflow precondition failures, always reported wrapped in a *PreconditionError
var (
	ErrInvalidRequest        = errors.New("invalid request")
	ErrNotReturnable         = errors.New("only purchases and sales can be returned")
	ErrNothingSelected       = errors.New("no goods selected")
	ErrGoodsUnavailable      = errors.New("goods not available in inventory")
	ErrGoodsInInventory      = errors.New("goods already in inventory")
	ErrGoodsNotInTransaction = errors.New("goods are not part of the transaction")
)

// PreconditionError aborts a workflow operation before anything is mutated
type PreconditionError struct {
	Err     error
	Reason  string
	GoodIDs []string
}

func (e *PreconditionError) Error() string {
	msg := e.Err.Error()
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if len(e.GoodIDs) > 0 {
		msg += fmt.Sprintf(" [%s]", strings.Join(e.GoodIDs, ", "))
	}
	return msg
}

func (e *PreconditionError) Unwrap() error { return e.Err }

func precondition(err error, reason string, goodIDs ...string) error {
	return &PreconditionError{Err: err, Reason: reason, GoodIDs: goodIDs}
}

// IsPrecondition reports whether err is a workflow precondition failure
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// IsNotFound reports whether err names a missing client, merchant or transaction
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrMerchantNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}
