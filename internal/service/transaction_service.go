package service

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/store"
	"go-inventory-ledger/pkg/validator"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type TransactionService interface {
	RegisterPurchase(req PurchaseRequest) (*TransactionResult, error)
	RegisterSale(req SaleRequest) (*TransactionResult, error)
	RegisterReturn(req ReturnRequest) (*ReturnResult, error)
	ReturnableTransactions() ([]model.Transaction, error)
}

// PurchaseRequest buys new goods from a merchant. Goods without an ID get one minted.
type PurchaseRequest struct {
	MerchantID string           `validate:"required"`
	Goods      []model.Good     `validate:"min=1"`
	Amount     *decimal.Decimal `validate:"required"`
}

// SaleRequest sells goods from inventory to a client. Prices optionally overrides
// the recorded value of individual goods (sale price per good).
type SaleRequest struct {
	ClientID string   `validate:"required"`
	GoodIDs  []string `validate:"min=1,unique_ids"`
	Prices   map[string]decimal.Decimal
	Amount   *decimal.Decimal `validate:"required"`
}

// ReturnRequest reverses all (Full) or some (GoodIDs) goods of a purchase or sale
type ReturnRequest struct {
	TransactionID string `validate:"required"`
	Full          bool
	GoodIDs       []string `validate:"unique_ids"`
}

type TransactionResult struct {
	Transaction model.Transaction
}

type ReturnResult struct {
	// Return is the recorded return, or the earlier identical one when AlreadyRecorded
	Return *model.Transaction
	// Original is the reduced source transaction; nil when Dissolved
	Original        *model.Transaction
	Dissolved       bool
	AlreadyRecorded bool
	Amount          decimal.Decimal
}

// errAlreadyRecorded aborts the store transaction of a duplicate return
var errAlreadyRecorded = errors.New("return already recorded")

type transactionService struct {
	store        *store.Store
	goodRepo     repository.GoodRepository
	clientRepo   repository.ClientRepository
	merchantRepo repository.MerchantRepository
	txRepo       repository.TransactionRepository
	log          logrus.FieldLogger
	now          func() time.Time
}

func NewTransactionService(
	s *store.Store,
	goodRepo repository.GoodRepository,
	clientRepo repository.ClientRepository,
	merchantRepo repository.MerchantRepository,
	txRepo repository.TransactionRepository,
	log logrus.FieldLogger,
) TransactionService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &transactionService{
		store:        s,
		goodRepo:     goodRepo,
		clientRepo:   clientRepo,
		merchantRepo: merchantRepo,
		txRepo:       txRepo,
		log:          log.WithField("component", "transactions"),
		now:          time.Now,
	}
}

func validateRequest(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return precondition(ErrInvalidRequest, fmt.Sprintf("field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}
	return nil
}

func (s *transactionService) RegisterPurchase(req PurchaseRequest) (*TransactionResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	goods := slices.Clone(req.Goods)
	for i := range goods {
		if goods[i].ID == "" {
			goods[i].ID = model.NewID()
		}
	}

	var recorded model.Transaction
	err := s.store.Transaction(func(doc *store.Document) error {
		merchant, ok, err := s.merchantRepo.FindTx(doc, req.MerchantID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrMerchantNotFound, req.MerchantID)
		}

		// Check every good before inserting any of them
		seen := make(map[string]bool, len(goods))
		var conflicts []string
		for _, g := range goods {
			_, exists, err := s.goodRepo.FindTx(doc, g.ID)
			if err != nil {
				return err
			}
			if exists || seen[g.ID] {
				conflicts = append(conflicts, g.ID)
			}
			seen[g.ID] = true
		}
		if len(conflicts) > 0 {
			return precondition(ErrGoodsInInventory, "purchased goods must be new", conflicts...)
		}

		for _, g := range goods {
			if err := s.goodRepo.AddTx(doc, g); err != nil {
				return err
			}
		}

		recorded = model.NewTransaction(model.TxPurchase, s.now(), goods, *req.Amount, model.MerchantParty(merchant))
		return s.txRepo.AddTx(doc, recorded)
	})
	if err != nil {
		return nil, err
	}

	s.logCommitted(recorded, "Purchase registered")
	return &TransactionResult{Transaction: recorded}, nil
}

func (s *transactionService) RegisterSale(req SaleRequest) (*TransactionResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var recorded model.Transaction
	err := s.store.Transaction(func(doc *store.Document) error {
		client, ok, err := s.clientRepo.FindTx(doc, req.ClientID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrClientNotFound, req.ClientID)
		}

		// Re-validate the whole selection: a good may have been sold since it was listed
		sold := make([]model.Good, 0, len(req.GoodIDs))
		var missing []string
		for _, id := range req.GoodIDs {
			g, ok, err := s.goodRepo.FindTx(doc, id)
			if err != nil {
				return err
			}
			if !ok {
				missing = append(missing, id)
				continue
			}
			if price, ok := req.Prices[id]; ok {
				g.Value = price
			}
			sold = append(sold, g)
		}
		if len(missing) > 0 {
			return precondition(ErrGoodsUnavailable, "cannot sell goods that are not in inventory", missing...)
		}

		for _, id := range req.GoodIDs {
			if _, err := s.goodRepo.RemoveTx(doc, id); err != nil {
				return err
			}
		}

		recorded = model.NewTransaction(model.TxSale, s.now(), sold, *req.Amount, model.ClientParty(client))
		return s.txRepo.AddTx(doc, recorded)
	})
	if err != nil {
		return nil, err
	}

	s.logCommitted(recorded, "Sale registered")
	return &TransactionResult{Transaction: recorded}, nil
}

func (s *transactionService) RegisterReturn(req ReturnRequest) (*ReturnResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	result := &ReturnResult{}
	err := s.store.Transaction(func(doc *store.Document) error {
		orig, ok, err := s.txRepo.FindTx(doc, req.TransactionID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrTransactionNotFound, req.TransactionID)
		}
		if !orig.Returnable() {
			return precondition(ErrNotReturnable, fmt.Sprintf("transaction %s is a %s", orig.ID, orig.Type))
		}

		ledger, err := s.txRepo.ListTx(doc)
		if err != nil {
			return err
		}

		returned, err := selectReturnedGoods(orig, req)
		if err != nil {
			// Goods already taken out of the original by an identical earlier return
			if errors.Is(err, ErrGoodsNotInTransaction) {
				if prior, ok := findPriorReturnOf(ledger, orig, req.GoodIDs); ok {
					result.Return = &prior
					result.Amount = prior.Amount
					result.AlreadyRecorded = true
					return errAlreadyRecorded
				}
			}
			return err
		}
		amount := model.SumValues(returned)
		result.Amount = amount

		if prior, ok := findDuplicateReturn(ledger, orig, returned, amount); ok {
			result.Return = &prior
			result.AlreadyRecorded = true
			return errAlreadyRecorded
		}

		if err := s.checkInventory(doc, orig.Type, returned); err != nil {
			return err
		}

		for _, g := range returned {
			switch orig.Type {
			case model.TxPurchase:
				if _, err := s.goodRepo.RemoveTx(doc, g.ID); err != nil {
					return err
				}
			case model.TxSale:
				if err := s.goodRepo.AddTx(doc, g); err != nil {
					return err
				}
			}
		}

		remaining := slices.DeleteFunc(slices.Clone(orig.Goods), func(g model.Good) bool {
			return slices.ContainsFunc(returned, func(r model.Good) bool { return r.ID == g.ID })
		})
		if len(remaining) == 0 {
			if _, err := s.txRepo.RemoveTx(doc, orig.ID); err != nil {
				return err
			}
			result.Dissolved = true
		} else {
			reduced := orig.Amount.Sub(amount)
			if _, err := s.txRepo.UpdateTx(doc, orig.ID, model.TransactionUpdate{Goods: &remaining, Amount: &reduced}); err != nil {
				return err
			}
			orig.Goods = remaining
			orig.Amount = reduced
			result.Original = &orig
		}

		ret := model.NewTransaction(model.TxReturn, s.now(), returned, amount, orig.Party)
		if err := s.txRepo.AddTx(doc, ret); err != nil {
			return err
		}
		result.Return = &ret
		return nil
	})
	if errors.Is(err, errAlreadyRecorded) {
		s.log.WithFields(logrus.Fields{
			"transaction_id": req.TransactionID,
			"return_id":      result.Return.ID,
		}).Info("Return already recorded, skipping")
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	s.logCommitted(*result.Return, "Return registered")
	return result, nil
}

// selectReturnedGoods resolves the goods being returned, in the original's order.
// A partial selection naming every good yields the full list.
func selectReturnedGoods(orig model.Transaction, req ReturnRequest) ([]model.Good, error) {
	if req.Full {
		if len(orig.Goods) == 0 {
			return nil, precondition(ErrNothingSelected, "transaction "+orig.ID+" has no goods to return")
		}
		return slices.Clone(orig.Goods), nil
	}
	if len(req.GoodIDs) == 0 {
		return nil, precondition(ErrNothingSelected, "a partial return needs at least one good")
	}

	returned := make([]model.Good, 0, len(req.GoodIDs))
	for _, g := range orig.Goods {
		if slices.Contains(req.GoodIDs, g.ID) {
			returned = append(returned, g)
		}
	}
	if len(returned) != len(req.GoodIDs) {
		var unknown []string
		for _, id := range req.GoodIDs {
			if !slices.ContainsFunc(orig.Goods, func(g model.Good) bool { return g.ID == id }) {
				unknown = append(unknown, id)
			}
		}
		return nil, precondition(ErrGoodsNotInTransaction, "transaction "+orig.ID, unknown...)
	}
	return returned, nil
}

// checkInventory validates inventory state before any mutation. Goods returned from
// a purchase must still be in stock; goods returned from a sale must not be.
func (s *transactionService) checkInventory(doc *store.Document, kind model.TransactionType, goods []model.Good) error {
	var unavailable, present []string
	for _, g := range goods {
		_, ok, err := s.goodRepo.FindTx(doc, g.ID)
		if err != nil {
			return err
		}
		if kind == model.TxPurchase && !ok {
			unavailable = append(unavailable, g.ID)
		}
		if kind == model.TxSale && ok {
			present = append(present, g.ID)
		}
	}
	if len(unavailable) > 0 {
		return precondition(ErrGoodsUnavailable, "purchased goods must still be in inventory to be returned", unavailable...)
	}
	if len(present) > 0 {
		return precondition(ErrGoodsInInventory, "sold goods cannot be restocked twice", present...)
	}
	return nil
}

// findDuplicateReturn looks for a return with the same amount, party and ordered
// goods, recorded no earlier than the original transaction.
func findDuplicateReturn(ledger []model.Transaction, orig model.Transaction, goods []model.Good, amount decimal.Decimal) (model.Transaction, bool) {
	ids := model.GoodIDs(goods)
	for _, t := range ledger {
		if t.Type != model.TxReturn || t.Date.Before(orig.Date) {
			continue
		}
		if t.Party.ID() == orig.Party.ID() && t.Amount.Equal(amount) && slices.Equal(model.GoodIDs(t.Goods), ids) {
			return t, true
		}
	}
	return model.Transaction{}, false
}

// findPriorReturnOf finds an earlier return of exactly these goods by the same party,
// used when the goods have already left the original transaction.
func findPriorReturnOf(ledger []model.Transaction, orig model.Transaction, goodIDs []string) (model.Transaction, bool) {
	want := slices.Clone(goodIDs)
	slices.Sort(want)
	for _, t := range ledger {
		if t.Type != model.TxReturn || t.Date.Before(orig.Date) || t.Party.ID() != orig.Party.ID() {
			continue
		}
		got := model.GoodIDs(t.Goods)
		slices.Sort(got)
		if slices.Equal(got, want) {
			return t, true
		}
	}
	return model.Transaction{}, false
}

func (s *transactionService) ReturnableTransactions() ([]model.Transaction, error) {
	txs, err := s.txRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(txs, func(t model.Transaction) bool { return !t.Returnable() }), nil
}

func (s *transactionService) logCommitted(t model.Transaction, msg string) {
	s.log.WithFields(logrus.Fields{
		"transaction_id": t.ID,
		"kind":           t.Type,
		"amount":         t.Amount.String(),
		"goods":          len(t.Goods),
		"party":          t.Party.Name(),
	}).Info(msg)
}
