package service

import (
	"slices"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"

	"github.com/shopspring/decimal"
)

type ReportService interface {
	StockByName(name string) ([]model.Good, error)
	PopularGoods(kind model.TransactionType) ([]GoodCount, error)
	IncomeExpenses() (*FinancialSummary, error)
	History(partyName string) ([]model.Transaction, error)
}

// GoodCount is how many times goods with a given name appear in transactions
type GoodCount struct {
	Name  string
	Count int
}

// FinancialSummary: income from sales to clients, expenses on purchases from merchants
type FinancialSummary struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

type reportService struct {
	goodRepo repository.GoodRepository
	txRepo   repository.TransactionRepository
}

func NewReportService(goodRepo repository.GoodRepository, txRepo repository.TransactionRepository) ReportService {
	return &reportService{goodRepo: goodRepo, txRepo: txRepo}
}

// StockByName lists the goods in inventory with exactly this name
func (s *reportService) StockByName(name string) ([]model.Good, error) {
	return s.goodRepo.Search(repository.SearchQuery{
		Field:  repository.GoodName,
		Value:  name,
		SortBy: repository.GoodValue,
		Order:  repository.Asc,
	})
}

// PopularGoods counts goods by name over sales (most sold) or purchases (most
// demanded), most frequent first. Ties keep first-seen order.
func (s *reportService) PopularGoods(kind model.TransactionType) ([]GoodCount, error) {
	txs, err := s.txRepo.GetAll()
	if err != nil {
		return nil, err
	}

	counts := []GoodCount{}
	index := map[string]int{}
	for _, t := range txs {
		if t.Type != kind {
			continue
		}
		for _, g := range t.Goods {
			i, ok := index[g.Name]
			if !ok {
				i = len(counts)
				index[g.Name] = i
				counts = append(counts, GoodCount{Name: g.Name})
			}
			counts[i].Count++
		}
	}

	slices.SortStableFunc(counts, func(a, b GoodCount) int { return b.Count - a.Count })
	return counts, nil
}

func (s *reportService) IncomeExpenses() (*FinancialSummary, error) {
	txs, err := s.txRepo.GetAll()
	if err != nil {
		return nil, err
	}

	summary := &FinancialSummary{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, t := range txs {
		switch t.Type {
		case model.TxSale:
			summary.Income = summary.Income.Add(t.Amount)
		case model.TxPurchase:
			summary.Expenses = summary.Expenses.Add(t.Amount)
		}
	}
	return summary, nil
}

// History lists the transactions of the client or merchant with this name, oldest first
func (s *reportService) History(partyName string) ([]model.Transaction, error) {
	return s.txRepo.Search(repository.SearchQuery{
		Field:  repository.TxPartyName,
		Value:  partyName,
		SortBy: repository.TxDate,
		Order:  repository.Asc,
	})
}
