package accounting

import (
	"cmp"
	"slices"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// sharePrecision is the number of decimal places kept for category shares.
const sharePrecision = 6

// CategoryTotal is the summed expense amount of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategoryShare is a category total together with its fraction of all expenses.
type CategoryShare struct {
	CategoryTotal
	Share decimal.Decimal `json:"share"`
}

// Summary bundles the derived views of a transaction list.
type Summary struct {
	Balance      decimal.Decimal `json:"balance"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Categories   []CategoryShare `json:"categories"`
}

// CalculateSignedAmount returns the amount with the sign implied by the transaction type:
// income is positive, expense is negative.
func CalculateSignedAmount(txn domain.Transaction) decimal.Decimal {
	if txn.Type == domain.Expense {
		return txn.Amount.Neg()
	}
	return txn.Amount
}

// Balance is sum(income) - sum(expense).
func Balance(txns []domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(CalculateSignedAmount(txn))
	}
	return sum
}

func totalOf(txns []domain.Transaction, typ domain.TransactionType) decimal.Decimal {
	sum := decimal.Zero
	for _, txn := range txns {
		if txn.Type == typ {
			sum = sum.Add(txn.Amount)
		}
	}
	return sum
}

// TotalIncome sums income amounts.
func TotalIncome(txns []domain.Transaction) decimal.Decimal {
	return totalOf(txns, domain.Income)
}

// TotalExpense sums expense amounts.
func TotalExpense(txns []domain.Transaction) decimal.Decimal {
	return totalOf(txns, domain.Expense)
}

// CategoryTotals groups expenses by category. Income is not included.
// Results are ordered by amount descending, then by category name.
func CategoryTotals(txns []domain.Transaction) []CategoryTotal {
	byCategory := make(map[string]decimal.Decimal)
	for _, txn := range txns {
		if txn.Type != domain.Expense {
			continue
		}
		byCategory[txn.Category] = byCategory[txn.Category].Add(txn.Amount)
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for category, amount := range byCategory {
		totals = append(totals, CategoryTotal{Category: category, Amount: amount})
	}
	slices.SortFunc(totals, func(a, b CategoryTotal) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return totals
}

// CategoryShares returns each category's fraction of total expenses.
// With no expenses the result is empty rather than a division by zero.
func CategoryShares(txns []domain.Transaction) []CategoryShare {
	totals := CategoryTotals(txns)
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Amount)
	}
	shares := make([]CategoryShare, 0, len(totals))
	if sum.IsZero() {
		return shares
	}
	for _, t := range totals {
		shares = append(shares, CategoryShare{
			CategoryTotal: t,
			Share:         t.Amount.DivRound(sum, sharePrecision),
		})
	}
	return shares
}

// Summarize computes every derived view in one pass over the list.
func Summarize(txns []domain.Transaction) Summary {
	return Summary{
		Balance:      Balance(txns),
		TotalIncome:  TotalIncome(txns),
		TotalExpense: TotalExpense(txns),
		Categories:   CategoryShares(txns),
	}
}
