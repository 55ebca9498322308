package dto

import (
	"github.com/SscSPs/orbit_finance/internal/utils"
	"github.com/SscSPs/orbit_finance/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CategoryShareResponse represents one expense category in a summary.
type CategoryShareResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Share    decimal.Decimal `json:"share"`
}

// SummaryResponse represents the derived views of a workspace.
type SummaryResponse struct {
	WorkspaceID      string                  `json:"workspaceId"`
	CurrencyCode     string                  `json:"currencyCode"`
	Balance          decimal.Decimal         `json:"balance"`
	FormattedBalance string                  `json:"formattedBalance"`
	TotalIncome      decimal.Decimal         `json:"totalIncome"`
	TotalExpense     decimal.Decimal         `json:"totalExpense"`
	Categories       []CategoryShareResponse `json:"categories"`
}

// ToSummaryResponse converts an accounting.Summary to DTO.
func ToSummaryResponse(workspaceID, currencyCode string, s *accounting.Summary) SummaryResponse {
	categories := make([]CategoryShareResponse, len(s.Categories))
	for i, c := range s.Categories {
		categories[i] = CategoryShareResponse{Category: c.Category, Amount: c.Amount, Share: c.Share}
	}
	return SummaryResponse{
		WorkspaceID:      workspaceID,
		CurrencyCode:     currencyCode,
		Balance:          s.Balance,
		FormattedBalance: utils.FormatAmount(s.Balance, currencyCode),
		TotalIncome:      s.TotalIncome,
		TotalExpense:     s.TotalExpense,
		Categories:       categories,
	}
}

// AdviceResponse carries the advisor's text, or the fallback message.
type AdviceResponse struct {
	WorkspaceID string `json:"workspaceId"`
	Advice      string `json:"advice"`
}
