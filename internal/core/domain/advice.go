package domain

// FallbackAdvice replaces the advisor's answer whenever it cannot be produced.
const FallbackAdvice = "Financial advice is unavailable right now. Your records are safe; please try again in a little while."

// AdviceRequest is what the advisor sees of a workspace.
type AdviceRequest struct {
	WorkspaceName  string        `json:"workspaceName"`
	CurrencySymbol string        `json:"currencySymbol"`
	Transactions   []Transaction `json:"transactions"` // newest first, already truncated
}
