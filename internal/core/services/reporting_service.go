package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/orbit_finance/internal/core/ports/services"
	"github.com/SscSPs/orbit_finance/internal/utils"
	"github.com/SscSPs/orbit_finance/internal/utils/accounting"
)

// DefaultAdviceTransactions bounds how many recent transactions the advisor sees.
const DefaultAdviceTransactions = 12

type reportingService struct {
	BaseService
	repo            portsrepo.LedgerRepository
	advisor         portssvc.AdvisorSvc
	maxTransactions int
}

// ReportingOption configures the reporting service.
type ReportingOption func(*reportingService)

// WithAdviceTransactionLimit bounds the transactions sent to the advisor.
func WithAdviceTransactionLimit(n int) ReportingOption {
	return func(s *reportingService) {
		if n > 0 {
			s.maxTransactions = n
		}
	}
}

// NewReportingService creates the summary and advice service.
func NewReportingService(repo portsrepo.LedgerRepository, advisor portssvc.AdvisorSvc, opts ...ReportingOption) portssvc.ReportingSvc {
	s := &reportingService{
		repo:            repo,
		advisor:         advisor,
		maxTransactions: DefaultAdviceTransactions,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

func (s *reportingService) WorkspaceSummary(ctx context.Context, workspaceID string) (*accounting.Summary, error) {
	if _, err := s.repo.FindWorkspaceByID(ctx, workspaceID); err != nil {
		s.logUnexpected(ctx, err, "Failed to find workspace for summary", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	txs, err := s.repo.ListTransactions(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for summary", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	summary := accounting.Summarize(txs)
	return &summary, nil
}

func (s *reportingService) Advice(ctx context.Context, workspaceID string) (string, error) {
	ws, err := s.repo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return "", err
	}
	txs, err := s.repo.ListTransactions(ctx, workspaceID)
	if err != nil {
		return "", err
	}
	return s.requestAdvice(ctx, s.advisor, buildAdviceRequest(*ws, txs, s.maxTransactions)), nil
}

// buildAdviceRequest keeps the newest max transactions; txs must already be newest first.
func buildAdviceRequest(ws domain.Workspace, txs []domain.Transaction, max int) domain.AdviceRequest {
	if max > 0 && len(txs) > max {
		txs = txs[:max]
	}
	return domain.AdviceRequest{
		WorkspaceName:  ws.Name,
		CurrencySymbol: utils.CurrencySymbol(ws.CurrencyCode),
		Transactions:   append([]domain.Transaction(nil), txs...),
	}
}

// requestAdvice swallows every advisor failure and substitutes the fallback text.
func (s *BaseService) requestAdvice(ctx context.Context, advisor portssvc.AdvisorSvc, req domain.AdviceRequest) string {
	if advisor == nil {
		return domain.FallbackAdvice
	}
	advice, err := advisor.Advise(ctx, req)
	if err != nil || advice == "" {
		if err != nil {
			s.LogWarn(ctx, "Advisor failed, using fallback advice", slog.String("error", err.Error()))
		}
		return domain.FallbackAdvice
	}
	return advice
}
