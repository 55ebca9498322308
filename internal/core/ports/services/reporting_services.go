package services

import (
	"context"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
	"github.com/SscSPs/orbit_finance/internal/utils/accounting"
)

// AdvisorSvc produces free-form financial advice for a workspace.
// Any failure is reported as apperrors.ErrExternalService.
type AdvisorSvc interface {
	Advise(ctx context.Context, req domain.AdviceRequest) (string, error)
}

// ReportingSvc computes the read-only views of a workspace.
type ReportingSvc interface {
	// WorkspaceSummary returns balance, totals and category breakdown.
	WorkspaceSummary(ctx context.Context, workspaceID string) (*accounting.Summary, error)

	// Advice never fails on advisor errors; it returns domain.FallbackAdvice instead.
	Advice(ctx context.Context, workspaceID string) (string, error)
}
