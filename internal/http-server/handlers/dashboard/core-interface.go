package dashboard

import (
	"DentEase/impl/core"
	"DentEase/internal/analytics"
	"context"
)

type Core interface {
	DashboardSummary(ctx context.Context, upcoming string) (*core.Dashboard, error)
	Analytics(ctx context.Context, filter string) (*analytics.Summary, error)
}
