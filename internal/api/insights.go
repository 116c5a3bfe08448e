package api

import (
	"context"

	"sportify-admin/internal/model"
)

type AuditLogs struct {
	resource
}

func (a *AuditLogs) List(ctx context.Context, filters AuditLogFilters) (model.Page[model.AuditLog], error) {
	return list[model.AuditLog](ctx, a.resource, resAuditLogs, "logs", "/admin/audit-logs", filters.Values())
}

type Analytics struct {
	resource
}

func (a *Analytics) Overview(ctx context.Context, filters AnalyticsFilters) (*model.Envelope[model.AnalyticsOverview], error) {
	return detail[model.AnalyticsOverview](ctx, a.resource, resOverview, "/admin/analytics/overview", filters.Values())
}

func (a *Analytics) Charts(ctx context.Context, filters AnalyticsFilters) (*model.Envelope[model.ChartData], error) {
	return detail[model.ChartData](ctx, a.resource, resCharts, "/admin/analytics/charts", filters.Values())
}
