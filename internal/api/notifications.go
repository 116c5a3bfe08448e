package api

import (
	"context"
	"net/http"

	"sportify-admin/internal/apiclient"
	"sportify-admin/internal/model"
)

const notificationsPath = "/admin/notifications"

type Notifications struct {
	resource
}

func (n *Notifications) List(ctx context.Context, filters NotificationFilters) (model.Page[model.Notification], error) {
	return list[model.Notification](ctx, n.resource, resNotifications, "notifications", notificationsPath, filters.Values())
}

func (n *Notifications) MarkRead(ctx context.Context, id string) (*model.Envelope[model.Notification], error) {
	req := apiclient.NewRequest(http.MethodPut, notificationsPath+"/"+escape(id)+"/read")
	return mutate[model.Notification](ctx, n.resource, req, notificationSet)
}

func (n *Notifications) MarkAllRead(ctx context.Context) (*model.Envelope[any], error) {
	req := apiclient.NewRequest(http.MethodPut, notificationsPath+"/read-all")
	return mutate[any](ctx, n.resource, req, notificationSet)
}
