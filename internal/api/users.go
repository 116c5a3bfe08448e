package api

import (
	"context"
	"net/http"

	"sportify-admin/internal/apiclient"
	"sportify-admin/internal/model"
)

const (
	defaultUserRole = "user"
	usersPath       = "/admin/users"
)

type Users struct {
	resource
}

func userPath(id string, suffix string) string {
	return usersPath + "/" + escape(id) + suffix
}

func (u *Users) List(ctx context.Context, filters UserFilters) (model.Page[model.User], error) {
	return list[model.User](ctx, u.resource, resUsers, "users", usersPath, filters.Values())
}

func (u *Users) ListDeleted(ctx context.Context, filters UserFilters) (model.Page[model.User], error) {
	return list[model.User](ctx, u.resource, resUsersDeleted, "users", usersPath+"/deleted", filters.Values())
}

func (u *Users) Get(ctx context.Context, id string) (*model.Envelope[model.User], error) {
	return detail[model.User](ctx, u.resource, resUserDetail, userPath(id, ""), nil)
}

func (u *Users) Stats(ctx context.Context, id string) (*model.Envelope[model.UserStats], error) {
	return detail[model.UserStats](ctx, u.resource, resUserStats, userPath(id, "/stats"), nil)
}

// Create applies the form defaults: role "user", no invitation, and no
// password field when none was typed.
func (u *Users) Create(ctx context.Context, payload model.CreateUserPayload) (*model.Envelope[model.User], error) {
	if payload.Role == "" {
		payload.Role = defaultUserRole
	}
	if payload.SendInvitation == nil {
		payload.SendInvitation = Ptr(false)
	}

	req := apiclient.NewRequest(http.MethodPost, usersPath).WithBody(payload)
	return mutate[model.User](ctx, u.resource, req, userCreated)
}

func (u *Users) Update(ctx context.Context, id string, payload model.UpdateUserPayload) (*model.Envelope[model.User], error) {
	req := apiclient.NewRequest(http.MethodPut, userPath(id, "")).WithBody(payload)
	return mutate[model.User](ctx, u.resource, req, userWritten)
}

func (u *Users) ResetPassword(ctx context.Context, id string, payload model.ResetPasswordPayload) (*model.Envelope[any], error) {
	req := apiclient.NewRequest(http.MethodPost, userPath(id, "/reset-password")).WithBody(payload)
	return mutate[any](ctx, u.resource, req, userWritten)
}

func (u *Users) Suspend(ctx context.Context, id string) (*model.Envelope[model.User], error) {
	req := apiclient.NewRequest(http.MethodPatch, userPath(id, "/suspend"))
	return mutate[model.User](ctx, u.resource, req, userWritten)
}

func (u *Users) Activate(ctx context.Context, id string) (*model.Envelope[model.User], error) {
	req := apiclient.NewRequest(http.MethodPatch, userPath(id, "/activate"))
	return mutate[model.User](ctx, u.resource, req, userWritten)
}

// Delete is a soft delete; Restore undoes it.
func (u *Users) Delete(ctx context.Context, id string) (*model.Envelope[any], error) {
	req := apiclient.NewRequest(http.MethodDelete, userPath(id, ""))
	return mutate[any](ctx, u.resource, req, userRemoved)
}

func (u *Users) DeletePermanently(ctx context.Context, id string) (*model.Envelope[any], error) {
	req := apiclient.NewRequest(http.MethodDelete, userPath(id, "/permanent"))
	return mutate[any](ctx, u.resource, req, userRemoved)
}

func (u *Users) Restore(ctx context.Context, id string) (*model.Envelope[model.User], error) {
	req := apiclient.NewRequest(http.MethodPost, userPath(id, "/restore"))
	return mutate[model.User](ctx, u.resource, req, userRemoved)
}

func (u *Users) AssignRoles(ctx context.Context, id string, payload model.AssignRolesPayload) (*model.Envelope[model.User], error) {
	req := apiclient.NewRequest(http.MethodPost, userPath(id, "/roles")).WithBody(payload)
	return mutate[model.User](ctx, u.resource, req, userWritten)
}
