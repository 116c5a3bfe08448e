package api

import (
	"context"
	"net/http"

	"sportify-admin/internal/apiclient"
	"sportify-admin/internal/model"
)

const (
	rolesPath       = "/admin/roles"
	permissionsPath = "/admin/permissions"
)

// Roles covers both roles and the permissions they are built from.
type Roles struct {
	resource
}

func (r *Roles) List(ctx context.Context) (model.Page[model.Role], error) {
	return list[model.Role](ctx, r.resource, resRoles, "roles", rolesPath, nil)
}

func (r *Roles) Get(ctx context.Context, id string) (*model.Envelope[model.Role], error) {
	return detail[model.Role](ctx, r.resource, resRoleDetail, rolesPath+"/"+escape(id), nil)
}

func (r *Roles) Create(ctx context.Context, payload model.CreateRolePayload) (*model.Envelope[model.Role], error) {
	if payload.PermissionNames == nil {
		payload.PermissionNames = []string{}
	}
	req := apiclient.NewRequest(http.MethodPost, rolesPath).WithBody(payload)
	return mutate[model.Role](ctx, r.resource, req, roleWritten)
}

func (r *Roles) Update(ctx context.Context, id string, payload model.UpdateRolePayload) (*model.Envelope[model.Role], error) {
	req := apiclient.NewRequest(http.MethodPut, rolesPath+"/"+escape(id)).WithBody(payload)
	return mutate[model.Role](ctx, r.resource, req, roleWritten)
}

func (r *Roles) Delete(ctx context.Context, id string) (*model.Envelope[any], error) {
	req := apiclient.NewRequest(http.MethodDelete, rolesPath+"/"+escape(id))
	return mutate[any](ctx, r.resource, req, roleWritten)
}

func (r *Roles) Permissions(ctx context.Context) (model.Page[model.Permission], error) {
	return list[model.Permission](ctx, r.resource, resPermissions, "permissions", permissionsPath, nil)
}

func (r *Roles) GroupedPermissions(ctx context.Context) (*model.Envelope[model.GroupedPermissions], error) {
	return detail[model.GroupedPermissions](ctx, r.resource, resGrouped, permissionsPath+"/grouped", nil)
}

func (r *Roles) CreatePermission(ctx context.Context, payload model.CreatePermissionPayload) (*model.Envelope[model.Permission], error) {
	req := apiclient.NewRequest(http.MethodPost, permissionsPath).WithBody(payload)
	return mutate[model.Permission](ctx, r.resource, req, permWritten)
}

func (r *Roles) UpdatePermission(ctx context.Context, id string, payload model.UpdatePermissionPayload) (*model.Envelope[model.Permission], error) {
	req := apiclient.NewRequest(http.MethodPut, permissionsPath+"/"+escape(id)).WithBody(payload)
	return mutate[model.Permission](ctx, r.resource, req, permWritten)
}

func (r *Roles) DeletePermission(ctx context.Context, id string) (*model.Envelope[any], error) {
	req := apiclient.NewRequest(http.MethodDelete, permissionsPath+"/"+escape(id))
	return mutate[any](ctx, r.resource, req, permWritten)
}
