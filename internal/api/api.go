package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"sportify-admin/internal/apiclient"
	"sportify-admin/internal/model"
	"sportify-admin/internal/query"
	"sportify-admin/pkg/apierror"
)

// API groups the resource modules over one client and one cache.
type API struct {
	Auth          *Auth
	Users         *Users
	Exercises     *Exercises
	Workouts      *Workouts
	Notifications *Notifications
	AuditLogs     *AuditLogs
	Analytics     *Analytics
	Roles         *Roles
}

// New wires every resource module. cache may be nil, in which case reads
// always hit the network.
func New(client *apiclient.Client, cache *query.Cache, session Session) *API {
	r := resource{client: client, cache: cache}
	return &API{
		Auth:          &Auth{resource: r, session: session},
		Users:         &Users{resource: r},
		Exercises:     &Exercises{resource: r},
		Workouts:      &Workouts{resource: r},
		Notifications: &Notifications{resource: r},
		AuditLogs:     &AuditLogs{resource: r},
		Analytics:     &Analytics{resource: r},
		Roles:         &Roles{resource: r},
	}
}

type resource struct {
	client *apiclient.Client
	cache  *query.Cache
}

func (r resource) invalidate(families []string) {
	if r.cache != nil {
		r.cache.Invalidate(families...)
	}
}

func (r resource) clear() {
	if r.cache != nil {
		r.cache.Clear()
	}
}

// cached runs fetch through the query cache when one is configured.
func cached[T any](ctx context.Context, r resource, key query.Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	if r.cache == nil {
		return fetch(ctx)
	}
	return query.Fetch(ctx, r.cache, key, fetch)
}

// list reads a paginated endpoint and normalizes whatever shape it returns.
func list[T any](ctx context.Context, r resource, name string, collection string, path string, params url.Values) (model.Page[T], error) {
	return cached(ctx, r, query.NewKey(name, params), func(ctx context.Context) (model.Page[T], error) {
		envelope, err := apiclient.Get[json.RawMessage](ctx, r.client, path, params)
		if err != nil {
			return model.Page[T]{}, err
		}

		page, err := model.DecodePage[T](envelope.Data, collection)
		if err != nil {
			return model.Page[T]{}, apierror.New(apierror.CodeInvalidResponse, "list response has an unexpected shape", err.Error(), http.StatusOK)
		}
		return page, nil
	})
}

// detail reads a single-entity endpoint and returns the envelope unchanged.
func detail[T any](ctx context.Context, r resource, name string, path string, params url.Values) (*model.Envelope[T], error) {
	// The path carries the entity id, so it is part of the key.
	key := query.Key{Resource: name, Params: path}
	if len(params) > 0 {
		key.Params += "?" + params.Encode()
	}
	return cached(ctx, r, key, func(ctx context.Context) (*model.Envelope[T], error) {
		return apiclient.Get[T](ctx, r.client, path, params)
	})
}

// mutate sends req and invalidates the affected families on success only.
func mutate[T any](ctx context.Context, r resource, req apiclient.Request, families []string) (*model.Envelope[T], error) {
	envelope, err := apiclient.Send[T](ctx, r.client, req)
	if err != nil {
		return nil, err
	}
	r.invalidate(families)
	return envelope, nil
}

func escape(id string) string {
	return url.PathEscape(id)
}
