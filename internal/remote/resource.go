package remote

import (
	"context"
	"net/http"
	"net/url"
)

// Resource is one REST collection of the backend: GET/POST/PUT on the root,
// DELETE on root/{id}.
type Resource[T any] struct {
	client *Client
	path   string
}

func NewResource[T any](client *Client, path string) *Resource[T] {
	return &Resource[T]{client: client, path: path}
}

// List fetches the whole collection.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.getJSON(ctx, r.path, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Create posts record to the collection root. The response body is ignored;
// callers re-list to see the stored record.
func (r *Resource[T]) Create(ctx context.Context, record T) error {
	return r.client.doJSON(ctx, http.MethodPost, r.path, record, nil)
}

// Update puts the full record, id included, to the collection root.
func (r *Resource[T]) Update(ctx context.Context, record T) error {
	return r.client.doJSON(ctx, http.MethodPut, r.path, record, nil)
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.doJSON(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil)
}
