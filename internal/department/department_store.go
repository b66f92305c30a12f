package department

import (
	"context"

	"hris-admin/internal/remote"
)

const ResourcePath = "departments"

//go:generate mockgen -source=department_store.go -destination=mock/department_store_mock.go -package=mock
type Store interface {
	List(ctx context.Context) ([]Department, error)
	Create(ctx context.Context, dept Department) error
	Update(ctx context.Context, dept Department) error
	Delete(ctx context.Context, id string) error
}

// NewRemoteStore binds the department collection of the backend.
func NewRemoteStore(client *remote.Client) Store {
	return remote.NewResource[Department](client, ResourcePath)
}
