package employee

import (
	"context"
	"io"

	"hris-admin/internal/department"
	"hris-admin/internal/remote"
)

const (
	ResourcePath = "employees"
	photoPath    = ResourcePath + "/savefile"
	photoField   = "photo"
)

//go:generate mockgen -source=employee_store.go -destination=mock/employee_store_mock.go -package=mock
type Store interface {
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, emp Employee) error
	Update(ctx context.Context, emp Employee) error
	Delete(ctx context.Context, id string) error
	UploadPhoto(ctx context.Context, filename string, content io.Reader) (string, error)
}

// DepartmentLister supplies the departments used to resolve employee
// department names.
type DepartmentLister interface {
	List(ctx context.Context) ([]department.Department, error)
}

type remoteStore struct {
	*remote.Resource[Employee]
	client *remote.Client
}

func NewRemoteStore(client *remote.Client) Store {
	return &remoteStore{
		Resource: remote.NewResource[Employee](client, ResourcePath),
		client:   client,
	}
}

func (s *remoteStore) UploadPhoto(ctx context.Context, filename string, content io.Reader) (string, error) {
	return s.client.Upload(ctx, photoPath, photoField, filename, content)
}
