package department_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hris-admin/internal/department"
	"hris-admin/internal/listing"
	"hris-admin/internal/remote"
	"hris-admin/internal/shared/action"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDepartmentService struct {
	RefreshFn        func(ctx context.Context) error
	SnapshotFn       func() department.Snapshot
	SetFiltersFn     func(filters map[string]string) error
	SortFn           func(field string, desc bool) error
	DispatchFn       func(ctx context.Context, a action.Action, dept department.Department) error
	DispatchStagedFn func(ctx context.Context, a action.Action) error

	staged department.Department
	resets int
}

func (f *fakeDepartmentService) Refresh(ctx context.Context) error {
	return f.RefreshFn(ctx)
}
func (f *fakeDepartmentService) Snapshot() department.Snapshot {
	if f.SnapshotFn == nil {
		return department.Snapshot{}
	}
	return f.SnapshotFn()
}
func (f *fakeDepartmentService) Full() []department.Department { return nil }
func (f *fakeDepartmentService) SetFilters(filters map[string]string) error {
	return f.SetFiltersFn(filters)
}
func (f *fakeDepartmentService) ResetFilters() { f.resets++ }
func (f *fakeDepartmentService) Sort(field string, desc bool) error {
	return f.SortFn(field, desc)
}
func (f *fakeDepartmentService) Stage(dept department.Department) { f.staged = dept }
func (f *fakeDepartmentService) Staged() department.Department  { return f.staged }
func (f *fakeDepartmentService) Unstage()                       { f.staged = department.Department{} }
func (f *fakeDepartmentService) Create(ctx context.Context, dept department.Department) error {
	return nil
}
func (f *fakeDepartmentService) Update(ctx context.Context, dept department.Department) error {
	return nil
}
func (f *fakeDepartmentService) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeDepartmentService) Dispatch(ctx context.Context, a action.Action, dept department.Department) error {
	return f.DispatchFn(ctx, a, dept)
}
func (f *fakeDepartmentService) DispatchStaged(ctx context.Context, a action.Action) error {
	return f.DispatchStagedFn(ctx, a)
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error map[string]any  `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestDepartmentHandler_GetAll(t *testing.T) {
	svc := &fakeDepartmentService{
		SnapshotFn: func() department.Snapshot {
			return department.Snapshot{
				Items:   []department.Department{{ID: "d1", Name: "Eng"}},
				Total:   3,
				Filters: map[string]string{department.FieldName: "en"},
				Sort:    &listing.SortState{Field: department.FieldName, Desc: true},
			}
		},
	}
	h := department.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/departments", "")

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Ok)
	assert.JSONEq(t, `[{"id":"d1","name":"Eng"}]`, string(env.Data))
	assert.EqualValues(t, 3, env.Meta["total"])
	assert.EqualValues(t, 1, env.Meta["shown"])
	assert.Equal(t, "name", env.Meta["sortBy"])
	assert.Equal(t, true, env.Meta["sortDesc"])
}

func TestDepartmentHandler_Refresh(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		called := false
		svc := &fakeDepartmentService{
			RefreshFn: func(ctx context.Context) error {
				called = true
				return nil
			},
		}
		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/departments/refresh", "")

		h.Refresh(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, called)
	})

	t.Run("backend unavailable", func(t *testing.T) {
		svc := &fakeDepartmentService{
			RefreshFn: func(ctx context.Context) error {
				return remote.ErrBackendUnavailable
			},
		}
		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/departments/refresh", "")

		h.Refresh(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		env := decode(t, w)
		assert.False(t, env.Ok)
		assert.Equal(t, "BACKEND_UNAVAILABLE", env.Error["code"])
	})
}

func TestDepartmentHandler_SetFilters(t *testing.T) {
	t.Run("only sent fields are changed", func(t *testing.T) {
		var got map[string]string
		svc := &fakeDepartmentService{
			SetFiltersFn: func(filters map[string]string) error {
				got = filters
				return nil
			},
		}
		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodPut, "/departments/filters", `{"name":"eng"}`)

		h.SetFilters(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]string{department.FieldName: "eng"}, got)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := department.NewHandler(&fakeDepartmentService{})
		c, w := newTestContext(http.MethodPut, "/departments/filters", `{"name":`)

		h.SetFilters(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDepartmentHandler_ResetFilters(t *testing.T) {
	svc := &fakeDepartmentService{}
	h := department.NewHandler(svc)
	c, w := newTestContext(http.MethodDelete, "/departments/filters", "")

	h.ResetFilters(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.resets)
}

func TestDepartmentHandler_Sort(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeDepartmentService{
			SortFn: func(field string, desc bool) error {
				assert.Equal(t, department.FieldID, field)
				assert.True(t, desc)
				return nil
			},
		}
		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/departments/sort", `{"field":"id","desc":true}`)

		h.Sort(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown field is rejected by binding", func(t *testing.T) {
		h := department.NewHandler(&fakeDepartmentService{})
		c, w := newTestContext(http.MethodPost, "/departments/sort", `{"field":"budget"}`)

		h.Sort(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDepartmentHandler_Staged(t *testing.T) {
	svc := &fakeDepartmentService{}
	h := department.NewHandler(svc)

	c, w := newTestContext(http.MethodPut, "/departments/staged", `{"id":"d1","name":"Eng"}`)
	h.Stage(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, department.Department{ID: "d1", Name: "Eng"}, svc.staged)

	c, w = newTestContext(http.MethodGet, "/departments/staged", "")
	h.GetStaged(c)
	assert.JSONEq(t, `{"id":"d1","name":"Eng"}`, string(decode(t, w).Data))

	c, w = newTestContext(http.MethodDelete, "/departments/staged", "")
	h.Unstage(c)
	assert.JSONEq(t, `{"id":"","name":""}`, string(decode(t, w).Data))
}

func TestDepartmentHandler_Dispatch(t *testing.T) {
	t.Run("create with the staged record", func(t *testing.T) {
		svc := &fakeDepartmentService{
			DispatchStagedFn: func(ctx context.Context, a action.Action) error {
				assert.Equal(t, action.Create, a)
				return nil
			},
		}
		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/departments/dispatch", `{"action":"create"}`)

		h.Dispatch(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("delete with an explicit record", func(t *testing.T) {
		svc := &fakeDepartmentService{
			DispatchFn: func(ctx context.Context, a action.Action, dept department.Department) error {
				assert.Equal(t, action.Delete, a)
				assert.Equal(t, "d2", dept.ID)
				return nil
			},
		}
		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/departments/dispatch", `{"action":"delete","record":{"id":"d2"}}`)

		h.Dispatch(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown action", func(t *testing.T) {
		h := department.NewHandler(&fakeDepartmentService{})
		c, w := newTestContext(http.MethodPost, "/departments/dispatch", `{"action":"archive"}`)

		h.Dispatch(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_ACTION", decode(t, w).Error["code"])
	})

	t.Run("backend rejection", func(t *testing.T) {
		svc := &fakeDepartmentService{
			DispatchFn: func(ctx context.Context, a action.Action, dept department.Department) error {
				return remote.ErrBackendRejected
			},
		}
		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/departments/dispatch", `{"action":"update","record":{"id":"d1","name":"x"}}`)

		h.Dispatch(c)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("missing action", func(t *testing.T) {
		h := department.NewHandler(&fakeDepartmentService{})
		c, w := newTestContext(http.MethodPost, "/departments/dispatch", `{}`)

		h.Dispatch(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
