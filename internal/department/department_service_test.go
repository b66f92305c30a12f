package department_test

import (
	"context"
	"errors"
	"testing"

	"hris-admin/internal/department"
	departmenterrors "hris-admin/internal/department/errors"
	departmentMock "hris-admin/internal/department/mock"
	"hris-admin/internal/events"
	"hris-admin/internal/notification"
	"hris-admin/internal/remote"
	"hris-admin/internal/shared/action"
	"hris-admin/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingPublisher struct {
	events []events.RecordDispatchedEvent
}

func (p *recordingPublisher) PublishRecordDispatched(ctx context.Context, e events.RecordDispatchedEvent) error {
	p.events = append(p.events, e)
	return nil
}

type serviceDeps struct {
	service   department.Service
	store     *departmentMock.MockStore
	center    *notification.Center
	publisher *recordingPublisher
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	store := departmentMock.NewMockStore(ctrl)
	center := notification.NewCenter(10)
	publisher := &recordingPublisher{}

	svc := department.NewService(store, department.Options{
		Notifier:  center,
		Publisher: publisher,
	})

	return &serviceDeps{
		service:   svc,
		store:     store,
		center:    center,
		publisher: publisher,
	}
}

var (
	eng = department.Department{ID: "d1", Name: "Eng"}
	ops = department.Department{ID: "d2", Name: "Ops"}
)

func TestDepartmentService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("success replaces the lists", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.store.EXPECT().List(ctx).Return([]department.Department{eng, ops}, nil)

		err := deps.service.Refresh(ctx)

		assert.NoError(t, err)
		snap := deps.service.Snapshot()
		assert.Equal(t, []department.Department{eng, ops}, snap.Items)
		assert.Equal(t, 2, snap.Total)
	})

	t.Run("failure keeps the last good list and notifies", func(t *testing.T) {
		deps := setupServiceTest(t)
		gomock.InOrder(
			deps.store.EXPECT().List(ctx).Return([]department.Department{eng}, nil),
			deps.store.EXPECT().List(ctx).Return(nil, remote.ErrBackendUnavailable.WithCause(errors.New("refused"))),
		)
		require.NoError(t, deps.service.Refresh(ctx))

		err := deps.service.Refresh(ctx)

		assert.True(t, errors.Is(err, remote.ErrBackendUnavailable))
		assert.Equal(t, []department.Department{eng}, deps.service.Full())
		notes := deps.center.Recent()
		require.Len(t, notes, 1)
		assert.Equal(t, "refresh", notes[0].Operation)
		assert.Equal(t, department.Module, notes[0].Module)
	})

	t.Run("refresh re-applies the current filter", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.store.EXPECT().List(ctx).Return([]department.Department{eng, ops}, nil)
		require.NoError(t, deps.service.SetFilters(map[string]string{department.FieldName: " OP"}))

		require.NoError(t, deps.service.Refresh(ctx))

		assert.Equal(t, []department.Department{ops}, deps.service.Snapshot().Items)
	})
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("sends only the name then re-lists", func(t *testing.T) {
		deps := setupServiceTest(t)
		created := department.Department{ID: "d3", Name: "Sales"}
		gomock.InOrder(
			deps.store.EXPECT().Create(ctx, department.Department{Name: "Sales"}).Return(nil),
			deps.store.EXPECT().List(ctx).Return([]department.Department{eng, created}, nil),
		)

		err := deps.service.Create(ctx, department.Department{ID: "ignored", Name: "Sales"})

		assert.NoError(t, err)
		assert.Equal(t, []department.Department{eng, created}, deps.service.Full())
		require.Len(t, deps.publisher.events, 1)
		assert.Equal(t, "department.created", deps.publisher.events[0].EventType)
	})

	t.Run("backend failure skips the refresh", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.store.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("rejected"))
		deps.store.EXPECT().List(gomock.Any()).Times(0)

		err := deps.service.Create(ctx, department.Department{Name: "Sales"})

		assert.Error(t, err)
		assert.Empty(t, deps.publisher.events)
		assert.Len(t, deps.center.Recent(), 1)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	gomock.InOrder(
		deps.store.EXPECT().List(ctx).Return([]department.Department{eng, ops}, nil),
		deps.store.EXPECT().Delete(ctx, "d1").Return(nil),
		deps.store.EXPECT().List(ctx).Return([]department.Department{ops}, nil),
	)
	require.NoError(t, deps.service.Refresh(ctx))

	err := deps.service.Delete(ctx, "d1")

	assert.NoError(t, err)
	assert.Equal(t, []department.Department{ops}, deps.service.Snapshot().Items)
}

func TestDepartmentService_Dispatch(t *testing.T) {
	ctx := contextutil.WithUserID(contextutil.WithRequestID(context.Background(), "rid-1"), "admin-1")

	t.Run("update round trip keeps the record", func(t *testing.T) {
		deps := setupServiceTest(t)
		gomock.InOrder(
			deps.store.EXPECT().List(ctx).Return([]department.Department{eng, ops}, nil),
			deps.store.EXPECT().Update(ctx, eng).Return(nil),
			deps.store.EXPECT().List(ctx).Return([]department.Department{eng, ops}, nil),
		)
		require.NoError(t, deps.service.Refresh(ctx))
		deps.service.Stage(eng)

		err := deps.service.DispatchStaged(ctx, action.Update)

		assert.NoError(t, err)
		assert.Equal(t, []department.Department{eng, ops}, deps.service.Full())
		assert.Equal(t, department.Department{}, deps.service.Staged())

		require.Len(t, deps.publisher.events, 1)
		ev := deps.publisher.events[0]
		assert.Equal(t, "department.updated", ev.EventType)
		assert.Equal(t, "rid-1", ev.RequestID)
		assert.Equal(t, "admin-1", ev.Actor)
		assert.Equal(t, "d1", ev.RecordID)
	})

	t.Run("delete sends only the id", func(t *testing.T) {
		deps := setupServiceTest(t)
		gomock.InOrder(
			deps.store.EXPECT().Delete(ctx, "d2").Return(nil),
			deps.store.EXPECT().List(ctx).Return([]department.Department{eng}, nil),
		)

		err := deps.service.Dispatch(ctx, action.Delete, ops)

		assert.NoError(t, err)
	})

	t.Run("failure keeps the staged record", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.store.EXPECT().Create(ctx, department.Department{Name: "Sales"}).Return(errors.New("down"))
		deps.service.Stage(department.Department{Name: "Sales"})

		err := deps.service.DispatchStaged(ctx, action.Create)

		assert.Error(t, err)
		assert.Equal(t, department.Department{Name: "Sales"}, deps.service.Staged())
	})

	t.Run("unstages even when the follow-up refresh fails", func(t *testing.T) {
		deps := setupServiceTest(t)
		gomock.InOrder(
			deps.store.EXPECT().Create(ctx, department.Department{Name: "Sales"}).Return(nil),
			deps.store.EXPECT().List(ctx).Return(nil, remote.ErrBackendUnavailable),
		)
		deps.service.Stage(department.Department{Name: "Sales"})

		err := deps.service.DispatchStaged(ctx, action.Create)

		assert.True(t, errors.Is(err, remote.ErrBackendUnavailable))
		assert.Equal(t, department.Department{}, deps.service.Staged())
	})

	t.Run("update without id never reaches the backend", func(t *testing.T) {
		deps := setupServiceTest(t)

		err := deps.service.Dispatch(ctx, action.Update, department.Department{Name: "x"})

		assert.True(t, errors.Is(err, departmenterrors.ErrDepartmentIDRequired))
	})

	t.Run("none is not an action", func(t *testing.T) {
		deps := setupServiceTest(t)

		err := deps.service.Dispatch(ctx, action.None, eng)

		assert.Error(t, err)
	})
}

func TestDepartmentService_Sort(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	deps.store.EXPECT().List(ctx).Return([]department.Department{eng, ops}, nil)
	require.NoError(t, deps.service.Refresh(ctx))

	require.NoError(t, deps.service.Sort(department.FieldName, true))

	snap := deps.service.Snapshot()
	assert.Equal(t, []department.Department{ops, eng}, snap.Items)
	require.NotNil(t, snap.Sort)
	assert.Equal(t, department.FieldName, snap.Sort.Field)
	assert.True(t, snap.Sort.Desc)

	deps.service.ResetFilters()
	assert.Equal(t, []department.Department{ops, eng}, deps.service.Snapshot().Items)
}
