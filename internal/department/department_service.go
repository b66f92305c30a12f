package department

import (
	"context"

	"hris-admin/internal/audit"
	departmenterrors "hris-admin/internal/department/errors"
	"hris-admin/internal/events"
	"hris-admin/internal/listing"
	"hris-admin/internal/notification"
	"hris-admin/internal/remote"
	"hris-admin/internal/shared/action"
	"hris-admin/internal/shared/apperror"
	"hris-admin/internal/shared/contextutil"
	"hris-admin/internal/shared/locale"

	"go.uber.org/zap"
)

const Module = "department"

// Snapshot is the displayed list together with how it was derived.
type Snapshot struct {
	Items   []Department
	Total   int
	Filters map[string]string
	Sort    *listing.SortState
}

type Service interface {
	Refresh(ctx context.Context) error
	Snapshot() Snapshot
	Full() []Department
	SetFilters(filters map[string]string) error
	ResetFilters()
	Sort(field string, desc bool) error

	Stage(dept Department)
	Staged() Department
	Unstage()

	Create(ctx context.Context, dept Department) error
	Update(ctx context.Context, dept Department) error
	Delete(ctx context.Context, id string) error
	Dispatch(ctx context.Context, a action.Action, dept Department) error
	DispatchStaged(ctx context.Context, a action.Action) error
}

type Options struct {
	Locale    locale.Locale
	Notifier  notification.Notifier
	Publisher audit.Publisher
	Logger    *zap.Logger
}

type service struct {
	store     Store
	view      *listing.View[Department]
	staged    *listing.Holder[Department]
	notifier  notification.Notifier
	publisher audit.Publisher
	logger    *zap.Logger
}

func NewService(store Store, opts Options) Service {
	l := zap.L().Named("department.service")
	if opts.Logger != nil {
		l = opts.Logger.Named("department.service")
	}
	if opts.Locale.IsZero() {
		opts.Locale = locale.Default
	}
	if opts.Notifier == nil {
		opts.Notifier = notification.NewCenter(notification.DefaultLimit, l)
	}
	if opts.Publisher == nil {
		opts.Publisher = audit.Noop()
	}
	return &service{
		store:     store,
		view:      newView(opts.Locale),
		staged:    listing.NewHolder[Department](nil),
		notifier:  opts.Notifier,
		publisher: opts.Publisher,
		logger:    l,
	}
}

// Refresh replaces the full list with the backend's collection. On failure
// the current lists stay as they are.
func (s *service) Refresh(ctx context.Context) error {
	log := contextutil.GetLogger(ctx, s.logger)
	token := s.view.Begin()

	depts, err := s.store.List(ctx)
	if err != nil {
		s.notifier.Failed(ctx, Module, "refresh", err)
		return err
	}

	if !s.view.Commit(token, depts) {
		remote.ObserveStaleList(ResourcePath)
		log.Debug("stale department list dropped", zap.Uint64("token", token))
		return nil
	}

	log.Debug("department list refreshed",
		zap.Uint64("token", token),
		zap.Int("count", len(depts)),
	)
	return nil
}

func (s *service) Snapshot() Snapshot {
	snap := Snapshot{
		Items:   s.view.Displayed(),
		Total:   len(s.view.Full()),
		Filters: s.view.Filters(),
	}
	if state, ok := s.view.Sorted(); ok {
		snap.Sort = &state
	}
	return snap
}

func (s *service) Full() []Department {
	return s.view.Full()
}

func (s *service) SetFilters(filters map[string]string) error {
	return s.view.SetFilters(filters)
}

func (s *service) ResetFilters() {
	s.view.Reset()
}

func (s *service) Sort(field string, desc bool) error {
	return s.view.Sort(field, desc)
}

func (s *service) Stage(dept Department) {
	s.staged.Stage(dept)
}

func (s *service) Staged() Department {
	return s.staged.Staged()
}

func (s *service) Unstage() {
	s.staged.Unstage()
}

func (s *service) Create(ctx context.Context, dept Department) error {
	if err := s.mutate(ctx, action.Create, dept); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *service) Update(ctx context.Context, dept Department) error {
	if err := s.mutate(ctx, action.Update, dept); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.mutate(ctx, action.Delete, Department{ID: id}); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Dispatch sends one action and clears the staged record once the backend
// has accepted it. A rejected action keeps the staged record for a retry.
func (s *service) Dispatch(ctx context.Context, a action.Action, dept Department) error {
	if err := s.mutate(ctx, a, dept); err != nil {
		return err
	}
	s.staged.Unstage()
	return s.Refresh(ctx)
}

func (s *service) DispatchStaged(ctx context.Context, a action.Action) error {
	return s.Dispatch(ctx, a, s.staged.Staged())
}

func (s *service) mutate(ctx context.Context, a action.Action, dept Department) error {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("dispatch department",
		zap.String("action", a.String()),
		zap.String("department_id", dept.ID),
	)

	var err error
	switch a {
	case action.Create:
		err = s.store.Create(ctx, dept.forCreate())
	case action.Update:
		if dept.ID == "" {
			return departmenterrors.ErrDepartmentIDRequired
		}
		err = s.store.Update(ctx, dept)
	case action.Delete:
		if dept.ID == "" {
			return departmenterrors.ErrDepartmentIDRequired
		}
		err = s.store.Delete(ctx, dept.ID)
	default:
		return apperror.ErrInvalidAction
	}
	if err != nil {
		s.notifier.Failed(ctx, Module, a.String(), err)
		return err
	}

	log.Info("department dispatched",
		zap.String("action", a.String()),
		zap.String("department_id", dept.ID),
	)
	s.publish(ctx, a, dept)
	return nil
}

func (s *service) publish(ctx context.Context, a action.Action, dept Department) {
	event := events.NewRecordDispatched(ctx, Module, a, dept.ID, dept.Name)
	if err := s.publisher.PublishRecordDispatched(ctx, event); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("publish department audit event failed",
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
	}
}
