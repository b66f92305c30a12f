package employee

import (
	"bytes"
	"context"
	"io"
	"slices"
	"sync"

	"hris-admin/internal/audit"
	"hris-admin/internal/department"
	employeeerrors "hris-admin/internal/employee/errors"
	"hris-admin/internal/events"
	"hris-admin/internal/listing"
	"hris-admin/internal/notification"
	"hris-admin/internal/remote"
	"hris-admin/internal/shared/action"
	"hris-admin/internal/shared/apperror"
	"hris-admin/internal/shared/contextutil"
	"hris-admin/internal/shared/locale"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const Module = "employee"

type Snapshot struct {
	Items   []Employee
	Total   int
	Filters map[string]string
	Sort    *listing.SortState
}

type Service interface {
	Refresh(ctx context.Context) error
	Snapshot() Snapshot
	Full() []Employee
	Departments() []department.Department
	SetFilters(filters map[string]string) error
	ResetFilters()
	Sort(field string, desc bool) error

	Stage(emp Employee)
	Staged() Employee
	Unstage()
	UploadPhoto(ctx context.Context, filename string, content io.Reader) (string, error)

	Create(ctx context.Context, emp Employee) error
	Update(ctx context.Context, emp Employee) error
	Delete(ctx context.Context, id string) error
	Dispatch(ctx context.Context, a action.Action, emp Employee) error
	DispatchStaged(ctx context.Context, a action.Action) error

	PhotoURL(imageName string) string
	FormatDate(d Date) string
}

type Options struct {
	Locale       locale.Locale
	PhotoBaseURL string
	Notifier     notification.Notifier
	Publisher    audit.Publisher
	Logger       *zap.Logger
}

type service struct {
	store       Store
	departments DepartmentLister
	view        *listing.View[Employee]
	staged      *listing.Holder[Employee]
	loc         locale.Locale
	photoBase   string
	notifier    notification.Notifier
	publisher   audit.Publisher
	logger      *zap.Logger

	// uploads is read-locked for the lifetime of every photo upload so a
	// dispatch can wait for all of them by taking the write lock.
	uploads sync.RWMutex

	deptMu    sync.RWMutex
	depts     []department.Department
	deptToken uint64
}

func NewService(store Store, departments DepartmentLister, opts Options) Service {
	l := zap.L().Named("employee.service")
	if opts.Logger != nil {
		l = opts.Logger.Named("employee.service")
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
		store:       store,
		departments: departments,
		view:        newView(opts.Locale),
		staged:      listing.NewHolder[Employee](nil),
		loc:         opts.Locale,
		photoBase:   opts.PhotoBaseURL,
		notifier:    opts.Notifier,
		publisher:   opts.Publisher,
		logger:      l,
		depts:       []department.Department{},
	}
}

// Refresh fetches departments and employees together and replaces both lists
// with the denormalized result. Either fetch failing leaves everything as it
// was.
func (s *service) Refresh(ctx context.Context) error {
	log := contextutil.GetLogger(ctx, s.logger)
	token := s.view.Begin()

	var (
		emps  []Employee
		depts []department.Department
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		depts, err = s.departments.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		emps, err = s.store.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.notifier.Failed(ctx, Module, "refresh", err)
		return err
	}

	if !s.view.Commit(token, Denormalize(emps, depts)) {
		remote.ObserveStaleList(ResourcePath)
		log.Debug("stale employee list dropped", zap.Uint64("token", token))
		return nil
	}
	s.setDepartments(token, depts)

	log.Debug("employee list refreshed",
		zap.Uint64("token", token),
		zap.Int("count", len(emps)),
		zap.Int("departments", len(depts)),
	)
	return nil
}

func (s *service) setDepartments(token uint64, depts []department.Department) {
	s.deptMu.Lock()
	defer s.deptMu.Unlock()
	if token < s.deptToken {
		return
	}
	s.deptToken = token
	s.depts = slices.Clone(depts)
}

// Departments is the department list fetched by the last committed refresh.
func (s *service) Departments() []department.Department {
	s.deptMu.RLock()
	defer s.deptMu.RUnlock()
	return slices.Clone(s.depts)
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

func (s *service) Full() []Employee {
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

func (s *service) Stage(emp Employee) {
	s.staged.Stage(emp)
}

func (s *service) Staged() Employee {
	return s.staged.Staged()
}

func (s *service) Unstage() {
	s.staged.Unstage()
}

// UploadPhoto stores a photo on the backend and writes the stored name into
// the staged record. If the staged record was replaced while the upload was
// running the name is not applied and ErrStagedEmployeeChanged is returned
// together with it.
func (s *service) UploadPhoto(ctx context.Context, filename string, content io.Reader) (string, error) {
	s.uploads.RLock()
	defer s.uploads.RUnlock()

	log := contextutil.GetLogger(ctx, s.logger)
	generation := s.staged.Generation()

	data, mtype, err := readPhoto(content)
	if err != nil {
		return "", err
	}
	filename = photoFilename(filename, mtype)

	name, err := s.store.UploadPhoto(ctx, filename, bytes.NewReader(data))
	if err != nil {
		s.notifier.Failed(ctx, Module, "upload photo", err)
		return "", err
	}

	applied := s.staged.Edit(generation, func(e *Employee) {
		e.ImageName = name
	})
	if !applied {
		log.Warn("photo upload finished after the staged employee changed",
			zap.String("image_name", name),
		)
		return name, employeeerrors.ErrStagedEmployeeChanged
	}

	log.Info("employee photo uploaded",
		zap.String("image_name", name),
		zap.String("mime", mtype.String()),
		zap.Int("size", len(data)),
	)
	return name, nil
}

// waitForUploads returns once no photo upload is running.
func (s *service) waitForUploads() {
	s.uploads.Lock()
	s.uploads.Unlock()
}

func (s *service) Create(ctx context.Context, emp Employee) error {
	if err := s.mutate(ctx, action.Create, emp); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *service) Update(ctx context.Context, emp Employee) error {
	if err := s.mutate(ctx, action.Update, emp); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.mutate(ctx, action.Delete, Employee{ID: id}); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Dispatch waits for running photo uploads, sends one action and clears the
// staged record once the backend accepted it.
func (s *service) Dispatch(ctx context.Context, a action.Action, emp Employee) error {
	s.waitForUploads()
	return s.dispatch(ctx, a, emp)
}

func (s *service) DispatchStaged(ctx context.Context, a action.Action) error {
	s.waitForUploads()
	return s.dispatch(ctx, a, s.staged.Staged())
}

func (s *service) dispatch(ctx context.Context, a action.Action, emp Employee) error {
	if err := s.mutate(ctx, a, emp); err != nil {
		return err
	}
	s.staged.Unstage()
	return s.Refresh(ctx)
}

func (s *service) mutate(ctx context.Context, a action.Action, emp Employee) error {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("dispatch employee",
		zap.String("action", a.String()),
		zap.String("employee_id", emp.ID),
	)

	emp.DepartmentName = ""
	var err error
	switch a {
	case action.Create:
		err = s.store.Create(ctx, emp.forCreate())
	case action.Update:
		if emp.ID == "" {
			return employeeerrors.ErrEmployeeIDRequired
		}
		err = s.store.Update(ctx, emp)
	case action.Delete:
		if emp.ID == "" {
			return employeeerrors.ErrEmployeeIDRequired
		}
		err = s.store.Delete(ctx, emp.ID)
	default:
		return apperror.ErrInvalidAction
	}
	if err != nil {
		s.notifier.Failed(ctx, Module, a.String(), err)
		return err
	}

	log.Info("employee dispatched",
		zap.String("action", a.String()),
		zap.String("employee_id", emp.ID),
	)
	s.publish(ctx, a, emp)
	return nil
}

func (s *service) publish(ctx context.Context, a action.Action, emp Employee) {
	event := events.NewRecordDispatched(ctx, Module, a, emp.ID, emp.Name)
	if err := s.publisher.PublishRecordDispatched(ctx, event); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("publish employee audit event failed",
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
	}
}

func (s *service) PhotoURL(imageName string) string {
	return PhotoURL(s.photoBase, imageName)
}

func (s *service) FormatDate(d Date) string {
	return s.loc.FormatDate(d.Time)
}
