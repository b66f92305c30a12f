// Package listing keeps a fetched collection next to its filtered, sorted
// projection and the record staged for editing.
package listing

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"hris-admin/internal/shared/apperror"
	"hris-admin/internal/shared/locale"
)

var ErrUnknownField = apperror.ErrUnknownField

type SortState struct {
	Field string
	Desc  bool
}

// View holds the full list as last fetched and the displayed list derived
// from it. Filters never touch the full list; replacing the full list always
// re-derives the displayed one.
type View[T any] struct {
	mu        sync.RWMutex
	fields    []Field[T]
	loc       locale.Locale
	full      []T
	displayed []T
	filters   map[string]string
	sort      *SortState
	issued    uint64
	committed uint64
}

func NewView[T any](loc locale.Locale, fields ...Field[T]) *View[T] {
	filters := make(map[string]string)
	for _, f := range fields {
		if f.Filterable {
			filters[f.Name] = ""
		}
	}
	return &View[T]{
		fields:    fields,
		loc:       loc,
		full:      []T{},
		displayed: []T{},
		filters:   filters,
	}
}

// Begin issues the token a fetch must present to Commit.
func (v *View[T]) Begin() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.issued++
	return v.issued
}

// Commit replaces the full list with items if token is still the latest
// issued one, then re-applies the filters. The fetched order replaces any
// earlier sort. It reports whether items were taken; a false return means a
// newer fetch was started meanwhile.
func (v *View[T]) Commit(token uint64, items []T) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if token != v.issued {
		return false
	}
	if items == nil {
		items = []T{}
	}
	v.full = items
	v.sort = nil
	v.committed = token
	v.applyLocked()
	return true
}

// Committed returns the token of the fetch currently shown, 0 before the
// first successful fetch.
func (v *View[T]) Committed() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.committed
}

// SetFilter sets one filter string and re-applies.
func (v *View[T]) SetFilter(name, value string) error {
	return v.SetFilters(map[string]string{name: value})
}

// SetFilters updates the named filters together; fields not mentioned keep
// their current filter. Nothing changes if any name is unknown.
func (v *View[T]) SetFilters(values map[string]string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for name := range values {
		if _, ok := v.filters[name]; !ok {
			return ErrUnknownField.WithCause(unknownField(name))
		}
	}
	for name, value := range values {
		v.filters[name] = value
	}
	v.applyLocked()
	return nil
}

func (v *View[T]) Filters() map[string]string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return maps.Clone(v.filters)
}

// Reset clears every filter and re-applies, leaving the full list in its
// current order.
func (v *View[T]) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for name := range v.filters {
		v.filters[name] = ""
	}
	v.applyLocked()
}

// Sort stably reorders the full list by the named field and re-applies the
// filters. The order holds until the next Commit.
func (v *View[T]) Sort(name string, desc bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	idx := slices.IndexFunc(v.fields, func(f Field[T]) bool {
		return f.Name == name && f.Compare != nil
	})
	if idx < 0 {
		return ErrUnknownField.WithCause(unknownField(name))
	}
	compare := v.fields[idx].Compare

	sorted := slices.Clone(v.full)
	slices.SortStableFunc(sorted, func(a, b T) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	v.full = sorted
	v.sort = &SortState{Field: name, Desc: desc}
	v.applyLocked()
	return nil
}

// Sorted returns the last sort applied since construction, if any.
func (v *View[T]) Sorted() (SortState, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.sort == nil {
		return SortState{}, false
	}
	return *v.sort, true
}

func (v *View[T]) Full() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.full)
}

func (v *View[T]) Displayed() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.displayed)
}

func (v *View[T]) applyLocked() {
	type needle struct {
		field Field[T]
		text  string
	}
	needles := make([]needle, 0, len(v.filters))
	for _, f := range v.fields {
		if !f.Filterable {
			continue
		}
		text := v.loc.Lower(strings.TrimSpace(v.filters[f.Name]))
		if text == "" {
			continue
		}
		needles = append(needles, needle{field: f, text: text})
	}

	displayed := make([]T, 0, len(v.full))
	for _, r := range v.full {
		keep := true
		for _, n := range needles {
			value, ok := n.field.Text(r)
			if !ok || !strings.Contains(v.loc.Lower(value), n.text) {
				keep = false
				break
			}
		}
		if keep {
			displayed = append(displayed, r)
		}
	}
	v.displayed = displayed
}

type unknownField string

func (u unknownField) Error() string {
	return "unknown field " + string(u)
}
