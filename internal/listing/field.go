package listing

import (
	"strings"
	"time"
)

// Field is one named attribute of T that the console can filter or sort on.
// Text returns the value as displayed and false when the record has no
// value. Compare is nil for fields that cannot be sorted.
type Field[T any] struct {
	Name       string
	Text       func(T) (string, bool)
	Compare    func(a, b T) int
	Filterable bool
}

// StringField filters and sorts on a plain string attribute. The empty
// string counts as absent.
func StringField[T any](name string, get func(T) string) Field[T] {
	return Field[T]{
		Name: name,
		Text: func(r T) (string, bool) {
			v := get(r)
			return v, v != ""
		},
		Compare: func(a, b T) int {
			return strings.Compare(get(a), get(b))
		},
		Filterable: true,
	}
}

// SortOnly returns f with filtering disabled.
func SortOnly[T any](f Field[T]) Field[T] {
	f.Filterable = false
	return f
}

// TimeField sorts chronologically and filters on render(t), the string the
// user actually sees.
func TimeField[T any](name string, get func(T) time.Time, render func(time.Time) string) Field[T] {
	return Field[T]{
		Name: name,
		Text: func(r T) (string, bool) {
			t := get(r)
			if t.IsZero() {
				return "", false
			}
			return render(t), true
		},
		Compare: func(a, b T) int {
			return get(a).Compare(get(b))
		},
		Filterable: true,
	}
}
