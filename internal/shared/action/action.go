package action

import (
	"strings"

	"hris-admin/internal/shared/apperror"
)

type Action int

const (
	None Action = iota
	Create
	Update
	Delete
)

// String is the label shown on the console's confirm button.
func (a Action) String() string {
	switch a {
	case Create:
		return "Create"
	case Update:
		return "Update"
	case Delete:
		return "Delete"
	default:
		return ""
	}
}

func (a Action) PastTense() string {
	switch a {
	case Create:
		return "created"
	case Update:
		return "updated"
	case Delete:
		return "deleted"
	default:
		return ""
	}
}

// Parse accepts create, update or delete in any case.
func Parse(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "create":
		return Create, nil
	case "update":
		return Update, nil
	case "delete":
		return Delete, nil
	default:
		return None, apperror.ErrInvalidAction
	}
}
