package departmenterrors

import (
	"hris-admin/internal/shared/apperror"
	"net/http"
)

var (
	ErrDepartmentIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Department ID is required for update and delete",
		http.StatusBadRequest,
	)
)
