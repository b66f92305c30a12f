package employeeerrors

import (
	"hris-admin/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Employee ID is required for update and delete",
		http.StatusBadRequest,
	)
	ErrInvalidDateOfJoining = apperror.InvalidField("dateOfJoining")
	ErrPhotoRequired        = apperror.RequiredField("photo")
	ErrUnsupportedPhoto     = apperror.New(
		apperror.CodeUnsupportedMedia,
		"Photo must be an image",
		http.StatusUnsupportedMediaType,
	)
	ErrPhotoTooLarge = apperror.New(
		apperror.CodePayloadTooLarge,
		"Photo exceeds the upload size limit",
		http.StatusRequestEntityTooLarge,
	)
	ErrStagedEmployeeChanged = apperror.New(
		apperror.CodeConflict,
		"The staged employee changed while the photo was uploading",
		http.StatusConflict,
	)
)
