package employee

import (
	"time"

	"hris-admin/internal/listing"
	"hris-admin/internal/shared/locale"
)

const (
	FieldID             = "id"
	FieldName           = "name"
	FieldDepartmentID   = "departmentId"
	FieldDepartmentName = "departmentName"
	FieldDateOfJoining  = "dateOfJoining"
	FieldImageName      = "imageName"
)

func newView(loc locale.Locale) *listing.View[Employee] {
	return listing.NewView(loc,
		listing.StringField(FieldID, func(e Employee) string { return e.ID }),
		listing.StringField(FieldName, func(e Employee) string { return e.Name }),
		listing.SortOnly(listing.StringField(FieldDepartmentID, func(e Employee) string { return e.DepartmentID })),
		listing.StringField(FieldDepartmentName, func(e Employee) string { return e.DepartmentName }),
		listing.TimeField(FieldDateOfJoining,
			func(e Employee) time.Time { return e.DateOfJoining.Time },
			loc.FormatDate,
		),
		listing.SortOnly(listing.StringField(FieldImageName, func(e Employee) string { return e.ImageName })),
	)
}
