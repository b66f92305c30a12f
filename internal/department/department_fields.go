package department

import (
	"hris-admin/internal/listing"
	"hris-admin/internal/shared/locale"
)

const (
	FieldID   = "id"
	FieldName = "name"
)

func newView(loc locale.Locale) *listing.View[Department] {
	return listing.NewView(loc,
		listing.StringField(FieldID, func(d Department) string { return d.ID }),
		listing.StringField(FieldName, func(d Department) string { return d.Name }),
	)
}
