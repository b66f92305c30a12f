package employee

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Employee is the backend record. DepartmentName is derived locally from the
// department list on every refresh and is never sent back.
type Employee struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	DepartmentID   string `json:"departmentId"`
	DateOfJoining  Date   `json:"dateOfJoining,omitzero"`
	ImageName      string `json:"imageName"`
	DepartmentName string `json:"-"`
}

// forCreate sends every field except the backend-assigned id.
func (e Employee) forCreate() Employee {
	e.ID = ""
	e.DepartmentName = ""
	return e
}

// Date is a calendar timestamp as the backend writes it. Timestamps without
// an offset are read as UTC and written back the same way.
type Date struct {
	time.Time
}

// localDateTime is the zoneless layout the backend uses. Trailing zero
// fractions are trimmed on output.
const localDateTime = "2006-01-02T15:04:05.999999999"

var dateLayouts = []string{
	time.RFC3339Nano,
	localDateTime,
	time.DateOnly,
}

func NewDate(t time.Time) Date {
	return Date{Time: t}
}

func ParseDate(s string) (Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("unrecognised date %q", s)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	if d.Location() == time.UTC {
		return d.Format(localDateTime)
	}
	return d.Format(time.RFC3339Nano)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
