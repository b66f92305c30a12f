package department

// Department is the backend record. ID is assigned by the backend and is
// empty before the first save.
type Department struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// forCreate strips everything the backend assigns itself.
func (d Department) forCreate() Department {
	return Department{Name: d.Name}
}
