package department

type StageDepartmentRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FilterDepartmentRequest only changes the filters it carries.
type FilterDepartmentRequest struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

type SortDepartmentRequest struct {
	Field string `json:"field" binding:"required,oneof=id name"`
	Desc  bool   `json:"desc"`
}

// DispatchDepartmentRequest sends Record when present, the staged record
// otherwise.
type DispatchDepartmentRequest struct {
	Action string                  `json:"action" binding:"required"`
	Record *StageDepartmentRequest `json:"record"`
}

type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r FilterDepartmentRequest) toMap() map[string]string {
	m := make(map[string]string, 2)
	if r.ID != nil {
		m[FieldID] = *r.ID
	}
	if r.Name != nil {
		m[FieldName] = *r.Name
	}
	return m
}

func (r StageDepartmentRequest) toEntity() Department {
	return Department{ID: r.ID, Name: r.Name}
}

func mapToResponse(d Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, Name: d.Name}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
