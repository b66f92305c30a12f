package employee

import (
	"strings"

	"hris-admin/internal/department"
	employeeerrors "hris-admin/internal/employee/errors"
)

type StageEmployeeRequest struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DepartmentID  string `json:"departmentId"`
	DateOfJoining string `json:"dateOfJoining"`
	ImageName     string `json:"imageName"`
}

type FilterEmployeeRequest struct {
	ID             *string `json:"id"`
	Name           *string `json:"name"`
	DepartmentName *string `json:"departmentName"`
	DateOfJoining  *string `json:"dateOfJoining"`
}

type SortEmployeeRequest struct {
	Field string `json:"field" binding:"required,oneof=id name departmentId departmentName dateOfJoining imageName"`
	Desc  bool   `json:"desc"`
}

type DispatchEmployeeRequest struct {
	Action string                `json:"action" binding:"required"`
	Record *StageEmployeeRequest `json:"record"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DepartmentID   string `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	DateOfJoining  string `json:"dateOfJoining"`
	JoinedOn       string `json:"joinedOn"`
	ImageName      string `json:"imageName"`
	PhotoURL       string `json:"photoUrl"`
}

type PhotoResponse struct {
	ImageName string           `json:"imageName"`
	PhotoURL  string           `json:"photoUrl"`
	Staged    EmployeeResponse `json:"staged"`
}

type DepartmentOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type presenter interface {
	PhotoURL(imageName string) string
	FormatDate(d Date) string
}

func (r FilterEmployeeRequest) toMap() map[string]string {
	m := make(map[string]string, 4)
	if r.ID != nil {
		m[FieldID] = *r.ID
	}
	if r.Name != nil {
		m[FieldName] = *r.Name
	}
	if r.DepartmentName != nil {
		m[FieldDepartmentName] = *r.DepartmentName
	}
	if r.DateOfJoining != nil {
		m[FieldDateOfJoining] = *r.DateOfJoining
	}
	return m
}

func (r StageEmployeeRequest) toEntity() (Employee, error) {
	emp := Employee{
		ID:           r.ID,
		Name:         r.Name,
		DepartmentID: r.DepartmentID,
		ImageName:    r.ImageName,
	}
	if raw := strings.TrimSpace(r.DateOfJoining); raw != "" {
		d, err := ParseDate(raw)
		if err != nil {
			return Employee{}, employeeerrors.ErrInvalidDateOfJoining.WithCause(err)
		}
		emp.DateOfJoining = d
	}
	return emp, nil
}

func mapToResponse(e Employee, p presenter) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		Name:           e.Name,
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
		DateOfJoining:  e.DateOfJoining.String(),
		JoinedOn:       p.FormatDate(e.DateOfJoining),
		ImageName:      e.ImageName,
		PhotoURL:       p.PhotoURL(e.ImageName),
	}
}

func mapToListResponse(emps []Employee, p presenter) []EmployeeResponse {
	res := make([]EmployeeResponse, len(emps))
	for i, e := range emps {
		res[i] = mapToResponse(e, p)
	}
	return res
}

func mapToDepartmentOptions(depts []department.Department) []DepartmentOption {
	res := make([]DepartmentOption, len(depts))
	for i, d := range depts {
		res[i] = DepartmentOption{ID: d.ID, Name: d.Name}
	}
	return res
}
