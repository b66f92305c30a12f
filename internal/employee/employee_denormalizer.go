package employee

import "hris-admin/internal/department"

// Denormalize returns a copy of emps with DepartmentName resolved from depts.
// Duplicate department ids resolve to the last one listed. Employees whose
// department is unset or unknown get an empty name.
func Denormalize(emps []Employee, depts []department.Department) []Employee {
	names := make(map[string]string, len(depts))
	for _, d := range depts {
		names[d.ID] = d.Name
	}

	out := make([]Employee, len(emps))
	for i, e := range emps {
		e.DepartmentName = ""
		if e.DepartmentID != "" {
			e.DepartmentName = names[e.DepartmentID]
		}
		out[i] = e
	}
	return out
}
