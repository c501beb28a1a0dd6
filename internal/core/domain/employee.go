package domain

import (
	"errors"
	"time"
)

var ErrEmployeeNotFound = errors.New("employee not found")

// umbrellaDepartments maps a department to the set of departments its leaders
// can see. seguros_generales historically absorbed the auto, casa and
// comercial lines, and old employee rows still carry those values.
var umbrellaDepartments = map[string][]string{
	DepartmentSegurosGen: {"auto", "casa", "comercial", DepartmentSegurosGen},
}

// VisibleDepartments returns the departments whose employees a leader of dept
// may list. For most departments this is just the department itself.
func VisibleDepartments(dept string) []string {
	if expanded, ok := umbrellaDepartments[dept]; ok {
		return expanded
	}
	return []string{dept}
}

// Employee is a named individual belonging to exactly one department,
// registered by a leader of that department. LeaderID is the stable user id
// of the owning leader; LeaderName is a display snapshot only.
type Employee struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	LeaderID   string    `json:"leader_id"`
	LeaderName string    `json:"leader_name"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
