package http

import (
	"time"

	"github.com/ogurasousui/hr-org-service/internal/core/department"
	"github.com/ogurasousui/hr-org-service/internal/core/directory"
	"github.com/ogurasousui/hr-org-service/internal/core/employee"
)

type employeeResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Telephone string    `json:"telephone"`
	Status    string    `json:"status"`
	ManagerID *int64    `json:"manager_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listEmployeesResponse struct {
	Employees     []employeeResponse `json:"employees"`
	NextPageToken string             `json:"next_page_token,omitempty"`
}

func toEmployeeResponse(e *employee.Employee) employeeResponse {
	return employeeResponse{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Telephone: e.Telephone,
		Status:    string(e.Status),
		ManagerID: e.ManagerID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

type managerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type departmentResponse struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Status    string           `json:"status"`
	ManagerID int64            `json:"manager_id"`
	Manager   *managerResponse `json:"manager,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type listDepartmentsResponse struct {
	Departments []departmentResponse `json:"departments"`
}

func toDepartmentResponse(d *department.Department) departmentResponse {
	resp := departmentResponse{
		ID:        d.ID,
		Name:      d.Name,
		Status:    string(d.Status),
		ManagerID: d.ManagerID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Manager != nil {
		resp.Manager = &managerResponse{
			ID:        d.Manager.ID,
			FirstName: d.Manager.FirstName,
			LastName:  d.Manager.LastName,
			Email:     d.Manager.Email,
		}
	}
	return resp
}

type departmentRefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type subordinateRefResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type managerViewResponse struct {
	ID                 int64                    `json:"id"`
	FirstName          string                   `json:"first_name"`
	LastName           string                   `json:"last_name"`
	Departments        []departmentRefResponse  `json:"departments"`
	Subordinates       []subordinateRefResponse `json:"subordinates"`
	SubordinatesStatus string                   `json:"subordinates_status"`
}

type listManagersResponse struct {
	Managers []managerViewResponse `json:"managers"`
}

func toManagerViewResponse(v *directory.ManagerView) managerViewResponse {
	resp := managerViewResponse{
		ID:                 v.ID,
		FirstName:          v.FirstName,
		LastName:           v.LastName,
		Departments:        make([]departmentRefResponse, 0, len(v.Departments)),
		Subordinates:       make([]subordinateRefResponse, 0, len(v.Subordinates)),
		SubordinatesStatus: string(v.SubordinatesStatus),
	}
	for _, dept := range v.Departments {
		resp.Departments = append(resp.Departments, departmentRefResponse{ID: dept.ID, Name: dept.Name})
	}
	for _, sub := range v.Subordinates {
		resp.Subordinates = append(resp.Subordinates, subordinateRefResponse{
			ID:        sub.ID,
			FirstName: sub.FirstName,
			LastName:  sub.LastName,
		})
	}
	return resp
}
