package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ogurasousui/hr-org-service/internal/core/authz"
	"github.com/ogurasousui/hr-org-service/internal/core/department"
	"github.com/ogurasousui/hr-org-service/internal/core/directory"
)

func sampleDepartment() *department.Department {
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	return &department.Department{
		ID:        5,
		Name:      "Engineering",
		Status:    department.StatusActive,
		ManagerID: 3,
		CreatedAt: now,
		UpdatedAt: now,
		Manager: &department.ManagerSnapshot{
			ID:        3,
			FirstName: "Taro",
			LastName:  "Yamada",
			Email:     "taro@example.com",
		},
	}
}

func TestDepartmentHandler_Create(t *testing.T) {
	t.Parallel()

	var captured department.CreateDepartmentInput
	uc := &stubDepartmentUseCase{
		createFn: func(ctx context.Context, sess *authz.Session, in department.CreateDepartmentInput) (*department.Department, error) {
			captured = in
			return sampleDepartment(), nil
		},
	}

	router := newTestRouter(nil, uc, nil)

	body := `{"name":"Engineering","status":"active","manager_id":3}`
	r := httptest.NewRequest("POST", "/v1/departments", strings.NewReader(body))
	r.Header.Set(headerUserID, "1")
	r.Header.Set(headerUserRole, "HR-ADMIN")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	if captured.Name != "Engineering" || captured.ManagerID != 3 || captured.Status != department.StatusActive {
		t.Fatalf("unexpected input %+v", captured)
	}

	var resp departmentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Manager == nil || resp.Manager.Email != "taro@example.com" {
		t.Fatalf("expected manager snapshot in response, got %+v", resp.Manager)
	}
}

func TestDepartmentHandler_Create_DefaultsStatus(t *testing.T) {
	t.Parallel()

	uc := &stubDepartmentUseCase{
		createFn: func(ctx context.Context, sess *authz.Session, in department.CreateDepartmentInput) (*department.Department, error) {
			if in.Status != department.StatusActive {
				t.Fatalf("expected default active status, got %s", in.Status)
			}
			return sampleDepartment(), nil
		},
	}

	router := newTestRouter(nil, uc, nil)

	r := httptest.NewRequest("POST", "/v1/departments", strings.NewReader(`{"name":"Engineering","manager_id":3}`))
	r.Header.Set(headerUserID, "1")
	r.Header.Set(headerUserRole, "HR-ADMIN")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDepartmentHandler_Create_ManagerNotFound(t *testing.T) {
	t.Parallel()

	uc := &stubDepartmentUseCase{
		createFn: func(ctx context.Context, sess *authz.Session, in department.CreateDepartmentInput) (*department.Department, error) {
			return nil, department.ErrManagerNotFound
		},
	}

	router := newTestRouter(nil, uc, nil)

	r := httptest.NewRequest("POST", "/v1/departments", strings.NewReader(`{"name":"Engineering","status":"active","manager_id":99}`))
	r.Header.Set(headerUserID, "1")
	r.Header.Set(headerUserRole, "HR-ADMIN")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDepartmentHandler_UpdateStatus_Forbidden(t *testing.T) {
	t.Parallel()

	uc := &stubDepartmentUseCase{
		updateStatusFn: func(ctx context.Context, sess *authz.Session, in department.UpdateDepartmentStatusInput) (*department.Department, error) {
			return nil, authz.ErrForbidden
		},
	}

	router := newTestRouter(nil, uc, nil)

	r := httptest.NewRequest("PATCH", "/v1/departments/5/status", strings.NewReader(`{"status":"inactive"}`))
	r.Header.Set(headerUserID, "7")
	r.Header.Set(headerUserRole, "EMPLOYEE")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestDepartmentHandler_List(t *testing.T) {
	t.Parallel()

	uc := &stubDepartmentUseCase{
		listFn: func(ctx context.Context, sess *authz.Session) ([]*department.Department, error) {
			return []*department.Department{sampleDepartment()}, nil
		},
	}

	router := newTestRouter(nil, uc, nil)

	r := httptest.NewRequest("GET", "/v1/departments", nil)
	r.Header.Set(headerUserID, "3")
	r.Header.Set(headerUserRole, "MANAGER")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp listDepartmentsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Departments) != 1 || resp.Departments[0].Name != "Engineering" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestDirectoryHandler_ListManagers(t *testing.T) {
	t.Parallel()

	uc := &stubDirectoryUseCase{
		listFn: func(ctx context.Context) ([]*directory.ManagerView, error) {
			return []*directory.ManagerView{
				{
					ID:        3,
					FirstName: "Taro",
					LastName:  "Yamada",
					Departments: []directory.DepartmentRef{
						{ID: 5, Name: "Engineering"},
					},
					Subordinates: []directory.SubordinateRef{
						{ID: 11, FirstName: "Hanako", LastName: "Suzuki"},
					},
					SubordinatesStatus: directory.SubordinatesSome,
				},
			}, nil
		},
	}

	router := newTestRouter(nil, nil, uc)

	// 名簿は匿名でも参照できる。
	r := httptest.NewRequest("GET", "/v1/managers", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp listManagersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Managers) != 1 {
		t.Fatalf("expected 1 manager, got %d", len(resp.Managers))
	}

	manager := resp.Managers[0]
	if manager.SubordinatesStatus != string(directory.SubordinatesSome) {
		t.Fatalf("unexpected subordinates status %s", manager.SubordinatesStatus)
	}
	if len(manager.Departments) != 1 || manager.Departments[0].Name != "Engineering" {
		t.Fatalf("unexpected departments %+v", manager.Departments)
	}
}
