package http

import (
	"net/http"

	"github.com/ogurasousui/hr-org-service/internal/core/department"
	"github.com/sirupsen/logrus"
)

// DepartmentHandler は部門 API のハンドラです。
type DepartmentHandler struct {
	uc     department.UseCase
	logger *logrus.Logger
}

// NewDepartmentHandler は DepartmentHandler を生成します。
func NewDepartmentHandler(uc department.UseCase, logger *logrus.Logger) *DepartmentHandler {
	return &DepartmentHandler{uc: uc, logger: logger}
}

type createDepartmentRequest struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	ManagerID int64  `json:"manager_id"`
}

// Create は POST /v1/departments を処理します。
func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req createDepartmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	status := department.StatusActive
	if req.Status != "" {
		status, err = department.ParseStatus(req.Status)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
	}

	created, err := h.uc.CreateDepartment(r.Context(), sess, department.CreateDepartmentInput{
		Name:      req.Name,
		Status:    status,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, toDepartmentResponse(created))
}

type updateDepartmentRequest struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	ManagerID int64  `json:"manager_id"`
}

// Update は PUT /v1/departments/{id} を処理します。
func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req updateDepartmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	status, err := department.ParseStatus(req.Status)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	updated, err := h.uc.UpdateDepartment(r.Context(), sess, department.UpdateDepartmentInput{
		ID:        id,
		Name:      req.Name,
		Status:    status,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toDepartmentResponse(updated))
}

// UpdateStatus は PATCH /v1/departments/{id}/status を処理します。
func (h *DepartmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	status, err := department.ParseStatus(req.Status)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	updated, err := h.uc.UpdateDepartmentStatus(r.Context(), sess, department.UpdateDepartmentStatusInput{ID: id, Status: status})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toDepartmentResponse(updated))
}

// Get は GET /v1/departments/{id} を処理します。
func (h *DepartmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	found, err := h.uc.GetDepartment(r.Context(), sess, department.GetDepartmentInput{ID: id})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toDepartmentResponse(found))
}

// List は GET /v1/departments を処理します。
func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	departments, err := h.uc.ListDepartments(r.Context(), sess)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := listDepartmentsResponse{Departments: make([]departmentResponse, 0, len(departments))}
	for _, dept := range departments {
		resp.Departments = append(resp.Departments, toDepartmentResponse(dept))
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}
