package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ogurasousui/hr-org-service/internal/core/employee"
	"github.com/sirupsen/logrus"
)

// EmployeeHandler は社員 API のハンドラです。
type EmployeeHandler struct {
	uc     employee.UseCase
	logger *logrus.Logger
}

// NewEmployeeHandler は EmployeeHandler を生成します。
func NewEmployeeHandler(uc employee.UseCase, logger *logrus.Logger) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, logger: logger}
}

type createEmployeeRequest struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	Telephone     string  `json:"telephone"`
	ManagerID     *int64  `json:"manager_id"`
	Status        *string `json:"status"`
	DepartmentIDs []int64 `json:"department_ids"`
}

// Create は POST /v1/employees を処理します。
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req createEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	input := employee.CreateEmployeeInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Telephone:     req.Telephone,
		ManagerID:     req.ManagerID,
		DepartmentIDs: req.DepartmentIDs,
	}

	if req.Status != nil {
		status, err := employee.ParseStatus(*req.Status)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		input.Status = &status
	}

	created, err := h.uc.CreateEmployee(r.Context(), sess, input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, toEmployeeResponse(created))
}

// manager_id はフィールド欠落と明示的な null を区別するため RawMessage で受けます。
type updateEmployeeRequest struct {
	FirstName *string         `json:"first_name"`
	LastName  *string         `json:"last_name"`
	Telephone *string         `json:"telephone"`
	Status    *string         `json:"status"`
	ManagerID json.RawMessage `json:"manager_id"`
}

// Update は PUT /v1/employees/{id} を処理します。
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req updateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	input := employee.UpdateEmployeeInput{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Telephone: req.Telephone,
	}

	if req.Status != nil {
		status, err := employee.ParseStatus(*req.Status)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		input.Status = &status
	}

	if len(req.ManagerID) > 0 {
		input.ManagerIDSet = true
		if !bytes.Equal(bytes.TrimSpace(req.ManagerID), []byte("null")) {
			var managerID int64
			if err := json.Unmarshal(req.ManagerID, &managerID); err != nil {
				writeError(w, h.logger, fmt.Errorf("%w: manager_id must be an integer or null", errBadRequestBody))
				return
			}
			input.ManagerID = &managerID
		}
	}

	updated, err := h.uc.UpdateEmployee(r.Context(), sess, input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toEmployeeResponse(updated))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus は PATCH /v1/employees/{id}/status を処理します。
func (h *EmployeeHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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

	status, err := employee.ParseStatus(req.Status)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	updated, err := h.uc.UpdateEmployeeStatus(r.Context(), sess, employee.UpdateEmployeeStatusInput{ID: id, Status: status})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toEmployeeResponse(updated))
}

// Get は GET /v1/employees/{id} を処理します。
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	found, err := h.uc.GetEmployee(r.Context(), sess, employee.GetEmployeeInput{ID: id})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toEmployeeResponse(found))
}

// List は GET /v1/employees を処理します。
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	input := employee.ListEmployeesInput{
		PageToken: r.URL.Query().Get("page_token"),
	}

	if raw := r.URL.Query().Get("page_size"); raw != "" {
		pageSize, err := parsePageSizeParam(raw)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		input.PageSize = pageSize
	}

	result, err := h.uc.ListEmployees(r.Context(), sess, input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := listEmployeesResponse{
		Employees:     make([]employeeResponse, 0, len(result.Employees)),
		NextPageToken: result.NextPageToken,
	}
	for _, emp := range result.Employees {
		resp.Employees = append(resp.Employees, toEmployeeResponse(emp))
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}
