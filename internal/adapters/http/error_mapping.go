package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ogurasousui/hr-org-service/internal/core/authz"
	"github.com/ogurasousui/hr-org-service/internal/core/department"
	"github.com/ogurasousui/hr-org-service/internal/core/employee"
	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusForError はドメインエラーを HTTP ステータスコードに対応付けます。
func statusForError(err error) int {
	switch {
	case errors.Is(err, authz.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, authz.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, employee.ErrManagerNotFound),
		errors.Is(err, department.ErrDepartmentNotFound),
		errors.Is(err, department.ErrManagerNotFound):
		return http.StatusNotFound
	case errors.Is(err, employee.ErrEmailAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, employee.ErrManagerCycle):
		return http.StatusUnprocessableEntity
	case errors.Is(err, employee.ErrInvalidID),
		errors.Is(err, employee.ErrInvalidFirstName),
		errors.Is(err, employee.ErrInvalidLastName),
		errors.Is(err, employee.ErrInvalidEmail),
		errors.Is(err, employee.ErrInvalidTelephone),
		errors.Is(err, employee.ErrInvalidStatus),
		errors.Is(err, employee.ErrInvalidPageSize),
		errors.Is(err, employee.ErrInvalidPageToken),
		errors.Is(err, department.ErrInvalidID),
		errors.Is(err, department.ErrInvalidName),
		errors.Is(err, department.ErrInvalidStatus),
		errors.Is(err, authz.ErrInvalidRole),
		errors.Is(err, ErrInvalidSessionHeader),
		errors.Is(err, errBadRequestBody):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, logger *logrus.Logger, err error) {
	status := statusForError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.WithError(err).Error("request failed")
		message = "internal server error"
	}

	writeJSON(w, logger, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, logger *logrus.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}
