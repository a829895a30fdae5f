package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ogurasousui/hr-org-service/internal/core/department"
	"github.com/ogurasousui/hr-org-service/internal/core/directory"
	"github.com/ogurasousui/hr-org-service/internal/core/employee"
	"github.com/sirupsen/logrus"
)

// NewRouter は API のルーティングを構築します。
func NewRouter(
	logger *logrus.Logger,
	employeeUC employee.UseCase,
	departmentUC department.UseCase,
	directoryUC directory.UseCase,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogging(logger))

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	employeeHandler := NewEmployeeHandler(employeeUC, logger)
	router.HandleFunc("/v1/employees", employeeHandler.Create).Methods(http.MethodPost)
	router.HandleFunc("/v1/employees", employeeHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/v1/employees/{id}", employeeHandler.Get).Methods(http.MethodGet)
	router.HandleFunc("/v1/employees/{id}", employeeHandler.Update).Methods(http.MethodPut)
	router.HandleFunc("/v1/employees/{id}/status", employeeHandler.UpdateStatus).Methods(http.MethodPatch)

	departmentHandler := NewDepartmentHandler(departmentUC, logger)
	router.HandleFunc("/v1/departments", departmentHandler.Create).Methods(http.MethodPost)
	router.HandleFunc("/v1/departments", departmentHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/v1/departments/{id}", departmentHandler.Get).Methods(http.MethodGet)
	router.HandleFunc("/v1/departments/{id}", departmentHandler.Update).Methods(http.MethodPut)
	router.HandleFunc("/v1/departments/{id}/status", departmentHandler.UpdateStatus).Methods(http.MethodPatch)

	directoryHandler := NewDirectoryHandler(directoryUC, logger)
	router.HandleFunc("/v1/managers", directoryHandler.ListManagers).Methods(http.MethodGet)

	return router
}
