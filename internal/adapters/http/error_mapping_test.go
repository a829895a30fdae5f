package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/ogurasousui/hr-org-service/internal/core/authz"
	"github.com/ogurasousui/hr-org-service/internal/core/department"
	"github.com/ogurasousui/hr-org-service/internal/core/employee"
)

func TestStatusForError(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		err    error
		status int
	}{
		"unauthorized":         {err: authz.ErrUnauthorized, status: http.StatusUnauthorized},
		"forbidden":            {err: authz.ErrForbidden, status: http.StatusForbidden},
		"employee not found":   {err: employee.ErrEmployeeNotFound, status: http.StatusNotFound},
		"manager not found":    {err: employee.ErrManagerNotFound, status: http.StatusNotFound},
		"department not found": {err: department.ErrDepartmentNotFound, status: http.StatusNotFound},
		"email conflict":       {err: employee.ErrEmailAlreadyExists, status: http.StatusConflict},
		"manager cycle":        {err: employee.ErrManagerCycle, status: http.StatusUnprocessableEntity},
		"invalid email":        {err: employee.ErrInvalidEmail, status: http.StatusBadRequest},
		"invalid name":         {err: department.ErrInvalidName, status: http.StatusBadRequest},
		"bad session header":   {err: ErrInvalidSessionHeader, status: http.StatusBadRequest},
		"wrapped not found":    {err: errors.Join(errors.New("lookup"), employee.ErrEmployeeNotFound), status: http.StatusNotFound},
		"unknown":              {err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := statusForError(tc.err); got != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, got)
			}
		})
	}
}
