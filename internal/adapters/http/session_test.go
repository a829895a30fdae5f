package http

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/ogurasousui/hr-org-service/internal/core/authz"
)

func TestSessionFromRequest_Anonymous(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/v1/employees", nil)

	sess, err := sessionFromRequest(r)
	if err != nil {
		t.Fatalf("sessionFromRequest returned error: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected nil session, got %+v", sess)
	}
}

func TestSessionFromRequest_Valid(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/v1/employees", nil)
	r.Header.Set(headerUserID, "42")
	r.Header.Set(headerUserRole, "hr-admin")

	sess, err := sessionFromRequest(r)
	if err != nil {
		t.Fatalf("sessionFromRequest returned error: %v", err)
	}
	if sess == nil || sess.UserID != 42 || sess.Role != authz.RoleHRAdmin {
		t.Fatalf("unexpected session %+v", sess)
	}
}

func TestSessionFromRequest_Invalid(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		userID string
		role   string
	}{
		"missing role":    {userID: "42", role: ""},
		"missing user id": {userID: "", role: "MANAGER"},
		"bad user id":     {userID: "abc", role: "MANAGER"},
		"zero user id":    {userID: "0", role: "MANAGER"},
		"unknown role":    {userID: "42", role: "ROOT"},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", "/v1/employees", nil)
			if tc.userID != "" {
				r.Header.Set(headerUserID, tc.userID)
			}
			if tc.role != "" {
				r.Header.Set(headerUserRole, tc.role)
			}

			if _, err := sessionFromRequest(r); !errors.Is(err, ErrInvalidSessionHeader) {
				t.Fatalf("expected ErrInvalidSessionHeader, got %v", err)
			}
		})
	}
}
