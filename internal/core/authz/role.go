package authz

import "strings"

// Role はクレデンシャルに付与される役割を表します。
type Role string

const (
	RoleHRAdmin  Role = "HR-ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// ParseRole は外部入力を Role に変換します。未知の値は ErrInvalidRole になります。
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleHRAdmin:
		return RoleHRAdmin, nil
	case RoleManager:
		return RoleManager, nil
	case RoleEmployee:
		return RoleEmployee, nil
	default:
		return "", ErrInvalidRole
	}
}

// Valid は既知の役割かどうかを返します。
func (r Role) Valid() bool {
	switch r {
	case RoleHRAdmin, RoleManager, RoleEmployee:
		return true
	default:
		return false
	}
}
