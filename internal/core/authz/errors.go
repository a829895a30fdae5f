package authz

import "errors"

var (
	// ErrUnauthorized はセッションが存在しない場合に返却されます。
	ErrUnauthorized = errors.New("authz: no session")
	// ErrForbidden はセッションの役割が許可集合に含まれない場合に返却されます。
	ErrForbidden = errors.New("authz: access denied")
	// ErrInvalidRole は未知の役割値の場合に返却されます。
	ErrInvalidRole = errors.New("authz: invalid role")
)
