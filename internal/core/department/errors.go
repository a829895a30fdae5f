package department

import "errors"

var (
	// ErrDepartmentNotFound は部門が存在しない場合に返却されます。
	ErrDepartmentNotFound = errors.New("department: not found")
	// ErrManagerNotFound は指定された管理者が社員として存在しない場合に返却されます。
	ErrManagerNotFound = errors.New("department: manager not found")
	// ErrInvalidName は部門名が不正な場合に返却されます。
	ErrInvalidName = errors.New("department: invalid name")
	// ErrInvalidStatus はステータスが不正な場合に返却されます。
	ErrInvalidStatus = errors.New("department: invalid status")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = errors.New("department: invalid id")
)
