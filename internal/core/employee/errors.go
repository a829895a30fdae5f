package employee

import "errors"

var (
	ErrInvalidID          = errors.New("employee: invalid id")
	ErrInvalidFirstName   = errors.New("employee: invalid first name")
	ErrInvalidLastName    = errors.New("employee: invalid last name")
	ErrInvalidEmail       = errors.New("employee: invalid email")
	ErrInvalidTelephone   = errors.New("employee: invalid telephone")
	ErrInvalidStatus      = errors.New("employee: invalid status")
	ErrInvalidPageSize    = errors.New("employee: invalid page size")
	ErrInvalidPageToken   = errors.New("employee: invalid page token")
	ErrEmployeeNotFound   = errors.New("employee: not found")
	ErrManagerNotFound    = errors.New("employee: manager not found")
	ErrEmailAlreadyExists = errors.New("employee: email already exists")
	ErrManagerCycle       = errors.New("employee: manager assignment creates a cycle")
)
