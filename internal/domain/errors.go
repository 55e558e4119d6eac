package domain

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrDuplicateEmpCode  = errors.New("employee code already exists")
	ErrInvalidEntryKind  = errors.New("invalid entry kind")
	ErrMissingEmployeeID = errors.New("employee id is required")
	ErrEmployeeInactive  = errors.New("employee is not active")
)
