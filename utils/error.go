package utils

import "errors"

var (
	ErrorRecordNotFound  = errors.New("record not found")
	ErrorSessionNotFound = errors.New("reconciliation session not found")
)
