package submission

import "errors"

var (
	ErrStorageRead  = errors.New("storage read failed")
	ErrStorageWrite = errors.New("storage write failed")
	ErrDuplicateID  = errors.New("duplicate record id")
)
