package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownParent is returned when a toggle targets an id that is not in the dataset
	ErrUnknownParent = errors.New("unknown parent id")
	// ErrOutOfRange is returned when a row index is outside [0, RowCount())
	ErrOutOfRange = errors.New("row index out of range")
	// ErrInvalidState is returned when a saved state blob cannot be decoded
	ErrInvalidState = errors.New("invalid saved state")
	// ErrInvalidTransition is returned when a lifecycle call arrives in the wrong state
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
)

// UnknownParentError carries the id that could not be found
type UnknownParentError struct {
	ID int
}

func (e UnknownParentError) Error() string {
	return fmt.Sprintf("%v: %d", ErrUnknownParent, e.ID)
}

func (e UnknownParentError) Is(target error) bool {
	return target == ErrUnknownParent
}

// OutOfRangeError carries the offending index and the row count at the time
type OutOfRangeError struct {
	Index int
	Count int
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("%v: index %d, count %d", ErrOutOfRange, e.Index, e.Count)
}

func (e OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
