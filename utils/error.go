package utils

import "errors"

var (
	ErrorRecordNotFound = errors.New("record not found")

	// ErrorItemIndexOutOfRange is returned when an item operation addresses
	// a position that does not exist. Out-of-range access is a caller bug,
	// never silently corrected.
	ErrorItemIndexOutOfRange = errors.New("item index out of range")

	ErrorInvalidItemField = errors.New("invalid item field")
)
