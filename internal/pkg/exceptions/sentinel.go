package exceptions

import "errors"

var (
	ErrSlotConflict   = errors.New("confirmed booking already exists for slot")
	ErrStatusConflict = errors.New("booking status changed concurrently")
)
