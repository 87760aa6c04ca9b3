package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	// ErrOverlap is raised by the reservations exclusion constraint when a
	// concurrent write claimed the same table for an overlapping window.
	ErrOverlap = errors.New("overlapping reservation")
)
