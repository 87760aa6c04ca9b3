package admin

import "errors"

var (
	ErrInvalidTable   = errors.New("invalid table definition")
	ErrDuplicateTable = errors.New("table number already exists")
	ErrInvalidWindow  = errors.New("invalid event window")
	ErrInvalidHours   = errors.New("invalid hours definition")
)
