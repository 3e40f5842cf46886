package model

import "time"

// Setting is one row of the server-wide settings table.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// StorageItem is one client-scoped local storage record.
type StorageItem struct {
	ClientID  string
	Key       string
	Value     string
	UpdatedAt time.Time
}
