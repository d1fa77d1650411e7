// Package repository holds the errors shared by the Mongo repositories.
package repository

import "errors"

var (
	// ErrNotFound is returned when no document matches the lookup.
	ErrNotFound = errors.New("document not found")
	// ErrVersionConflict is returned when a compare-and-set update finds the
	// document at a different version than expected.
	ErrVersionConflict = errors.New("document version changed")
)
