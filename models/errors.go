package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSourceNotFound is returned when the configured source file is absent.
// It aborts the whole run.
var ErrSourceNotFound = errors.New("source file not found")

// MissingColumnError is returned in grouped mode when a mandatory column is
// absent from the source header. It carries the available columns to aid
// diagnosis.
type MissingColumnError struct {
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("mandatory column %q not found (available: %s)",
		e.Column, strings.Join(e.Available, ", "))
}
