// Package repository contains the SQL data access layer, separated from
// HTTP handlers and services. Sentinel errors defined here let higher
// layers distinguish failure scenarios without inspecting driver errors.
package repository

import (
	"errors"
	"strings"
)

// ErrEmailExists is returned when a user insert hits the unique email
// constraint. Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicate is returned when an insert or update violates any other
// unique constraint (company contact email, duplicate application).
var ErrDuplicate = errors.New("duplicate entry")

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
