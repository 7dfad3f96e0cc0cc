// Package service implements the business logic between handlers and
// repositories: the role/ownership gates, the query-shaping rules and the
// error taxonomy. Services receive the caller as an explicit
// authz.Identity value; nothing is read from ambient request state.
package service

import (
	"errors"
	"strings"
)

// Sentinel errors form the error taxonomy handlers translate into HTTP
// statuses. Services wrap them with %w and a human-readable message;
// anything not matching one of these surfaces as a generic 500 with the
// original error logged server-side only.
var (
	ErrInvalidInput = errors.New("invalid input") // 400
	ErrUnauthorized = errors.New("unauthorized")  // 401
	ErrForbidden    = errors.New("forbidden")     // 403
	ErrNotFound     = errors.New("not found")     // 404
	ErrConflict     = errors.New("conflict")      // 409
)

const (
	defaultTake = 10
	maxTake     = 100
)

// normalizePage clamps skip/take to sane bounds and applies the default
// page size shared by every listing endpoint.
func normalizePage(skip, take int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if take <= 0 {
		take = defaultTake
	}
	if take > maxTake {
		take = maxTake
	}
	return skip, take
}

// parseOrder splits an "field:direction" sort expression and checks the
// field against the operation's allow-list. Anything malformed or not
// allow-listed falls back to createdAt descending.
func parseOrder(orderBy string, allowed map[string]bool) (string, bool) {
	if orderBy == "" {
		return "createdAt", true
	}
	field, dir, ok := strings.Cut(orderBy, ":")
	if !ok || !allowed[field] || (dir != "asc" && dir != "desc") {
		return "createdAt", true
	}
	return field, dir == "desc"
}
