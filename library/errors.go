package library

import "errors"

// Outcomes returned by Manager operations. Callers branch with errors.Is;
// none of these abort the session.
var (
	// ErrPermissionDenied indicates the acting user's role lacks the operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound indicates a book, patron or transaction key did not resolve.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable indicates a checkout of a book with no copies left.
	ErrUnavailable = errors.New("no copies available")

	// ErrDuplicateKey indicates an ISBN or patron ID already in use.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidQuantity indicates a negative copy count.
	ErrInvalidQuantity = errors.New("quantity must not be negative")

	// ErrUnknownRole indicates a role name that maps to no Role.
	ErrUnknownRole = errors.New("unknown role")
)
