package library

import (
	"fmt"
	"strings"
)

// Role is the closed set of roles an acting user can hold.
type Role int

const (
	RolePatron Role = iota
	RoleLibrarian
	RoleAdministrator
)

func (r Role) String() string {
	switch r {
	case RolePatron:
		return "Patron"
	case RoleLibrarian:
		return "Librarian"
	case RoleAdministrator:
		return "Administrator"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole maps a role name (case-insensitive) to a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "patron":
		return RolePatron, nil
	case "librarian":
		return RoleLibrarian, nil
	case "administrator", "admin":
		return RoleAdministrator, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownRole)
}

// MarshalText lets roles appear by name in JSON and YAML reports.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Operation names a permission-checked Manager operation.
type Operation string

const (
	OpAddBook                   Operation = "add_book"
	OpRemoveBook                Operation = "remove_book"
	OpCheckoutBook              Operation = "checkout_book"
	OpReturnBook                Operation = "return_book"
	OpGenerateReports           Operation = "generate_reports"
	OpDisplayAccountInfo        Operation = "display_account_info"
	OpDisplayPatronTransactions Operation = "display_patron_transactions"
	OpAddPatron                 Operation = "add_patron"
	OpRemovePatron              Operation = "remove_patron"
	OpSaveBooksToCSV            Operation = "save_books_to_csv"
)

// Operations lists every operation in declaration order.
var Operations = []Operation{
	OpAddBook,
	OpRemoveBook,
	OpCheckoutBook,
	OpReturnBook,
	OpGenerateReports,
	OpDisplayAccountInfo,
	OpDisplayPatronTransactions,
	OpAddPatron,
	OpRemovePatron,
	OpSaveBooksToCSV,
}

// Permissions is an immutable role → operation-set table. The zero value
// allows nothing.
type Permissions struct {
	sets map[Role]map[Operation]struct{}
}

// NewPermissions copies table into a Permissions value.
func NewPermissions(table map[Role][]Operation) Permissions {
	sets := make(map[Role]map[Operation]struct{}, len(table))
	for role, ops := range table {
		set := make(map[Operation]struct{}, len(ops))
		for _, op := range ops {
			set[op] = struct{}{}
		}
		sets[role] = set
	}
	return Permissions{sets: sets}
}

// DefaultPermissions returns the fixed staff table: librarians run the
// circulation desk, administrators additionally manage patrons and exports,
// patrons may invoke nothing.
func DefaultPermissions() Permissions {
	librarian := []Operation{
		OpAddBook,
		OpRemoveBook,
		OpCheckoutBook,
		OpReturnBook,
		OpGenerateReports,
		OpDisplayAccountInfo,
		OpDisplayPatronTransactions,
	}
	administrator := append(append([]Operation{}, librarian...),
		OpAddPatron,
		OpRemovePatron,
		OpSaveBooksToCSV,
	)
	return NewPermissions(map[Role][]Operation{
		RoleLibrarian:     librarian,
		RoleAdministrator: administrator,
		RolePatron:        nil,
	})
}

// IsAllowed reports whether role may invoke op. Unknown roles get nothing.
func (p Permissions) IsAllowed(role Role, op Operation) bool {
	set, ok := p.sets[role]
	if !ok {
		return false
	}
	_, ok = set[op]
	return ok
}

// Allowed returns the operations role may invoke, in declaration order.
func (p Permissions) Allowed(role Role) []Operation {
	var ops []Operation
	for _, op := range Operations {
		if p.IsAllowed(role, op) {
			ops = append(ops, op)
		}
	}
	return ops
}
