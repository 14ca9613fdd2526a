package auth

import (
	"strings"

	"storefront/internal/domain"
)

// Identity is the caller established by a validated session credential.
// The role is the one encoded at issuance; it is not re-read from the
// store, so a role change takes effect at the next login.
type Identity struct {
	UserID    string      `json:"userId"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      domain.Role `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdmin
}

// OwnsResource reports whether the identity may access a resource tagged
// with the given customer name. Admins own everything; customers own a
// resource when the customer name contains their username,
// case-insensitively. The containment match is deliberately loose (a
// username "al" matches "Alice Johnson") and is kept for compatibility
// with existing records.
func OwnsResource(identity Identity, customerName string) bool {
	if identity.IsAdmin() {
		return true
	}
	if identity.Username == "" {
		return false
	}
	return strings.Contains(strings.ToLower(customerName), strings.ToLower(identity.Username))
}
