// File: internal/service/authorization.go
package service

import "fmt"

// AdminUsername is the single privileged principal. There is no role table;
// authorization is a string comparison against this name.
const AdminUsername = "admin"

// ErrForbidden is returned by the policy predicates on deny; the HTTP layer
// maps it to 403.
type ErrForbidden struct {
	Reason string
}

func (e *ErrForbidden) Error() string { return e.Reason }

// IsAdmin reports whether the authenticated identity is the admin principal.
func IsAdmin(identity string) bool {
	return identity == AdminUsername
}

// IsSelfOrAdmin admits the owner of the target resource or the admin.
func IsSelfOrAdmin(identity, targetUsername string) bool {
	return identity == targetUsername || IsAdmin(identity)
}

// IsProtectedAdmin reports whether a destructive operation targets the admin
// account. The admin account can never be deactivated or deleted, regardless
// of who asks; callers must check this before any role evaluation.
func IsProtectedAdmin(targetUsername string) bool {
	return targetUsername == AdminUsername
}

// RequireAdmin evaluates the admin-only gate with a reason on deny.
func RequireAdmin(identity string) error {
	if !IsAdmin(identity) {
		return &ErrForbidden{Reason: "se requieren privilegios de administrador"}
	}
	return nil
}

// RequireSelfOrAdmin evaluates the ownership gate with a reason on deny.
func RequireSelfOrAdmin(identity, targetUsername string) error {
	if !IsSelfOrAdmin(identity, targetUsername) {
		return &ErrForbidden{Reason: fmt.Sprintf("no autorizado para operar sobre %q", targetUsername)}
	}
	return nil
}
