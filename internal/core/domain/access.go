package domain

// Caller is the authenticated identity on whose behalf an operation runs.
type Caller struct {
	UserID string
	Role   Role
}

func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }

// Policy decides whether a caller may proceed.
type Policy func(Caller) bool

// RequireRole admits callers holding role.
func RequireRole(role Role) Policy {
	return func(c Caller) bool { return c.Role == role }
}

// OwnerOf admits the caller whose id is userID.
func OwnerOf(userID string) Policy {
	return func(c Caller) bool { return c.UserID != "" && c.UserID == userID }
}

// AnyOf admits a caller accepted by at least one policy.
func AnyOf(policies ...Policy) Policy {
	return func(c Caller) bool {
		for _, p := range policies {
			if p(c) {
				return true
			}
		}
		return false
	}
}

// OwnerOrAdmin is the read rule shared by every user-owned entity.
func OwnerOrAdmin(userID string) Policy {
	return AnyOf(OwnerOf(userID), RequireRole(RoleAdmin))
}

// Authorize returns ErrForbidden unless p admits the caller.
func (c Caller) Authorize(p Policy) error {
	if !p(c) {
		return ErrForbidden
	}
	return nil
}
