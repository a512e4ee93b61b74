package identity

// CanAccess decides role-based access for a request. Safe (read-only) methods
// are open to any authenticated role; writes require admin.
func CanAccess(role Role, safeMethod bool) bool {
	if !ValidRole(role) {
		return false
	}
	if safeMethod {
		return true
	}
	return role == RoleAdmin
}

// CanAccessObject extends CanAccess with an owner escape hatch: the recorded
// owner of a resource may write to it even without the admin role. Resources
// without an owner pass ownerID == "".
func CanAccessObject(role Role, safeMethod bool, userID, ownerID string) bool {
	if CanAccess(role, safeMethod) {
		return true
	}
	if !ValidRole(role) {
		return false
	}
	return ownerID != "" && userID == ownerID
}

// IsSafeMethod reports whether the HTTP method is read-only
func IsSafeMethod(method string) bool {
	switch method {
	case "GET", "HEAD", "OPTIONS":
		return true
	}
	return false
}
