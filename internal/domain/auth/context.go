package auth

// UserContext is the authenticated caller as carried on the request context.
type UserContext struct {
	UserID   string
	TenantID string
	RoleID   string
	RoleName string
}
