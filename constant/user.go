package constant

type contextKey string

// Keys for values the auth middleware stores in the request context.
const (
	UserIDKey  contextKey = "user_id"
	IsAdminKey contextKey = "is_admin"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)
