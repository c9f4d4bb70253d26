package utils

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Identity is the authenticated caller as resolved from the access token.
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
