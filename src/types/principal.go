package types

import "github.com/golang-jwt/jwt/v4"

// Principal is the resolved identity of the caller for one request. It is
// passed explicitly into every service call; nothing reads it from ambient
// state.
type Principal struct {
	UserID         uint
	Role           UserRole
	OrganizationID uint
}

func (p Principal) IsAdmin() bool {
	return p.Role == ROLE_ADMIN
}

func (p Principal) IsOrganization() bool {
	return p.Role == ROLE_ORGANIZATION
}

type Claims struct {
	Email        string   `json:"email"`
	Role         UserRole `json:"role"`
	Organization uint     `json:"org"`
	jwt.RegisteredClaims
}
