package identity

import (
	"errors"

	"github.com/google/uuid"
)

var ErrUnknownRole = errors.New("unknown role")

type Role string

const (
	RoleClient     Role = "client"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleAdmin, RoleSuperAdmin:
		return Role(s), nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) String() string {
	return string(r)
}

var roleHierarchy = map[Role]int{
	RoleClient:     1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

func (r Role) AtLeast(min Role) bool {
	level, ok := roleHierarchy[r]
	minLevel, minOK := roleHierarchy[min]
	return ok && minOK && level >= minLevel
}

// Principal is the immutable claims snapshot resolved once per request by
// the identity collaborator. The engine never mutates it.
type Principal struct {
	UserID   uuid.UUID
	Role     Role
	BranchID *uuid.UUID
}

func (p *Principal) IsAdmin() bool {
	return p.Role.AtLeast(RoleAdmin)
}
