package user

// Role is the coarse authorization level attached to a verified session.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Principal is the verified identity upstream auth middleware resolves from
// a session token. A nil *Principal means the request is anonymous.
type Principal struct {
	UserID      string
	DisplayName string
	Role        Role
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
