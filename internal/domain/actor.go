package domain

type ActorRole string

const (
	RoleSystem ActorRole = "system"
	RoleAdmin  ActorRole = "admin"
	RoleBuyer  ActorRole = "buyer"
	RoleSeller ActorRole = "seller"
)

// Actor identifies who requested a mutation. Every applied transition is
// audit-logged with the acting identity.
type Actor struct {
	ID   string
	Role ActorRole
}

var SystemActor = Actor{ID: "system", Role: RoleSystem}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsSystem() bool {
	return a.Role == RoleSystem
}
