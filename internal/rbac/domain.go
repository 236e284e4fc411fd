// Package rbac maps ranch roles onto capability sets and gates HTTP
// routes on them.
package rbac

// Role is a high-level grouping of capabilities assigned to a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleForeman Role = "foreman"
	RoleHand    Role = "hand"
	RoleGuest   Role = "guest"
)

// Capabilities granted per role. Authorization decisions compare against
// these sets, never against role names at call sites.
var roleCapabilities = map[Role][]string{
	RoleAdmin: {
		"orders.view", "orders.edit", "orders.delete",
		"quotes.view", "quotes.edit", "quotes.convert", "quotes.delete",
		"catalog.view", "catalog.edit",
		"fund.view", "fund.manage", "fund.adjust",
		"map.view", "map.place", "map.admin",
		"todos.view", "todos.edit",
		"posters.view", "posters.upload", "posters.admin",
		"recipes.view", "recipes.edit",
		"logs.view", "logs.edit",
		"activity.view",
		"users.view", "users.admin",
	},
	RoleForeman: {
		"orders.view", "orders.edit", "orders.delete",
		"quotes.view", "quotes.edit", "quotes.convert",
		"catalog.view", "catalog.edit",
		"fund.view", "fund.manage",
		"map.view", "map.place",
		"todos.view", "todos.edit",
		"posters.view", "posters.upload",
		"recipes.view", "recipes.edit",
		"logs.view", "logs.edit",
		"activity.view",
		"users.view",
	},
	RoleHand: {
		"orders.view", "orders.edit",
		"quotes.view", "quotes.edit",
		"catalog.view",
		"fund.view",
		"map.view", "map.place",
		"todos.view", "todos.edit",
		"posters.view",
		"recipes.view",
		"logs.view", "logs.edit",
		"activity.view",
		"users.view",
	},
	RoleGuest: {
		"orders.view",
		"quotes.view",
		"catalog.view",
		"map.view",
		"recipes.view",
		"posters.view",
	},
}

// HasCapability reports whether the role grants the capability. Used by
// services for ownership-or-admin checks that cannot live in route
// middleware.
func HasCapability(role Role, capability string) bool {
	for _, c := range CapabilitiesFor(role) {
		if c == capability {
			return true
		}
	}
	return false
}

// CapabilitiesFor returns the capability set for a role. Unknown roles
// receive the guest set.
func CapabilitiesFor(role Role) []string {
	caps, ok := roleCapabilities[role]
	if !ok {
		caps = roleCapabilities[RoleGuest]
	}
	out := make([]string, len(caps))
	copy(out, caps)
	return out
}
