package agency

// Role is the single workflow role an actor acts under.
type Role string

const (
	RoleChancellery      Role = "chancellery"
	RoleDirectors        Role = "directors"
	RoleDeputyAssistant  Role = "deputy_assistant"
	RoleHeadOfDepartment Role = "head_of_department"
	RoleExecutor         Role = "executor"
	RoleNone             Role = "none"
)

// rolePrecedence decides which role wins when an employee holds several.
var rolePrecedence = []Role{
	RoleChancellery,
	RoleDirectors,
	RoleDeputyAssistant,
	RoleHeadOfDepartment,
	RoleExecutor,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	if r == RoleNone {
		return true
	}
	for _, known := range rolePrecedence {
		if r == known {
			return true
		}
	}
	return false
}

// SeesEverything reports whether the role is scoped to the whole registry.
func (r Role) SeesEverything() bool {
	return r == RoleChancellery || r == RoleDirectors
}

// ResolveRole picks the highest-precedence role among memberships.
// Unknown names are ignored; no match yields RoleNone.
func ResolveRole(memberships []string) Role {
	held := make(map[Role]bool, len(memberships))
	for _, m := range memberships {
		held[Role(m)] = true
	}
	for _, r := range rolePrecedence {
		if held[r] {
			return r
		}
	}
	return RoleNone
}

// CanWrite reports whether the role may perform any lifecycle action.
func (r Role) CanWrite() bool {
	switch r {
	case RoleChancellery, RoleDeputyAssistant, RoleExecutor:
		return true
	}
	return false
}
