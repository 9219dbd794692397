package agency

// ResourceRequest is the casbin object guarding every request operation.
const ResourceRequest = "request"

// Action names checked against the role policy.
const (
	PermRead              = "read"
	PermRegister          = "register"
	PermSendForResolution = "send_for_resolution"
	PermResolve           = "resolve"
	PermAddStep           = "add_step"
	PermMarkDone          = "mark_done"
)

// PermissionEnforcer answers whether a role may perform an action on a resource.
type PermissionEnforcer interface {
	Enforce(role, resource, action string) (bool, error)
}
