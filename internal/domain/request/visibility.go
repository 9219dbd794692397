package request

import (
	"github.com/adli-inc/adli/internal/domain/agency"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
)

// OwnerField names the request column an actor's visibility is keyed on.
type OwnerField string

const (
	OwnerNone            OwnerField = ""
	OwnerDeputyAssistant OwnerField = "deputy_assistant_id"
	OwnerDepartment      OwnerField = "assigned_department_id"
	OwnerEmployee        OwnerField = "assigned_employee_id"
)

// Scope is the set of requests an actor sees in one bucket: an ownership
// predicate plus an optional status set. It is consumed both by the SQL
// query builder and by Matches.
type Scope struct {
	// Empty short-circuits to no rows.
	Empty bool
	// Owner is OwnerNone for actors who see the whole registry.
	Owner   OwnerField
	OwnerID uint
	// Statuses is nil when the bucket does not filter by status.
	Statuses []vo.RequestStatus
}

var bucketStatuses = map[agency.Role]map[vo.Bucket][]vo.RequestStatus{
	agency.RoleChancellery: {
		vo.BucketInbox:  {vo.StatusNew},
		vo.BucketActive: {vo.StatusRegistered, vo.StatusSentForResolution, vo.StatusAssigned, vo.StatusInProgress},
	},
	agency.RoleDirectors: {
		vo.BucketInbox:  {vo.StatusNew},
		vo.BucketActive: {vo.StatusRegistered, vo.StatusSentForResolution, vo.StatusAssigned, vo.StatusInProgress},
	},
	agency.RoleDeputyAssistant: {
		vo.BucketInbox:  {vo.StatusSentForResolution},
		vo.BucketActive: {vo.StatusAssigned, vo.StatusInProgress},
	},
	agency.RoleHeadOfDepartment: {
		vo.BucketInbox:  {vo.StatusAssigned},
		vo.BucketActive: {vo.StatusInProgress},
	},
	agency.RoleExecutor: {
		vo.BucketInbox:  {vo.StatusAssigned},
		vo.BucketActive: {vo.StatusInProgress},
	},
}

// VisibleTo is the unbucketed visibility of an actor.
func VisibleTo(actor agency.Actor) Scope {
	switch {
	case actor.Role.SeesEverything():
		return Scope{}
	case !actor.HasEmployee():
		return Scope{Empty: true}
	}

	switch actor.Role {
	case agency.RoleDeputyAssistant:
		return Scope{Owner: OwnerDeputyAssistant, OwnerID: actor.EmployeeID}
	case agency.RoleHeadOfDepartment:
		if actor.DepartmentID == 0 {
			return Scope{Empty: true}
		}
		return Scope{Owner: OwnerDepartment, OwnerID: actor.DepartmentID}
	case agency.RoleExecutor:
		return Scope{Owner: OwnerEmployee, OwnerID: actor.EmployeeID}
	}
	return Scope{Empty: true}
}

// ScopeFor narrows the actor's visibility to one bucket.
func ScopeFor(actor agency.Actor, bucket vo.Bucket) Scope {
	s := VisibleTo(actor)
	if s.Empty {
		return s
	}
	switch bucket {
	case vo.BucketAll:
		return s
	case vo.BucketDone:
		s.Statuses = []vo.RequestStatus{vo.StatusDone}
		return s
	}
	statuses, ok := bucketStatuses[actor.Role][bucket]
	if !ok {
		return Scope{Empty: true}
	}
	s.Statuses = statuses
	return s
}

// Matches evaluates the scope against a loaded request.
func (s Scope) Matches(r *Request) bool {
	if s.Empty || r == nil {
		return false
	}
	if s.Statuses != nil && !r.status.In(s.Statuses...) {
		return false
	}
	switch s.Owner {
	case OwnerNone:
		return true
	case OwnerDeputyAssistant:
		return equalsID(r.deputyAssistantID, s.OwnerID)
	case OwnerDepartment:
		return equalsID(r.assignedDepartmentID, s.OwnerID)
	case OwnerEmployee:
		return equalsID(r.assignedEmployeeID, s.OwnerID)
	}
	return false
}

// CountBuckets lists the buckets reported by the counters endpoint.
var CountBuckets = []vo.Bucket{vo.BucketInbox, vo.BucketActive, vo.BucketDone, vo.BucketAll}

func equalsID(p *uint, id uint) bool {
	return p != nil && *p == id
}
