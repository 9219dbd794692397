package request

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
)

const maxDescriptionLength = 10000

// Request is a case filed by a company and routed through the agency.
type Request struct {
	id                   uint
	publicID             string
	publicYear           int
	publicSeq            int64
	status               vo.RequestStatus
	companyID            uint
	companyEmployeeID    *uint
	directionIDs         []uint
	assignedDepartmentID *uint
	assignedEmployeeID   *uint
	deputyAssistantID    *uint
	description          string
	dueDate              *time.Time
	resolvedAt           *time.Time
	createdAt            time.Time
	updatedAt            time.Time
}

// NewRequest builds an unsaved request in status new. The public id is
// assigned separately, inside the creating transaction.
func NewRequest(companyID uint, companyEmployeeID *uint, description string, directionIDs []uint, now time.Time) (*Request, error) {
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if len([]rune(description)) > maxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}

	return &Request{
		status:            vo.StatusNew,
		companyID:         companyID,
		companyEmployeeID: companyEmployeeID,
		directionIDs:      dedupeIDs(directionIDs),
		description:       description,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

func ReconstructRequest(
	id uint,
	publicID string,
	publicYear int,
	publicSeq int64,
	status vo.RequestStatus,
	companyID uint,
	companyEmployeeID *uint,
	directionIDs []uint,
	assignedDepartmentID, assignedEmployeeID, deputyAssistantID *uint,
	description string,
	dueDate, resolvedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Request, error) {
	if id == 0 {
		return nil, fmt.Errorf("request ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if directionIDs == nil {
		directionIDs = []uint{}
	}

	return &Request{
		id:                   id,
		publicID:             publicID,
		publicYear:           publicYear,
		publicSeq:            publicSeq,
		status:               status,
		companyID:            companyID,
		companyEmployeeID:    companyEmployeeID,
		directionIDs:         directionIDs,
		assignedDepartmentID: assignedDepartmentID,
		assignedEmployeeID:   assignedEmployeeID,
		deputyAssistantID:    deputyAssistantID,
		description:          description,
		dueDate:              dueDate,
		resolvedAt:           resolvedAt,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}, nil
}

func (r *Request) ID() uint                    { return r.id }
func (r *Request) PublicID() string            { return r.publicID }
func (r *Request) PublicYear() int             { return r.publicYear }
func (r *Request) PublicSeq() int64            { return r.publicSeq }
func (r *Request) Status() vo.RequestStatus    { return r.status }
func (r *Request) CompanyID() uint             { return r.companyID }
func (r *Request) CompanyEmployeeID() *uint    { return r.companyEmployeeID }
func (r *Request) AssignedDepartmentID() *uint { return r.assignedDepartmentID }
func (r *Request) AssignedEmployeeID() *uint   { return r.assignedEmployeeID }
func (r *Request) DeputyAssistantID() *uint    { return r.deputyAssistantID }
func (r *Request) Description() string         { return r.description }
func (r *Request) DueDate() *time.Time         { return r.dueDate }
func (r *Request) ResolvedAt() *time.Time      { return r.resolvedAt }
func (r *Request) CreatedAt() time.Time        { return r.createdAt }
func (r *Request) UpdatedAt() time.Time        { return r.updatedAt }
func (r *Request) HasPublicID() bool           { return r.publicID != "" }
func (r *Request) IsDone() bool                { return r.status.IsDone() }
func (r *Request) IsTerminal() bool            { return r.status.IsTerminal() }

func (r *Request) DirectionIDs() []uint {
	out := make([]uint, len(r.directionIDs))
	copy(out, r.directionIDs)
	return out
}

func (r *Request) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("request ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("request ID cannot be zero")
	}
	r.id = id
	return nil
}

// AssignPublicID sets the tracking number. It fails if one is already set.
func (r *Request) AssignPublicID(year int, seq int64) error {
	if r.publicID != "" {
		return fmt.Errorf("public ID is already set to %s", r.publicID)
	}
	if year <= 0 || seq <= 0 {
		return fmt.Errorf("invalid public ID components %d/%d", year, seq)
	}
	r.publicID = FormatPublicID(year, seq)
	r.publicYear = year
	r.publicSeq = seq
	return nil
}

// IsOverdue compares dates only. today is the business-day calendar date;
// its time of day is ignored.
func (r *Request) IsOverdue(today time.Time) bool {
	if r.dueDate == nil || r.status.IsDone() {
		return false
	}
	return calendarDate(*r.dueDate).Before(calendarDate(today))
}

// setStatus moves the request and keeps resolved_at coupled to done.
func (r *Request) setStatus(next vo.RequestStatus, now time.Time) {
	r.status = next
	if next.IsDone() {
		if r.resolvedAt == nil {
			t := now
			r.resolvedAt = &t
		}
	} else {
		r.resolvedAt = nil
	}
	r.updatedAt = now
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
