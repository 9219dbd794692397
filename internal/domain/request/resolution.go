package request

import (
	"fmt"
	"strings"
	"time"
)

// Resolution is an immutable routing decision.
type Resolution struct {
	id                 uint
	requestID          uint
	authorID           uint
	text               string
	targetDepartmentID *uint
	targetEmployeeID   *uint
	dueDate            *time.Time
	createdAt          time.Time
}

// ResolutionInput is what an author submits. EmployeeDepartmentID is the
// home department of TargetEmployeeID, used when no department is given.
type ResolutionInput struct {
	Text                 string
	TargetDepartmentID   *uint
	TargetEmployeeID     *uint
	EmployeeDepartmentID *uint
	DueDate              *time.Time
}

// HasTarget reports whether the resolution routes the request to someone.
func (in ResolutionInput) HasTarget() bool {
	return in.TargetDepartmentID != nil || in.TargetEmployeeID != nil
}

// department returns the explicit department or the one inferred from
// the target employee.
func (in ResolutionInput) department() *uint {
	if in.TargetDepartmentID != nil {
		return in.TargetDepartmentID
	}
	if in.TargetEmployeeID != nil {
		return in.EmployeeDepartmentID
	}
	return nil
}

func (in ResolutionInput) validate() error {
	if strings.TrimSpace(in.Text) == "" {
		return fmt.Errorf("resolution text is required")
	}
	return nil
}

func ReconstructResolution(
	id, requestID, authorID uint,
	text string,
	targetDepartmentID, targetEmployeeID *uint,
	dueDate *time.Time,
	createdAt time.Time,
) *Resolution {
	return &Resolution{
		id:                 id,
		requestID:          requestID,
		authorID:           authorID,
		text:               text,
		targetDepartmentID: targetDepartmentID,
		targetEmployeeID:   targetEmployeeID,
		dueDate:            dueDate,
		createdAt:          createdAt,
	}
}

func (r *Resolution) ID() uint                  { return r.id }
func (r *Resolution) RequestID() uint           { return r.requestID }
func (r *Resolution) AuthorID() uint            { return r.authorID }
func (r *Resolution) Text() string              { return r.text }
func (r *Resolution) TargetDepartmentID() *uint { return r.targetDepartmentID }
func (r *Resolution) TargetEmployeeID() *uint   { return r.targetEmployeeID }
func (r *Resolution) DueDate() *time.Time       { return r.dueDate }
func (r *Resolution) CreatedAt() time.Time      { return r.createdAt }
func (r *Resolution) SetID(id uint)             { r.id = id }
