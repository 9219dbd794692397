package request

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
)

// Operation names a lifecycle transition.
type Operation string

const (
	OpRegister          Operation = "register"
	OpSendForResolution Operation = "send_for_resolution"
	OpCreateResolution  Operation = "create_resolution"
	OpAddStep           Operation = "add_step"
	OpMarkDone          Operation = "mark_done"
)

func (op Operation) String() string {
	return string(op)
}

var openStatuses = []vo.RequestStatus{
	vo.StatusNew,
	vo.StatusRegistered,
	vo.StatusSentForResolution,
	vo.StatusAssigned,
	vo.StatusInProgress,
}

// openExcept lists the open statuses other than current. Repeating an
// operation on a request already in its target status is a no-op.
func openExcept(current vo.RequestStatus) []vo.RequestStatus {
	out := make([]vo.RequestStatus, 0, len(openStatuses))
	for _, s := range openStatuses {
		if s != current {
			out = append(out, s)
		}
	}
	return out
}

// transitionRule is one row of the lifecycle table.
//
// next is the status the operation moves to. advanceFrom, when set, limits
// the move to those statuses; from any other allowed status the operation
// still runs but the status is kept.
type transitionRule struct {
	allowed     []vo.RequestStatus
	next        vo.RequestStatus
	advanceFrom []vo.RequestStatus
	action      vo.HistoryAction
}

var transitions = map[Operation]transitionRule{
	OpRegister: {
		allowed: openExcept(vo.StatusRegistered),
		next:    vo.StatusRegistered,
		action:  vo.ActionRegistered,
	},
	OpSendForResolution: {
		allowed: openExcept(vo.StatusSentForResolution),
		next:    vo.StatusSentForResolution,
		action:  vo.ActionSentForResolution,
	},
	OpCreateResolution: {
		allowed: openStatuses,
		next:    vo.StatusAssigned,
		action:  vo.ActionResolved,
	},
	OpAddStep: {
		allowed: openStatuses,
		next:    vo.StatusInProgress,
		advanceFrom: []vo.RequestStatus{
			vo.StatusRegistered,
			vo.StatusSentForResolution,
			vo.StatusAssigned,
		},
		action: vo.ActionStepAdded,
	},
	OpMarkDone: {
		allowed: openStatuses,
		next:    vo.StatusDone,
		action:  vo.ActionDone,
	},
}

// Decision is the table lookup for one operation against a status.
type Decision struct {
	Allowed bool
	Next    vo.RequestStatus
	Action  vo.HistoryAction
	Warning string
}

// Decide looks up what op would do to a request currently in status.
func Decide(op Operation, status vo.RequestStatus) Decision {
	rule, ok := transitions[op]
	if !ok {
		return Decision{Next: status, Warning: fmt.Sprintf("unknown operation %q", op)}
	}
	if !status.In(rule.allowed...) {
		return Decision{Next: status, Action: rule.action, Warning: rejectionMessage(op, status)}
	}
	next := rule.next
	if len(rule.advanceFrom) > 0 && !status.In(rule.advanceFrom...) {
		next = status
	}
	return Decision{Allowed: true, Next: next, Action: rule.action}
}

func rejectionMessage(op Operation, status vo.RequestStatus) string {
	switch {
	case op == OpRegister && status == vo.StatusRegistered:
		return "request is already registered"
	case op == OpSendForResolution && status == vo.StatusSentForResolution:
		return "request is already sent for resolution"
	case status == vo.StatusDone:
		return "request is already done"
	case status == vo.StatusCancelled:
		return "request is cancelled"
	}
	return fmt.Sprintf("%s is not allowed in status %s", strings.ReplaceAll(op.String(), "_", " "), status)
}

// Outcome is the result of a lifecycle operation. When Applied is false
// nothing on the request changed and Warning says why.
type Outcome struct {
	Operation  Operation
	Applied    bool
	Warning    string
	From       vo.RequestStatus
	To         vo.RequestStatus
	History    []*HistoryEntry
	Resolution *Resolution
	Step       *Step
}

// StatusChanged reports whether the operation moved the request.
func (o Outcome) StatusChanged() bool {
	return o.Applied && o.From != o.To
}

func (r *Request) skipped(op Operation, d Decision) Outcome {
	return Outcome{Operation: op, Warning: d.Warning, From: r.status, To: r.status}
}

// Register moves a new request into the registry.
func (r *Request) Register(actorID *uint, now time.Time) Outcome {
	d := Decide(OpRegister, r.status)
	if !d.Allowed {
		return r.skipped(OpRegister, d)
	}
	from := r.status
	r.setStatus(d.Next, now)
	return Outcome{
		Operation: OpRegister,
		Applied:   true,
		From:      from,
		To:        r.status,
		History: []*HistoryEntry{
			newHistoryEntry(r.id, actorID, d.Action, from, r.status, "", nil, now),
		},
	}
}

// SendForResolution hands the request to a deputy assistant for review.
// A nil deputyID keeps the current reviewer.
func (r *Request) SendForResolution(actorID, deputyID *uint, now time.Time) Outcome {
	d := Decide(OpSendForResolution, r.status)
	if !d.Allowed {
		return r.skipped(OpSendForResolution, d)
	}
	from := r.status
	var metadata map[string]any
	if deputyID != nil {
		id := *deputyID
		r.deputyAssistantID = &id
		metadata = map[string]any{"deputy_assistant_id": id}
	}
	r.setStatus(d.Next, now)
	return Outcome{
		Operation: OpSendForResolution,
		Applied:   true,
		From:      from,
		To:        r.status,
		History: []*HistoryEntry{
			newHistoryEntry(r.id, actorID, d.Action, from, r.status, "", metadata, now),
		},
	}
}

// Resolve records a routing decision. With a target it assigns the request
// and sets its due date; without one the status is kept.
func (r *Request) Resolve(authorID uint, in ResolutionInput, now time.Time) (Outcome, error) {
	if err := in.validate(); err != nil {
		return Outcome{}, err
	}
	d := Decide(OpCreateResolution, r.status)
	if !d.Allowed {
		return r.skipped(OpCreateResolution, d), nil
	}

	department := in.department()
	res := &Resolution{
		requestID:          r.id,
		authorID:           authorID,
		text:               strings.TrimSpace(in.Text),
		targetDepartmentID: department,
		targetEmployeeID:   in.TargetEmployeeID,
		dueDate:            in.DueDate,
		createdAt:          now,
	}

	from := r.status
	actor := &authorID
	if in.HasTarget() {
		r.reassign(department, in.TargetEmployeeID)
		if in.DueDate != nil {
			due := *in.DueDate
			r.dueDate = &due
		}
		r.setStatus(d.Next, now)
	} else {
		r.updatedAt = now
	}

	history := []*HistoryEntry{
		newHistoryEntry(r.id, actor, vo.ActionResolved, from, r.status, res.text, nil, now),
	}
	if in.HasTarget() {
		history = append(history, newHistoryEntry(r.id, actor, vo.ActionAssigned, "", "", "", assignmentMetadata(department, in.TargetEmployeeID, in.DueDate), now))
	}

	return Outcome{
		Operation:  OpCreateResolution,
		Applied:    true,
		From:       from,
		To:         r.status,
		History:    history,
		Resolution: res,
	}, nil
}

// reassign applies a resolution target. An executor is kept only while the
// request stays in that executor's department; a department-only target
// naming another department clears it.
func (r *Request) reassign(department, employee *uint) {
	switch {
	case employee != nil:
		r.assignedEmployeeID = copyID(employee)
	case !sameID(r.assignedDepartmentID, department):
		r.assignedEmployeeID = nil
	}
	r.assignedDepartmentID = copyID(department)
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func sameID(a, b *uint) bool {
	return a != nil && b != nil && *a == *b
}

func assignmentMetadata(department, employee *uint, due *time.Time) map[string]any {
	m := map[string]any{}
	if department != nil {
		m["department_id"] = *department
	}
	if employee != nil {
		m["employee_id"] = *employee
	}
	if due != nil {
		m["due_date"] = due.Format("2006-01-02")
	}
	return m
}

// AddStep logs executor progress. Registered, sent-for-resolution and
// assigned requests advance to in_progress. Done and cancelled requests
// are left untouched.
func (r *Request) AddStep(authorID uint, text string, now time.Time) (Outcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Outcome{}, fmt.Errorf("step text is required")
	}
	d := Decide(OpAddStep, r.status)
	if !d.Allowed {
		return r.skipped(OpAddStep, d), nil
	}

	step := &Step{requestID: r.id, authorID: authorID, text: text, createdAt: now}
	actor := &authorID
	from := r.status
	history := []*HistoryEntry{
		newHistoryEntry(r.id, actor, d.Action, "", "", "", nil, now),
	}
	if d.Next != from {
		r.setStatus(d.Next, now)
		history = append(history, newHistoryEntry(r.id, actor, vo.ActionStatusChanged, from, r.status, "", nil, now))
	} else {
		r.updatedAt = now
	}

	return Outcome{
		Operation: OpAddStep,
		Applied:   true,
		From:      from,
		To:        r.status,
		History:   history,
		Step:      step,
	}, nil
}

// MarkDone closes the request and stamps resolved_at.
func (r *Request) MarkDone(actorID *uint, now time.Time) Outcome {
	d := Decide(OpMarkDone, r.status)
	if !d.Allowed {
		return r.skipped(OpMarkDone, d)
	}
	from := r.status
	r.setStatus(d.Next, now)
	return Outcome{
		Operation: OpMarkDone,
		Applied:   true,
		From:      from,
		To:        r.status,
		History: []*HistoryEntry{
			newHistoryEntry(r.id, actorID, d.Action, from, r.status, "", nil, now),
		},
	}
}

// CreatedEntry is the first audit row of a publicly submitted request.
func (r *Request) CreatedEntry(now time.Time) *HistoryEntry {
	return newHistoryEntry(r.id, nil, vo.ActionCreated, "", vo.StatusNew, "", nil, now)
}
