package valueobjects

import "fmt"

type RequestStatus string

const (
	StatusNew               RequestStatus = "new"
	StatusRegistered        RequestStatus = "registered"
	StatusSentForResolution RequestStatus = "sent_for_resolution"
	StatusAssigned          RequestStatus = "assigned"
	StatusInProgress        RequestStatus = "in_progress"
	StatusDone              RequestStatus = "done"
	StatusCancelled         RequestStatus = "cancelled"
)

var validRequestStatuses = map[RequestStatus]bool{
	StatusNew:               true,
	StatusRegistered:        true,
	StatusSentForResolution: true,
	StatusAssigned:          true,
	StatusInProgress:        true,
	StatusDone:              true,
	StatusCancelled:         true,
}

// AllStatuses lists statuses in workflow order.
var AllStatuses = []RequestStatus{
	StatusNew,
	StatusRegistered,
	StatusSentForResolution,
	StatusAssigned,
	StatusInProgress,
	StatusDone,
	StatusCancelled,
}

func (s RequestStatus) String() string {
	return string(s)
}

func (s RequestStatus) IsValid() bool {
	return validRequestStatuses[s]
}

// IsTerminal reports whether no lifecycle operation may move the request on.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusCancelled
}

func (s RequestStatus) IsDone() bool {
	return s == StatusDone
}

func (s RequestStatus) IsNew() bool {
	return s == StatusNew
}

// In reports whether s is one of set.
func (s RequestStatus) In(set ...RequestStatus) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}

func NewRequestStatus(s string) (RequestStatus, error) {
	rs := RequestStatus(s)
	if !rs.IsValid() {
		return "", fmt.Errorf("invalid request status: %s", s)
	}
	return rs, nil
}
