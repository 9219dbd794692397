package request

import (
	"time"

	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
)

// HistoryEntry is one immutable row of a request's audit trail.
type HistoryEntry struct {
	id         uint
	requestID  uint
	actorID    *uint
	action     vo.HistoryAction
	fromStatus string
	toStatus   string
	comment    string
	metadata   map[string]any
	createdAt  time.Time
}

func newHistoryEntry(requestID uint, actorID *uint, action vo.HistoryAction, from, to vo.RequestStatus, comment string, metadata map[string]any, at time.Time) *HistoryEntry {
	return &HistoryEntry{
		requestID:  requestID,
		actorID:    actorID,
		action:     action,
		fromStatus: string(from),
		toStatus:   string(to),
		comment:    comment,
		metadata:   metadata,
		createdAt:  at,
	}
}

func ReconstructHistoryEntry(
	id, requestID uint,
	actorID *uint,
	action vo.HistoryAction,
	fromStatus, toStatus, comment string,
	metadata map[string]any,
	createdAt time.Time,
) *HistoryEntry {
	return &HistoryEntry{
		id:         id,
		requestID:  requestID,
		actorID:    actorID,
		action:     action,
		fromStatus: fromStatus,
		toStatus:   toStatus,
		comment:    comment,
		metadata:   metadata,
		createdAt:  createdAt,
	}
}

func (h *HistoryEntry) ID() uint                 { return h.id }
func (h *HistoryEntry) RequestID() uint          { return h.requestID }
func (h *HistoryEntry) ActorID() *uint           { return h.actorID }
func (h *HistoryEntry) Action() vo.HistoryAction { return h.action }
func (h *HistoryEntry) FromStatus() string       { return h.fromStatus }
func (h *HistoryEntry) ToStatus() string         { return h.toStatus }
func (h *HistoryEntry) Comment() string          { return h.comment }
func (h *HistoryEntry) CreatedAt() time.Time     { return h.createdAt }

func (h *HistoryEntry) Metadata() map[string]any {
	out := make(map[string]any, len(h.metadata))
	for k, v := range h.metadata {
		out[k] = v
	}
	return out
}

// SetID is called by the repository after insert.
func (h *HistoryEntry) SetID(id uint) {
	h.id = id
}

// SetRequestID binds entries built before the request had an ID.
func (h *HistoryEntry) SetRequestID(id uint) {
	if h.requestID == 0 {
		h.requestID = id
	}
}
