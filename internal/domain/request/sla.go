package request

import (
	"math"
	"time"
)

// SLAKind classifies a request's position relative to its due date.
type SLAKind string

const (
	SLADone       SLAKind = "done"
	SLAOverdue    SLAKind = "overdue"
	SLADueToday   SLAKind = "due_today"
	SLADaysLeft   SLAKind = "days_left"
	SLANoDeadline SLAKind = "no_deadline"
)

// SLATone is the severity a worklist renders the label with.
type SLATone string

const (
	ToneOK   SLATone = "ok"
	ToneWarn SLATone = "warn"
	ToneBad  SLATone = "bad"
	ToneInfo SLATone = "info"
)

// soonThresholdDays is the horizon within which a deadline turns to warn.
const soonThresholdDays = 3

// SLA is the deadline summary for one request. Days is the signed distance
// from today to the due date; for overdue requests it is negative.
type SLA struct {
	Kind SLAKind
	Tone SLATone
	Days int
}

// EvaluateSLA compares the due date with today. Both are calendar dates in
// the business time zone; any time of day on today is ignored.
func EvaluateSLA(r *Request, today time.Time) SLA {
	if r.status.IsDone() {
		return SLA{Kind: SLADone, Tone: ToneOK}
	}
	if r.dueDate == nil {
		return SLA{Kind: SLANoDeadline, Tone: ToneInfo}
	}

	days := daysBetween(calendarDate(today), calendarDate(*r.dueDate))
	switch {
	case days < 0:
		return SLA{Kind: SLAOverdue, Tone: ToneBad, Days: days}
	case days == 0:
		return SLA{Kind: SLADueToday, Tone: ToneWarn}
	case days <= soonThresholdDays:
		return SLA{Kind: SLADaysLeft, Tone: ToneWarn, Days: days}
	}
	return SLA{Kind: SLADaysLeft, Tone: ToneOK, Days: days}
}

// calendarDate drops the time of day, keeping the date as written.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
