package dto

import (
	"time"

	"golang.org/x/text/language"

	"github.com/adli-inc/adli/internal/domain/request"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/shared/biztime"
	"github.com/adli-inc/adli/internal/shared/i18n"
)

// listDescriptionLimit bounds the description excerpt in worklists.
const listDescriptionLimit = 200

type SLADTO struct {
	Kind  string `json:"kind"`
	Tone  string `json:"tone"`
	Days  int    `json:"days"`
	Label string `json:"label"`
}

type RequestListItemDTO struct {
	ID                   uint      `json:"id"`
	PublicID             string    `json:"public_id"`
	Status               string    `json:"status"`
	StatusLabel          string    `json:"status_label"`
	CompanyID            uint      `json:"company_id"`
	CompanyName          string    `json:"company_name"`
	Description          string    `json:"description"`
	AssignedDepartmentID *uint     `json:"assigned_department_id"`
	AssignedEmployeeID   *uint     `json:"assigned_employee_id"`
	DueDate              *string   `json:"due_date"`
	IsOverdue            bool      `json:"is_overdue"`
	SLA                  SLADTO    `json:"sla"`
	CreatedAt            time.Time `json:"created_at"`
}

type RequestDTO struct {
	ID                   uint              `json:"id"`
	PublicID             string            `json:"public_id"`
	Status               string            `json:"status"`
	StatusLabel          string            `json:"status_label"`
	CompanyID            uint              `json:"company_id"`
	CompanyName          string            `json:"company_name"`
	CompanyEmployeeID    *uint             `json:"company_employee_id"`
	DirectionIDs         []uint            `json:"direction_ids"`
	AssignedDepartmentID *uint             `json:"assigned_department_id"`
	AssignedEmployeeID   *uint             `json:"assigned_employee_id"`
	DeputyAssistantID    *uint             `json:"deputy_assistant_id"`
	Description          string            `json:"description"`
	DueDate              *string           `json:"due_date"`
	ResolvedAt           *time.Time        `json:"resolved_at"`
	IsOverdue            bool              `json:"is_overdue"`
	SLA                  SLADTO            `json:"sla"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
	Resolutions          []ResolutionDTO   `json:"resolutions"`
	Steps                []StepDTO         `json:"steps"`
	Files                []FileDTO         `json:"files"`
	History              []HistoryEntryDTO `json:"history"`
}

type ResolutionDTO struct {
	ID                 uint      `json:"id"`
	AuthorID           uint      `json:"author_id"`
	Text               string    `json:"text"`
	TextHTML           string    `json:"text_html"`
	TargetDepartmentID *uint     `json:"target_department_id"`
	TargetEmployeeID   *uint     `json:"target_employee_id"`
	DueDate            *string   `json:"due_date"`
	CreatedAt          time.Time `json:"created_at"`
}

type StepDTO struct {
	ID        uint      `json:"id"`
	AuthorID  uint      `json:"author_id"`
	Text      string    `json:"text"`
	TextHTML  string    `json:"text_html"`
	CreatedAt time.Time `json:"created_at"`
}

type FileDTO struct {
	ID           uint      `json:"id"`
	Kind         string    `json:"kind"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	StorageKey   string    `json:"storage_key"`
	CreatedAt    time.Time `json:"created_at"`
}

type HistoryEntryDTO struct {
	ID          uint           `json:"id"`
	ActorID     *uint          `json:"actor_id"`
	Action      string         `json:"action"`
	ActionLabel string         `json:"action_label"`
	FromStatus  string         `json:"from_status,omitempty"`
	ToStatus    string         `json:"to_status,omitempty"`
	Comment     string         `json:"comment,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// PublicHistoryEntryDTO is what a company sees: no actors, comments or
// assignment targets.
type PublicHistoryEntryDTO struct {
	Action      string    `json:"action"`
	ActionLabel string    `json:"action_label"`
	Status      string    `json:"status,omitempty"`
	StatusLabel string    `json:"status_label,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type TrackDTO struct {
	PublicID    string                  `json:"public_id"`
	Status      string                  `json:"status"`
	StatusLabel string                  `json:"status_label"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
	ResolvedAt  *time.Time              `json:"resolved_at"`
	History     []PublicHistoryEntryDTO `json:"history"`
}

type CreatedRequestDTO struct {
	ID        uint      `json:"id"`
	PublicID  string    `json:"public_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type TransitionResultDTO struct {
	RequestID  uint   `json:"request_id"`
	PublicID   string `json:"public_id"`
	Operation  string `json:"operation"`
	Applied    bool   `json:"applied"`
	Warning    string `json:"warning,omitempty"`
	FromStatus string `json:"from_status"`
	Status     string `json:"status"`
}

type BucketCountsDTO struct {
	Inbox  int64 `json:"inbox"`
	Active int64 `json:"active"`
	Done   int64 `json:"done"`
	All    int64 `json:"all"`
}

func StatusLabel(tag language.Tag, s vo.RequestStatus) string {
	return i18n.T(tag, "status."+s.String())
}

func ActionLabel(tag language.Tag, a vo.HistoryAction) string {
	return i18n.T(tag, "action."+a.String())
}

func ToSLADTO(tag language.Tag, sla request.SLA) SLADTO {
	out := SLADTO{Kind: string(sla.Kind), Tone: string(sla.Tone), Days: sla.Days}
	switch sla.Kind {
	case request.SLAOverdue:
		out.Label = i18n.T(tag, "sla.overdue", -sla.Days)
	case request.SLADaysLeft:
		out.Label = i18n.T(tag, "sla.days_left", sla.Days)
	default:
		out.Label = i18n.T(tag, "sla."+string(sla.Kind))
	}
	return out
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := biztime.FormatDate(*t)
	return &s
}

func excerpt(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

func ToRequestListItemDTO(tag language.Tag, r *request.Request, companyName string, today time.Time) RequestListItemDTO {
	return RequestListItemDTO{
		ID:                   r.ID(),
		PublicID:             r.PublicID(),
		Status:               r.Status().String(),
		StatusLabel:          StatusLabel(tag, r.Status()),
		CompanyID:            r.CompanyID(),
		CompanyName:          companyName,
		Description:          excerpt(r.Description(), listDescriptionLimit),
		AssignedDepartmentID: r.AssignedDepartmentID(),
		AssignedEmployeeID:   r.AssignedEmployeeID(),
		DueDate:              formatDate(r.DueDate()),
		IsOverdue:            r.IsOverdue(today),
		SLA:                  ToSLADTO(tag, request.EvaluateSLA(r, today)),
		CreatedAt:            r.CreatedAt(),
	}
}

func ToRequestDTO(tag language.Tag, r *request.Request, companyName string, today time.Time) *RequestDTO {
	return &RequestDTO{
		ID:                   r.ID(),
		PublicID:             r.PublicID(),
		Status:               r.Status().String(),
		StatusLabel:          StatusLabel(tag, r.Status()),
		CompanyID:            r.CompanyID(),
		CompanyName:          companyName,
		CompanyEmployeeID:    r.CompanyEmployeeID(),
		DirectionIDs:         r.DirectionIDs(),
		AssignedDepartmentID: r.AssignedDepartmentID(),
		AssignedEmployeeID:   r.AssignedEmployeeID(),
		DeputyAssistantID:    r.DeputyAssistantID(),
		Description:          r.Description(),
		DueDate:              formatDate(r.DueDate()),
		ResolvedAt:           r.ResolvedAt(),
		IsOverdue:            r.IsOverdue(today),
		SLA:                  ToSLADTO(tag, request.EvaluateSLA(r, today)),
		CreatedAt:            r.CreatedAt(),
		UpdatedAt:            r.UpdatedAt(),
		Resolutions:          []ResolutionDTO{},
		Steps:                []StepDTO{},
		Files:                []FileDTO{},
		History:              []HistoryEntryDTO{},
	}
}

func ToResolutionDTO(res *request.Resolution, html string) ResolutionDTO {
	return ResolutionDTO{
		ID:                 res.ID(),
		AuthorID:           res.AuthorID(),
		Text:               res.Text(),
		TextHTML:           html,
		TargetDepartmentID: res.TargetDepartmentID(),
		TargetEmployeeID:   res.TargetEmployeeID(),
		DueDate:            formatDate(res.DueDate()),
		CreatedAt:          res.CreatedAt(),
	}
}

func ToStepDTO(s *request.Step, html string) StepDTO {
	return StepDTO{
		ID:        s.ID(),
		AuthorID:  s.AuthorID(),
		Text:      s.Text(),
		TextHTML:  html,
		CreatedAt: s.CreatedAt(),
	}
}

func ToFileDTO(f *request.File) FileDTO {
	return FileDTO{
		ID:           f.ID(),
		Kind:         string(f.Kind()),
		OriginalName: f.OriginalName(),
		Size:         f.Size(),
		StorageKey:   f.StorageKey(),
		CreatedAt:    f.CreatedAt(),
	}
}

func ToHistoryEntryDTO(tag language.Tag, h *request.HistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		ID:          h.ID(),
		ActorID:     h.ActorID(),
		Action:      h.Action().String(),
		ActionLabel: ActionLabel(tag, h.Action()),
		FromStatus:  h.FromStatus(),
		ToStatus:    h.ToStatus(),
		Comment:     h.Comment(),
		Metadata:    h.Metadata(),
		CreatedAt:   h.CreatedAt(),
	}
}

func ToPublicHistoryEntryDTO(tag language.Tag, h *request.HistoryEntry) PublicHistoryEntryDTO {
	out := PublicHistoryEntryDTO{
		Action:      h.Action().String(),
		ActionLabel: ActionLabel(tag, h.Action()),
		CreatedAt:   h.CreatedAt(),
	}
	if to := h.ToStatus(); to != "" {
		out.Status = to
		out.StatusLabel = StatusLabel(tag, vo.RequestStatus(to))
	}
	return out
}

func ToTrackDTO(tag language.Tag, r *request.Request, history []*request.HistoryEntry) *TrackDTO {
	entries := make([]PublicHistoryEntryDTO, 0, len(history))
	for _, h := range history {
		entries = append(entries, ToPublicHistoryEntryDTO(tag, h))
	}
	return &TrackDTO{
		PublicID:    r.PublicID(),
		Status:      r.Status().String(),
		StatusLabel: StatusLabel(tag, r.Status()),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
		ResolvedAt:  r.ResolvedAt(),
		History:     entries,
	}
}

func ToTransitionResultDTO(r *request.Request, o request.Outcome) *TransitionResultDTO {
	return &TransitionResultDTO{
		RequestID:  r.ID(),
		PublicID:   r.PublicID(),
		Operation:  o.Operation.String(),
		Applied:    o.Applied,
		Warning:    o.Warning,
		FromStatus: o.From.String(),
		Status:     o.To.String(),
	}
}

func ToBucketCountsDTO(counts map[vo.Bucket]int64) BucketCountsDTO {
	return BucketCountsDTO{
		Inbox:  counts[vo.BucketInbox],
		Active: counts[vo.BucketActive],
		Done:   counts[vo.BucketDone],
		All:    counts[vo.BucketAll],
	}
}
