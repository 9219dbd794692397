package mappers

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/adli-inc/adli/internal/domain/request"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/infrastructure/persistence/models"
)

// RequestMapper converts the request aggregate and its child records
// between domain and persistence shapes.
type RequestMapper interface {
	ToModel(r *request.Request) *models.RequestModel
	// ToDomain converts the row; direction links are loaded separately.
	ToDomain(model *models.RequestModel, directionIDs []uint) (*request.Request, error)

	HistoryToModel(h *request.HistoryEntry) *models.RequestHistoryModel
	HistoryToDomain(model *models.RequestHistoryModel) (*request.HistoryEntry, error)

	ResolutionToModel(res *request.Resolution) *models.RequestResolutionModel
	ResolutionToDomain(model *models.RequestResolutionModel) *request.Resolution

	StepToModel(s *request.Step) *models.RequestStepModel
	StepToDomain(model *models.RequestStepModel) *request.Step

	FileToModel(f *request.File) *models.RequestFileModel
	FileToDomain(model *models.RequestFileModel) *request.File
}

type RequestMapperImpl struct{}

func NewRequestMapper() RequestMapper {
	return &RequestMapperImpl{}
}

func (m *RequestMapperImpl) ToModel(r *request.Request) *models.RequestModel {
	return &models.RequestModel{
		ID:                   r.ID(),
		PublicID:             r.PublicID(),
		PublicYear:           r.PublicYear(),
		PublicSeq:            r.PublicSeq(),
		Status:               r.Status().String(),
		CompanyID:            r.CompanyID(),
		CompanyEmployeeID:    r.CompanyEmployeeID(),
		AssignedDepartmentID: r.AssignedDepartmentID(),
		AssignedEmployeeID:   r.AssignedEmployeeID(),
		DeputyAssistantID:    r.DeputyAssistantID(),
		Description:          r.Description(),
		DueDate:              toDate(r.DueDate()),
		ResolvedAt:           r.ResolvedAt(),
		CreatedAt:            r.CreatedAt(),
		UpdatedAt:            r.UpdatedAt(),
	}
}

func (m *RequestMapperImpl) ToDomain(model *models.RequestModel, directionIDs []uint) (*request.Request, error) {
	status, err := vo.NewRequestStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("request %d: %w", model.ID, err)
	}

	return request.ReconstructRequest(
		model.ID,
		model.PublicID,
		model.PublicYear,
		model.PublicSeq,
		status,
		model.CompanyID,
		model.CompanyEmployeeID,
		directionIDs,
		model.AssignedDepartmentID,
		model.AssignedEmployeeID,
		model.DeputyAssistantID,
		model.Description,
		fromDate(model.DueDate),
		utcPtr(model.ResolvedAt),
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
}

func (m *RequestMapperImpl) HistoryToModel(h *request.HistoryEntry) *models.RequestHistoryModel {
	var metadata datatypes.JSONMap
	if meta := h.Metadata(); len(meta) > 0 {
		metadata = datatypes.JSONMap(meta)
	}
	return &models.RequestHistoryModel{
		ID:         h.ID(),
		RequestID:  h.RequestID(),
		ActorID:    h.ActorID(),
		Action:     h.Action().String(),
		FromStatus: h.FromStatus(),
		ToStatus:   h.ToStatus(),
		Comment:    h.Comment(),
		Metadata:   metadata,
		CreatedAt:  h.CreatedAt(),
	}
}

func (m *RequestMapperImpl) HistoryToDomain(model *models.RequestHistoryModel) (*request.HistoryEntry, error) {
	action, err := vo.NewHistoryAction(model.Action)
	if err != nil {
		return nil, fmt.Errorf("history %d: %w", model.ID, err)
	}
	return request.ReconstructHistoryEntry(
		model.ID,
		model.RequestID,
		model.ActorID,
		action,
		model.FromStatus,
		model.ToStatus,
		model.Comment,
		map[string]any(model.Metadata),
		model.CreatedAt.UTC(),
	), nil
}

func (m *RequestMapperImpl) ResolutionToModel(res *request.Resolution) *models.RequestResolutionModel {
	return &models.RequestResolutionModel{
		ID:                 res.ID(),
		RequestID:          res.RequestID(),
		AuthorID:           res.AuthorID(),
		Text:               res.Text(),
		TargetDepartmentID: res.TargetDepartmentID(),
		TargetEmployeeID:   res.TargetEmployeeID(),
		DueDate:            toDate(res.DueDate()),
		CreatedAt:          res.CreatedAt(),
	}
}

func (m *RequestMapperImpl) ResolutionToDomain(model *models.RequestResolutionModel) *request.Resolution {
	return request.ReconstructResolution(
		model.ID,
		model.RequestID,
		model.AuthorID,
		model.Text,
		model.TargetDepartmentID,
		model.TargetEmployeeID,
		fromDate(model.DueDate),
		model.CreatedAt.UTC(),
	)
}

func (m *RequestMapperImpl) StepToModel(s *request.Step) *models.RequestStepModel {
	return &models.RequestStepModel{
		ID:        s.ID(),
		RequestID: s.RequestID(),
		AuthorID:  s.AuthorID(),
		Text:      s.Text(),
		CreatedAt: s.CreatedAt(),
	}
}

func (m *RequestMapperImpl) StepToDomain(model *models.RequestStepModel) *request.Step {
	return request.ReconstructStep(model.ID, model.RequestID, model.AuthorID, model.Text, model.CreatedAt.UTC())
}

func (m *RequestMapperImpl) FileToModel(f *request.File) *models.RequestFileModel {
	return &models.RequestFileModel{
		ID:           f.ID(),
		RequestID:    f.RequestID(),
		Kind:         string(f.Kind()),
		StorageKey:   f.StorageKey(),
		OriginalName: f.OriginalName(),
		Size:         f.Size(),
		CreatedAt:    f.CreatedAt(),
	}
}

func (m *RequestMapperImpl) FileToDomain(model *models.RequestFileModel) *request.File {
	return request.ReconstructFile(
		model.ID,
		model.RequestID,
		vo.FileKind(model.Kind),
		model.StorageKey,
		model.OriginalName,
		model.Size,
		model.CreatedAt.UTC(),
	)
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	return &d
}

func fromDate(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}
	raw := time.Time(*d)
	t := time.Date(raw.Year(), raw.Month(), raw.Day(), 0, 0, 0, 0, time.UTC)
	return &t
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
