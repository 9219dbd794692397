package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/adli-inc/adli/internal/domain/request"
	"github.com/adli-inc/adli/internal/infrastructure/persistence/mappers"
	"github.com/adli-inc/adli/internal/infrastructure/persistence/models"
	"github.com/adli-inc/adli/internal/shared/db"
)

// RequestRecordRepository stores the immutable child records of a request:
// resolutions, steps and file metadata. It satisfies the three
// corresponding domain repositories.
type RequestRecordRepository struct {
	db     *gorm.DB
	mapper mappers.RequestMapper
}

func NewRequestRecordRepository(gormDB *gorm.DB) *RequestRecordRepository {
	return &RequestRecordRepository{db: gormDB, mapper: mappers.NewRequestMapper()}
}

// ResolutionRepository adapts the record store to request.ResolutionRepository.
type ResolutionRepository struct{ *RequestRecordRepository }

// StepRepository adapts the record store to request.StepRepository.
type StepRepository struct{ *RequestRecordRepository }

// FileRepository adapts the record store to request.FileRepository.
type FileRepository struct{ *RequestRecordRepository }

func (r *RequestRecordRepository) Resolutions() ResolutionRepository {
	return ResolutionRepository{r}
}

func (r *RequestRecordRepository) Steps() StepRepository {
	return StepRepository{r}
}

func (r *RequestRecordRepository) Files() FileRepository {
	return FileRepository{r}
}

func (r ResolutionRepository) Create(ctx context.Context, res *request.Resolution) error {
	model := r.mapper.ResolutionToModel(res)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save resolution: %w", err)
	}
	res.SetID(model.ID)
	return nil
}

func (r ResolutionRepository) ListByRequest(ctx context.Context, requestID uint) ([]*request.Resolution, error) {
	var rows []models.RequestResolutionModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("request_id = ?", requestID).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list resolutions: %w", err)
	}
	out := make([]*request.Resolution, len(rows))
	for i := range rows {
		out[i] = r.mapper.ResolutionToDomain(&rows[i])
	}
	return out, nil
}

func (r StepRepository) Create(ctx context.Context, s *request.Step) error {
	model := r.mapper.StepToModel(s)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save step: %w", err)
	}
	s.SetID(model.ID)
	return nil
}

func (r StepRepository) ListByRequest(ctx context.Context, requestID uint) ([]*request.Step, error) {
	var rows []models.RequestStepModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("request_id = ?", requestID).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}
	out := make([]*request.Step, len(rows))
	for i := range rows {
		out[i] = r.mapper.StepToDomain(&rows[i])
	}
	return out, nil
}

func (r FileRepository) Create(ctx context.Context, f *request.File) error {
	model := r.mapper.FileToModel(f)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save file metadata: %w", err)
	}
	f.SetID(model.ID)
	return nil
}

func (r FileRepository) ListByRequest(ctx context.Context, requestID uint) ([]*request.File, error) {
	var rows []models.RequestFileModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("request_id = ?", requestID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	out := make([]*request.File, len(rows))
	for i := range rows {
		out[i] = r.mapper.FileToDomain(&rows[i])
	}
	return out, nil
}
