package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/adli-inc/adli/internal/domain/request"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/infrastructure/persistence/mappers"
	"github.com/adli-inc/adli/internal/infrastructure/persistence/models"
	"github.com/adli-inc/adli/internal/shared/db"
)

// RequestHistoryRepository appends and reads the audit trail. Rows are
// never updated or deleted.
type RequestHistoryRepository struct {
	db     *gorm.DB
	mapper mappers.RequestMapper
}

func NewRequestHistoryRepository(gormDB *gorm.DB) *RequestHistoryRepository {
	return &RequestHistoryRepository{db: gormDB, mapper: mappers.NewRequestMapper()}
}

func (r *RequestHistoryRepository) Append(ctx context.Context, entries ...*request.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]*models.RequestHistoryModel, len(entries))
	for i, e := range entries {
		if e.RequestID() == 0 {
			return fmt.Errorf("history entry %q has no request", e.Action())
		}
		rows[i] = r.mapper.HistoryToModel(e)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to append request history: %w", err)
	}
	for i, row := range rows {
		entries[i].SetID(row.ID)
	}
	return nil
}

func (r *RequestHistoryRepository) ListByRequest(ctx context.Context, requestID uint, actions []vo.HistoryAction) ([]*request.HistoryEntry, error) {
	query := db.GetTxFromContext(ctx, r.db).Where("request_id = ?", requestID)
	if actions != nil {
		names := make([]string, len(actions))
		for i, a := range actions {
			names[i] = a.String()
		}
		query = query.Where("action IN ?", names)
	}
	return r.find(query.Order("created_at DESC").Order("id DESC"))
}

func (r *RequestHistoryRepository) ListAudit(ctx context.Context, requestID uint) ([]*request.HistoryEntry, error) {
	return r.find(db.GetTxFromContext(ctx, r.db).Where("request_id = ?", requestID).Order("id ASC"))
}

func (r *RequestHistoryRepository) find(query *gorm.DB) ([]*request.HistoryEntry, error) {
	var rows []models.RequestHistoryModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list request history: %w", err)
	}
	out := make([]*request.HistoryEntry, 0, len(rows))
	for i := range rows {
		h, err := r.mapper.HistoryToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}
