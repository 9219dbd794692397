package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/adli-inc/adli/internal/domain/request"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/infrastructure/persistence/mappers"
	"github.com/adli-inc/adli/internal/infrastructure/persistence/models"
	"github.com/adli-inc/adli/internal/shared/db"
	"github.com/adli-inc/adli/internal/shared/logger"
)

// ownerColumns whitelists the scope columns that may be interpolated
// into the WHERE clause.
var ownerColumns = map[request.OwnerField]string{
	request.OwnerDeputyAssistant: "requests.deputy_assistant_id",
	request.OwnerDepartment:      "requests.assigned_department_id",
	request.OwnerEmployee:        "requests.assigned_employee_id",
}

type RequestRepository struct {
	db     *gorm.DB
	mapper mappers.RequestMapper
	logger logger.Interface
}

func NewRequestRepository(gormDB *gorm.DB, logger logger.Interface) *RequestRepository {
	return &RequestRepository{
		db:     gormDB,
		mapper: mappers.NewRequestMapper(),
		logger: logger,
	}
}

func (r *RequestRepository) Create(ctx context.Context, req *request.Request) error {
	if !req.HasPublicID() {
		return fmt.Errorf("request must have a public ID before it is stored")
	}
	model := r.mapper.ToModel(req)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create request", "public_id", model.PublicID, "error", err)
		return fmt.Errorf("failed to create request: %w", err)
	}

	if err := req.SetID(model.ID); err != nil {
		return err
	}

	if ids := req.DirectionIDs(); len(ids) > 0 {
		links := make([]models.RequestDirectionModel, len(ids))
		for i, id := range ids {
			links[i] = models.RequestDirectionModel{RequestID: model.ID, DirectionID: id}
		}
		if err := tx.Create(&links).Error; err != nil {
			return fmt.Errorf("failed to link request directions: %w", err)
		}
	}

	return nil
}

func (r *RequestRepository) Update(ctx context.Context, req *request.Request) error {
	model := r.mapper.ToModel(req)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.RequestModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "public_id", "public_year", "public_seq", "company_id", "created_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update request", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("request %d not found", model.ID)
	}

	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id uint) (*request.Request, error) {
	return r.first(ctx, db.GetTxFromContext(ctx, r.db).Where("id = ?", id))
}

func (r *RequestRepository) GetByIDForUpdate(ctx context.Context, id uint) (*request.Request, error) {
	if !db.InTransaction(ctx) {
		return nil, fmt.Errorf("GetByIDForUpdate requires a transaction")
	}
	return r.first(ctx, db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()).Where("id = ?", id))
}

func (r *RequestRepository) GetByPublicID(ctx context.Context, publicID string) (*request.Request, error) {
	return r.first(ctx, db.GetTxFromContext(ctx, r.db).Where("public_id = ?", publicID))
}

func (r *RequestRepository) first(ctx context.Context, query *gorm.DB) (*request.Request, error) {
	var model models.RequestModel
	if err := query.Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	directions, err := r.loadDirections(ctx, []uint{model.ID})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToDomain(&model, directions[model.ID])
}

func (r *RequestRepository) List(ctx context.Context, filter request.ListFilter) ([]*request.Request, int64, error) {
	query := r.filtered(ctx, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	var rows []models.RequestModel
	if err := query.
		Select("requests.*").
		Order("requests.created_at DESC").
		Order("requests.id DESC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}

	ids := make([]uint, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	directions, err := r.loadDirections(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*request.Request, len(rows))
	for i := range rows {
		req, err := r.mapper.ToDomain(&rows[i], directions[rows[i].ID])
		if err != nil {
			return nil, 0, err
		}
		result[i] = req
	}
	return result, total, nil
}

func (r *RequestRepository) Count(ctx context.Context, scope request.Scope) (int64, error) {
	var total int64
	query := applyScope(db.GetTxFromContext(ctx, r.db).Model(&models.RequestModel{}), scope)
	if err := query.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}
	return total, nil
}

func (r *RequestRepository) filtered(ctx context.Context, filter request.ListFilter) *gorm.DB {
	query := applyScope(db.GetTxFromContext(ctx, r.db).Model(&models.RequestModel{}), filter.Scope)

	if filter.Status != nil {
		query = query.Where("requests.status = ?", filter.Status.String())
	}
	if filter.OverdueOn != nil {
		query = query.Where("requests.due_date IS NOT NULL AND requests.due_date < ? AND requests.status <> ?",
			*filter.OverdueOn, vo.StatusDone.String())
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + escapeLike(q) + "%"
		query = query.
			Joins("LEFT JOIN companies ON companies.id = requests.company_id").
			Where("(requests.public_id LIKE ? ESCAPE '!' OR requests.description LIKE ? ESCAPE '!' OR companies.name LIKE ? ESCAPE '!' OR companies.inn LIKE ? ESCAPE '!')",
				like, like, like, like)
	}
	return query
}

func applyScope(query *gorm.DB, scope request.Scope) *gorm.DB {
	if scope.Empty {
		return query.Where("1 = 0")
	}
	if column, ok := ownerColumns[scope.Owner]; ok {
		query = query.Where(column+" = ?", scope.OwnerID)
	} else if scope.Owner != request.OwnerNone {
		return query.Where("1 = 0")
	}
	if scope.Statuses != nil {
		statuses := make([]string, len(scope.Statuses))
		for i, s := range scope.Statuses {
			statuses[i] = s.String()
		}
		query = query.Where("requests.status IN ?", statuses)
	}
	return query
}

func (r *RequestRepository) loadDirections(ctx context.Context, requestIDs []uint) (map[uint][]uint, error) {
	out := make(map[uint][]uint, len(requestIDs))
	if len(requestIDs) == 0 {
		return out, nil
	}
	var links []models.RequestDirectionModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("request_id IN ?", requestIDs).
		Order("direction_id ASC").
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load request directions: %w", err)
	}
	for _, l := range links {
		out[l.RequestID] = append(out[l.RequestID], l.DirectionID)
	}
	return out, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
