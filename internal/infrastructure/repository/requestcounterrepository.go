package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adli-inc/adli/internal/infrastructure/persistence/models"
	"github.com/adli-inc/adli/internal/shared/db"
)

// AllocationObserver is told about every sequence number handed out.
type AllocationObserver interface {
	ObserveAllocation(year int)
}

// RequestCounterRepository allocates per-year public ID sequence numbers
// from the request_counters table.
type RequestCounterRepository struct {
	db        *gorm.DB
	txManager *db.TransactionManager
	observer  AllocationObserver
}

func NewRequestCounterRepository(gormDB *gorm.DB, observer AllocationObserver) *RequestCounterRepository {
	return &RequestCounterRepository{
		db:        gormDB,
		txManager: db.NewTransactionManager(gormDB),
		observer:  observer,
	}
}

// Allocate locks (or lazily creates) the counter row for year, increments
// it and returns the new value. It joins the caller's transaction when ctx
// carries one, so a rollback there also returns the number.
func (r *RequestCounterRepository) Allocate(ctx context.Context, year int) (int64, error) {
	var seq int64
	err := r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := db.GetTxFromContext(ctx, r.db)

		counter, err := r.lock(tx, year)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.RequestCounterModel{Year: year}).Error; err != nil {
				return fmt.Errorf("failed to create counter for %d: %w", year, err)
			}
			counter, err = r.lock(tx, year)
		}
		if err != nil {
			return fmt.Errorf("failed to lock counter for %d: %w", year, err)
		}

		seq = counter.LastNumber + 1
		if err := tx.Model(&models.RequestCounterModel{}).
			Where("year = ?", year).
			Update("last_number", seq).Error; err != nil {
			return fmt.Errorf("failed to advance counter for %d: %w", year, err)
		}
		if r.observer != nil {
			db.AfterCommit(ctx, func() { r.observer.ObserveAllocation(year) })
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// Peek returns the high-water mark for year without locking.
func (r *RequestCounterRepository) Peek(ctx context.Context, year int) (int64, error) {
	var counter models.RequestCounterModel
	err := db.GetTxFromContext(ctx, r.db).Where("year = ?", year).Take(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter for %d: %w", year, err)
	}
	return counter.LastNumber, nil
}

func (r *RequestCounterRepository) lock(tx *gorm.DB, year int) (*models.RequestCounterModel, error) {
	var counter models.RequestCounterModel
	if err := tx.Scopes(db.ForUpdate()).Where("year = ?", year).Take(&counter).Error; err != nil {
		return nil, err
	}
	return &counter, nil
}
