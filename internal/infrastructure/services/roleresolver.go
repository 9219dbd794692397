package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/shared/logger"
)

var _ agency.RoleResolver = (*CachedRoleResolver)(nil)

// CachedRoleResolver resolves a user's workflow role from employee records
// and keeps the result for a short TTL. Role or department edits therefore
// take effect within one TTL.
type CachedRoleResolver struct {
	employees agency.EmployeeRepository
	cache     *cache.Cache
	logger    logger.Interface
}

func NewCachedRoleResolver(employees agency.EmployeeRepository, ttl time.Duration, logger logger.Interface) *CachedRoleResolver {
	return &CachedRoleResolver{
		employees: employees,
		cache:     cache.New(ttl, 2*ttl),
		logger:    logger,
	}
}

func (r *CachedRoleResolver) Resolve(ctx context.Context, userID uint) (agency.Actor, error) {
	key := strconv.FormatUint(uint64(userID), 10)
	if v, ok := r.cache.Get(key); ok {
		return v.(agency.Actor), nil
	}

	emp, err := r.employees.GetByUserID(ctx, userID)
	if err != nil {
		r.logger.Errorw("failed to load employee for role resolution", "user_id", userID, "error", err)
		return agency.Actor{}, fmt.Errorf("failed to resolve role: %w", err)
	}

	actor := agency.NewActor(userID, emp)
	r.cache.SetDefault(key, actor)
	return actor, nil
}

// Forget drops a cached actor.
func (r *CachedRoleResolver) Forget(userID uint) {
	r.cache.Delete(strconv.FormatUint(uint64(userID), 10))
}
