// Package permission backs the action gate with a casbin RBAC policy
// persisted through the gorm adapter.
package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/shared/logger"
)

var _ agency.PermissionEnforcer = (*Enforcer)(nil)

// Subjects are role tags; g lets one role inherit another's grants.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func (e *Enforcer) Enforce(role, resource, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

// Seed adds every grant of set that is not yet stored. Existing rows are
// left alone so operators can extend the policy in the database.
func (e *Enforcer) Seed(set *PolicySet) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	added := 0
	for _, rule := range set.rules() {
		ok, err := e.enforcer.AddPolicy(rule[0], rule[1], rule[2])
		if err != nil {
			e.logger.Errorw("failed to add policy",
				"error", err,
				"role", rule[0],
				"resource", rule[1],
				"action", rule[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", rule[0], rule[1], rule[2], err)
		}
		if ok {
			added++
		}
	}

	for _, link := range set.inheritance() {
		ok, err := e.enforcer.AddGroupingPolicy(link[0], link[1])
		if err != nil {
			return fmt.Errorf("failed to add role inheritance %s -> %s: %w", link[0], link[1], err)
		}
		if ok {
			added++
		}
	}

	e.logger.Infow("permission policy seeded", "added", added)
	return nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Info("policy reloaded successfully")
	return nil
}
