package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/adli-inc/adli/internal/application/request/usecases"
	"github.com/adli-inc/adli/internal/infrastructure/auth"
	"github.com/adli-inc/adli/internal/infrastructure/cache"
	"github.com/adli-inc/adli/internal/infrastructure/config"
	"github.com/adli-inc/adli/internal/infrastructure/metrics"
	"github.com/adli-inc/adli/internal/infrastructure/permission"
	"github.com/adli-inc/adli/internal/infrastructure/scheduler"
	"github.com/adli-inc/adli/internal/infrastructure/services"
	"github.com/adli-inc/adli/internal/interfaces/http/middleware"
	"github.com/adli-inc/adli/internal/shared/biztime"
	shareddb "github.com/adli-inc/adli/internal/shared/db"
	"github.com/adli-inc/adli/internal/shared/logger"
	"github.com/adli-inc/adli/internal/shared/services/markdown"
)

// Container holds all infrastructure components, repositories, use cases
// and handlers, and wires them together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client
	clock  biztime.Clock

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	intakeLimiter        *middleware.RateLimiter
	trackLimiter         *middleware.RateLimiter

	// Shared services
	txManager    *shareddb.TransactionManager
	jwtSvc       *auth.JWTService
	enforcer     *permission.Enforcer
	roleResolver *services.CachedRoleResolver
	metrics      *metrics.RequestMetrics
	text         markdown.MarkdownService
	// countCache is nil when Redis is disabled.
	countCache usecases.CountCache
	// scheduler is nil when the workload refresh is disabled.
	scheduler *scheduler.SchedulerManager
}

// NewContainer builds the application graph. The casbin policy is loaded
// from the database and topped up from the policy file.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		clock:  biztime.SystemClock(),
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initRequests()
	c.initHandlers()
	if err := c.initScheduler(); err != nil {
		return nil, err
	}

	return c, nil
}

// ============================================================
// Section 1: Infrastructure - Redis, Repositories, Policy
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg

	c.redis = initRedis(cfg, c.log)
	c.metrics = metrics.Requests()
	c.repos = newRepositories(c.db, c.metrics, c.log)
	c.txManager = shareddb.NewTransactionManager(c.db)
	c.text = markdown.NewMarkdownService()

	enforcer, err := permission.NewEnforcer(c.db, c.log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}
	if path := cfg.Permission.PolicyFile; path != "" {
		set, err := permission.LoadPolicyFile(path)
		if err != nil {
			return err
		}
		if err := enforcer.Seed(set); err != nil {
			return err
		}
	}
	c.enforcer = enforcer

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.ExpMinutes)
	c.roleResolver = services.NewCachedRoleResolver(
		c.repos.agencyEmployeeRepo,
		time.Duration(cfg.RoleCache.TTLSecs)*time.Second,
		c.log.Named("roles"),
	)

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.roleResolver, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log)

	if c.redis != nil {
		c.countCache = cache.NewRedisBucketCountCache(c.redis, time.Duration(cfg.Redis.CountsTTLSecs)*time.Second, c.log.Named("counts"))
		c.intakeLimiter = middleware.NewRateLimiter(c.redis, "intake", cfg.Intake.RateLimitPerMinute, time.Minute, c.log)
		c.trackLimiter = middleware.NewRateLimiter(c.redis, "track", cfg.Intake.TrackLimitPerMinute, time.Minute, c.log)
	}
	return nil
}

// initRedis returns nil when Redis is disabled or unreachable; callers
// fall back to the database.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	if !cfg.Redis.Enabled {
		log.Infow("Redis disabled, bucket counters will not be cached")
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("failed to connect to Redis, continuing without it", "addr", cfg.Redis.GetAddr(), "error", err)
		_ = redisClient.Close()
		return nil
	}
	log.Infow("Redis connection established successfully")

	return redisClient
}

func (c *Container) initScheduler() error {
	interval := time.Duration(c.cfg.Scheduler.WorkloadRefreshSecs) * time.Second
	if interval <= 0 {
		return nil
	}

	manager, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	job := usecases.NewRefreshWorkloadUseCase(c.repos.requestRepo, c.metrics, c.clock, c.log.Named("workload"))
	if err := manager.RegisterWorkloadJob(job, interval); err != nil {
		return fmt.Errorf("failed to register workload job: %w", err)
	}
	c.scheduler = manager
	return nil
}

// StartScheduler starts background jobs, if any are configured.
func (c *Container) StartScheduler() {
	if c.scheduler != nil {
		c.scheduler.Start()
	}
}

// Shutdown stops background jobs and releases connections owned by the
// container.
func (c *Container) Shutdown() {
	if c.scheduler != nil {
		if err := c.scheduler.Stop(); err != nil {
			c.log.Warnw("failed to stop scheduler", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
	}
}
