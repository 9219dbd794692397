package http

import (
	"github.com/adli-inc/adli/internal/application/request/usecases"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/infrastructure/email"
	"github.com/adli-inc/adli/internal/interfaces/adapters"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Public portal
	createPublicRequestUC *usecases.CreatePublicRequestUseCase
	trackRequestUC        *usecases.TrackRequestUseCase

	// Panel reads
	listRequestsUC *usecases.ListRequestsUseCase
	bucketCountsUC *usecases.BucketCountsUseCase
	getRequestUC   *usecases.GetRequestUseCase

	// Lifecycle
	actionService *usecases.ActionService
}

// ============================================================
// Section 2: Requests - use cases and the action boundary
// ============================================================

func (c *Container) initRequests() {
	r := c.repos
	log := c.log.Named("request")

	lifecycle := usecases.LifecycleDeps{
		TxManager:   c.txManager,
		Requests:    r.requestRepo,
		History:     r.historyRepo,
		Resolutions: r.resolutionRepo,
		Steps:       r.stepRepo,
		Observer:    c.metrics,
		Counts:      c.countCache,
		Clock:       c.clock,
		Logger:      log,
	}

	var notifier usecases.ReceiptNotifier
	if c.cfg.Email.Enabled {
		notifier = adapters.NewReceiptNotifierAdapter(email.NewReceiptMailer(email.SMTPConfig{
			Host:        c.cfg.Email.SMTPHost,
			Port:        c.cfg.Email.SMTPPort,
			Username:    c.cfg.Email.SMTPUser,
			Password:    c.cfg.Email.SMTPPassword,
			FromAddress: c.cfg.Email.FromAddress,
			FromName:    c.cfg.Email.FromName,
		}), log.Named("receipt"))
	}

	c.ucs = &allUseCases{
		createPublicRequestUC: usecases.NewCreatePublicRequestUseCase(usecases.CreatePublicRequestDeps{
			TxManager:  c.txManager,
			Companies:  r.companyRepo,
			Requesters: r.requesterRepo,
			Directions: r.directionRepo,
			Requests:   r.requestRepo,
			Allocator:  r.counterRepo,
			History:    r.historyRepo,
			Files:      r.fileRepo,
			Text:       c.text,
			Policy: vo.AttachmentPolicy{
				MaxBytes:          int64(c.cfg.Intake.MaxAttachmentMB) << 20,
				AllowedExtensions: c.cfg.Intake.AllowedExtensions,
			},
			Intake:   c.metrics,
			Counts:   c.countCache,
			Notifier: notifier,
			Clock:    c.clock,
			Logger:   log,
		}),
		trackRequestUC: usecases.NewTrackRequestUseCase(r.requestRepo, r.companyRepo, r.historyRepo, log),
		listRequestsUC: usecases.NewListRequestsUseCase(r.requestRepo, r.companyRepo, c.clock, log),
		bucketCountsUC: usecases.NewBucketCountsUseCase(r.requestRepo, c.countCache, log),
		getRequestUC: usecases.NewGetRequestUseCase(usecases.GetRequestDeps{
			Requests:    r.requestRepo,
			Companies:   r.companyRepo,
			History:     r.historyRepo,
			Resolutions: r.resolutionRepo,
			Steps:       r.stepRepo,
			Files:       r.fileRepo,
			Text:        c.text,
			Clock:       c.clock,
			Logger:      log,
		}),
		actionService: usecases.NewActionService(
			c.enforcer,
			r.requestRepo,
			r.agencyEmployeeRepo,
			usecases.ActionExecutors{
				Register:          usecases.NewRegisterRequestUseCase(lifecycle),
				SendForResolution: usecases.NewSendForResolutionUseCase(lifecycle),
				CreateResolution:  usecases.NewCreateResolutionUseCase(lifecycle, r.agencyEmployeeRepo, r.departmentRepo),
				AddStep:           usecases.NewAddStepUseCase(lifecycle),
				MarkDone:          usecases.NewMarkDoneUseCase(lifecycle),
			},
			c.metrics,
			log,
		),
	}
}
