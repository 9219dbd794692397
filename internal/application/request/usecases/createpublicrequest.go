package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/adli-inc/adli/internal/application/request/dto"
	"github.com/adli-inc/adli/internal/domain/company"
	"github.com/adli-inc/adli/internal/domain/request"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/shared/biztime"
	"github.com/adli-inc/adli/internal/shared/errors"
	"github.com/adli-inc/adli/internal/shared/logger"
	"github.com/adli-inc/adli/internal/shared/utils"
)

type AttachmentInput struct {
	Name       string `json:"name" validate:"required"`
	Size       int64  `json:"size" validate:"gt=0"`
	StorageKey string `json:"storage_key" validate:"required"`
}

type CreatePublicRequestCommand struct {
	CompanyINN   string            `json:"inn" validate:"required"`
	CompanyName  string            `json:"company_name" validate:"required,max=255"`
	FirstName    string            `json:"first_name" validate:"required,max=100"`
	LastName     string            `json:"last_name" validate:"required,max=100"`
	MiddleName   string            `json:"middle_name" validate:"omitempty,max=100"`
	Phone        string            `json:"phone" validate:"omitempty,max=32"`
	Email        string            `json:"email" validate:"omitempty,email,max=255"`
	Description  string            `json:"description" validate:"required"`
	DirectionIDs []uint            `json:"direction_ids"`
	Attachments  []AttachmentInput `json:"attachments" validate:"dive"`
}

type CreatePublicRequestUseCase struct {
	txManager  TransactionManager
	companies  company.Repository
	requesters company.EmployeeRepository
	directions company.DirectionRepository
	requests   request.Repository
	allocator  request.SequenceAllocator
	history    request.HistoryRepository
	files      request.FileRepository
	text       TextService
	policy     vo.AttachmentPolicy
	intake     IntakeObserver
	counts     CountCache
	notifier   ReceiptNotifier
	clock      biztime.Clock
	logger     logger.Interface
}

// CreatePublicRequestDeps groups the collaborators of public intake.
// Intake, Counts and Notifier are optional.
type CreatePublicRequestDeps struct {
	TxManager  TransactionManager
	Companies  company.Repository
	Requesters company.EmployeeRepository
	Directions company.DirectionRepository
	Requests   request.Repository
	Allocator  request.SequenceAllocator
	History    request.HistoryRepository
	Files      request.FileRepository
	Text       TextService
	Policy     vo.AttachmentPolicy
	Intake     IntakeObserver
	Counts     CountCache
	Notifier   ReceiptNotifier
	Clock      biztime.Clock
	Logger     logger.Interface
}

func NewCreatePublicRequestUseCase(deps CreatePublicRequestDeps) *CreatePublicRequestUseCase {
	if deps.Clock == nil {
		deps.Clock = biztime.SystemClock()
	}
	if deps.Policy.AllowedExtensions == nil {
		deps.Policy = vo.DefaultAttachmentPolicy()
	}
	return &CreatePublicRequestUseCase{
		txManager:  deps.TxManager,
		companies:  deps.Companies,
		requesters: deps.Requesters,
		directions: deps.Directions,
		requests:   deps.Requests,
		allocator:  deps.Allocator,
		history:    deps.History,
		files:      deps.Files,
		text:       deps.Text,
		policy:     deps.Policy,
		intake:     deps.Intake,
		counts:     deps.Counts,
		notifier:   deps.Notifier,
		clock:      deps.Clock,
		logger:     deps.Logger,
	}
}

func (uc *CreatePublicRequestUseCase) Execute(ctx context.Context, cmd CreatePublicRequestCommand) (*dto.CreatedRequestDTO, error) {
	uc.logger.Infow("executing create public request use case",
		"inn", cmd.CompanyINN,
		"directions", len(cmd.DirectionIDs),
		"attachments", len(cmd.Attachments))

	cmd = uc.sanitize(cmd)
	if err := uc.validateCommand(ctx, cmd); err != nil {
		uc.logger.Errorw("invalid create public request command", "error", err)
		return nil, err
	}

	now := uc.clock.Now()
	var (
		req       *request.Request
		comp      *company.Company
		requester *company.Employee
	)

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		if comp, err = uc.upsertCompany(txCtx, cmd); err != nil {
			return err
		}
		if requester, err = uc.upsertRequester(txCtx, comp.ID(), cmd); err != nil {
			return err
		}

		employeeID := requester.ID()
		req, err = request.NewRequest(comp.ID(), &employeeID, cmd.Description, cmd.DirectionIDs, now)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if _, err := request.EnsurePublicID(txCtx, req, uc.allocator, biztime.Year(now)); err != nil {
			return fmt.Errorf("failed to allocate public ID: %w", err)
		}
		if err := uc.requests.Create(txCtx, req); err != nil {
			return err
		}

		for _, a := range cmd.Attachments {
			f, err := request.NewFile(req.ID(), a.StorageKey, a.Name, a.Size, uc.policy, now)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := uc.files.Create(txCtx, f); err != nil {
				return err
			}
		}

		return uc.history.Append(txCtx, req.CreatedEntry(now))
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("request conflicts with existing data, please retry")
		}
		uc.logger.Errorw("failed to create public request", "inn", cmd.CompanyINN, "error", err)
		return nil, errors.NewInternalError("failed to create request")
	}

	uc.logger.Infow("public request created",
		"request_id", req.ID(),
		"public_id", req.PublicID(),
		"company_id", comp.ID())

	uc.afterCommit(ctx, req, comp, requester)

	return &dto.CreatedRequestDTO{
		ID:        req.ID(),
		PublicID:  req.PublicID(),
		Status:    req.Status().String(),
		CreatedAt: req.CreatedAt(),
	}, nil
}

func (uc *CreatePublicRequestUseCase) afterCommit(ctx context.Context, req *request.Request, comp *company.Company, requester *company.Employee) {
	if uc.intake != nil {
		uc.intake.ObserveIntake()
	}
	if uc.counts != nil {
		if err := uc.counts.Invalidate(ctx); err != nil {
			uc.logger.Warnw("failed to invalidate bucket counts", "error", err)
		}
	}
	if uc.notifier == nil || requester.Email() == "" {
		return
	}
	notice := ReceiptNotice{
		Email:       requester.Email(),
		FullName:    strings.TrimSpace(requester.LastName() + " " + requester.FirstName() + " " + requester.MiddleName()),
		CompanyName: comp.Name(),
		PublicID:    req.PublicID(),
	}
	if err := uc.notifier.NotifyReceipt(ctx, notice); err != nil {
		uc.logger.Warnw("failed to send receipt", "public_id", req.PublicID(), "error", err)
	}
}

func (uc *CreatePublicRequestUseCase) upsertCompany(ctx context.Context, cmd CreatePublicRequestCommand) (*company.Company, error) {
	inn := company.NormalizeINN(cmd.CompanyINN)
	existing, err := uc.companies.GetByINN(ctx, inn)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		c, err := company.NewCompany(inn, cmd.CompanyName)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := uc.companies.Create(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	}
	if existing.Rename(cmd.CompanyName) {
		if err := uc.companies.Update(ctx, existing); err != nil {
			return nil, err
		}
	}
	return existing, nil
}

func (uc *CreatePublicRequestUseCase) upsertRequester(ctx context.Context, companyID uint, cmd CreatePublicRequestCommand) (*company.Employee, error) {
	existing, err := uc.requesters.FindByIdentity(ctx, companyID,
		company.NormalizePersonName(cmd.FirstName),
		company.NormalizePersonName(cmd.LastName),
		company.NormalizePersonName(cmd.MiddleName))
	if err != nil {
		return nil, err
	}
	if existing == nil {
		e, err := company.NewEmployee(companyID, cmd.FirstName, cmd.LastName, cmd.MiddleName, cmd.Phone, cmd.Email)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := uc.requesters.Create(ctx, e); err != nil {
			return nil, err
		}
		return e, nil
	}
	if existing.FillBlanks(cmd.MiddleName, cmd.Phone, cmd.Email) {
		if err := uc.requesters.Update(ctx, existing); err != nil {
			return nil, err
		}
	}
	return existing, nil
}

// sanitize strips markup from every free-text field of the public form.
func (uc *CreatePublicRequestUseCase) sanitize(cmd CreatePublicRequestCommand) CreatePublicRequestCommand {
	clean := uc.text.PlainText
	cmd.CompanyINN = company.NormalizeINN(cmd.CompanyINN)
	cmd.CompanyName = clean(cmd.CompanyName)
	cmd.FirstName = clean(cmd.FirstName)
	cmd.LastName = clean(cmd.LastName)
	cmd.MiddleName = clean(cmd.MiddleName)
	cmd.Phone = clean(cmd.Phone)
	cmd.Email = strings.TrimSpace(cmd.Email)
	cmd.Description = clean(cmd.Description)
	return cmd
}

// validateCommand rejects the submission before anything is written.
func (uc *CreatePublicRequestUseCase) validateCommand(ctx context.Context, cmd CreatePublicRequestCommand) error {
	if err := utils.ValidateStruct(cmd); err != nil {
		return err
	}
	if err := company.ValidateINN(cmd.CompanyINN); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if strings.TrimSpace(cmd.Description) == "" {
		return errors.NewValidationError("description is required")
	}

	var details []string
	for _, a := range cmd.Attachments {
		if err := uc.policy.Check(a.Name, a.Size); err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		return errors.NewValidationError("invalid attachments", details...)
	}

	return uc.checkDirections(ctx, cmd.DirectionIDs)
}

func (uc *CreatePublicRequestUseCase) checkDirections(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := uc.directions.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Errorw("failed to load directions", "error", err)
		return errors.NewInternalError("failed to load directions")
	}
	known := make(map[uint]bool, len(found))
	for _, d := range found {
		known[d.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return errors.NewValidationError(fmt.Sprintf("direction %d does not exist", id))
		}
	}
	return nil
}
