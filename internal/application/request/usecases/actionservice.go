package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/adli-inc/adli/internal/application/request/dto"
	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/domain/request"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/shared/errors"
	"github.com/adli-inc/adli/internal/shared/logger"
)

// ResolutionRequest is the panel form for a resolution.
type ResolutionRequest struct {
	Text               string
	TargetDepartmentID *uint
	TargetEmployeeID   *uint
	DueDate            *time.Time
}

// ActionService is the boundary between an authenticated actor and the
// lifecycle use cases. It checks the role policy and object visibility,
// then applies the panel preconditions. A failed precondition is reported
// as a warning on an unapplied result rather than an error.
type ActionService struct {
	enforcer          agency.PermissionEnforcer
	requests          request.Repository
	employees         agency.EmployeeRepository
	register          RegisterRequestExecutor
	sendForResolution SendForResolutionExecutor
	createResolution  CreateResolutionExecutor
	addStep           AddStepExecutor
	markDone          MarkDoneExecutor
	observer          TransitionObserver
	logger            logger.Interface
}

type ActionExecutors struct {
	Register          RegisterRequestExecutor
	SendForResolution SendForResolutionExecutor
	CreateResolution  CreateResolutionExecutor
	AddStep           AddStepExecutor
	MarkDone          MarkDoneExecutor
}

func NewActionService(
	enforcer agency.PermissionEnforcer,
	requests request.Repository,
	employees agency.EmployeeRepository,
	executors ActionExecutors,
	observer TransitionObserver,
	logger logger.Interface,
) *ActionService {
	return &ActionService{
		enforcer:          enforcer,
		requests:          requests,
		employees:         employees,
		register:          executors.Register,
		sendForResolution: executors.SendForResolution,
		createResolution:  executors.CreateResolution,
		addStep:           executors.AddStep,
		markDone:          executors.MarkDone,
		observer:          observer,
		logger:            logger,
	}
}

func (s *ActionService) Register(ctx context.Context, actor agency.Actor, requestID uint) (*dto.TransitionResultDTO, error) {
	r, err := s.load(ctx, actor, requestID, agency.PermRegister)
	if err != nil {
		return nil, err
	}
	if r.Status() != vo.StatusNew {
		return s.reject(r, request.OpRegister, "only new requests can be registered"), nil
	}
	return s.register.Execute(ctx, RegisterRequestCommand{RequestID: requestID, ActorUserID: actor.UserID})
}

func (s *ActionService) SendForResolution(ctx context.Context, actor agency.Actor, requestID uint, deputyID *uint) (*dto.TransitionResultDTO, error) {
	r, err := s.load(ctx, actor, requestID, agency.PermSendForResolution)
	if err != nil {
		return nil, err
	}
	if r.Status().In(vo.StatusSentForResolution, vo.StatusAssigned, vo.StatusInProgress, vo.StatusDone) {
		return s.reject(r, request.OpSendForResolution, fmt.Sprintf("request in status %s cannot be sent for resolution", r.Status())), nil
	}
	if err := s.checkDeputy(ctx, deputyID); err != nil {
		return nil, err
	}
	return s.sendForResolution.Execute(ctx, SendForResolutionCommand{
		RequestID:         requestID,
		ActorUserID:       actor.UserID,
		DeputyAssistantID: deputyID,
	})
}

func (s *ActionService) CreateResolution(ctx context.Context, actor agency.Actor, requestID uint, in ResolutionRequest) (*dto.TransitionResultDTO, error) {
	if _, err := s.load(ctx, actor, requestID, agency.PermResolve); err != nil {
		return nil, err
	}
	return s.createResolution.Execute(ctx, CreateResolutionCommand{
		RequestID:          requestID,
		AuthorUserID:       actor.UserID,
		Text:               in.Text,
		TargetDepartmentID: in.TargetDepartmentID,
		TargetEmployeeID:   in.TargetEmployeeID,
		DueDate:            in.DueDate,
	})
}

func (s *ActionService) AddStep(ctx context.Context, actor agency.Actor, requestID uint, text string) (*dto.TransitionResultDTO, error) {
	r, err := s.load(ctx, actor, requestID, agency.PermAddStep)
	if err != nil {
		return nil, err
	}
	if r.IsDone() {
		return s.reject(r, request.OpAddStep, "request is already done"), nil
	}
	return s.addStep.Execute(ctx, AddStepCommand{RequestID: requestID, AuthorUserID: actor.UserID, Text: text})
}

func (s *ActionService) MarkDone(ctx context.Context, actor agency.Actor, requestID uint) (*dto.TransitionResultDTO, error) {
	r, err := s.load(ctx, actor, requestID, agency.PermMarkDone)
	if err != nil {
		return nil, err
	}
	if r.IsDone() {
		return s.reject(r, request.OpMarkDone, "request is already done"), nil
	}
	return s.markDone.Execute(ctx, MarkDoneCommand{RequestID: requestID, ActorUserID: actor.UserID})
}

// load authorizes the action and returns the request if the actor can see it.
// Requests outside the actor's visibility are reported as not found.
func (s *ActionService) load(ctx context.Context, actor agency.Actor, requestID uint, perm string) (*request.Request, error) {
	allowed, err := s.enforcer.Enforce(actor.Role.String(), agency.ResourceRequest, perm)
	if err != nil {
		s.logger.Errorw("permission check failed", "role", actor.Role, "action", perm, "error", err)
		return nil, errors.NewInternalError("permission check failed")
	}
	if !allowed {
		s.logger.Warnw("action denied", "user_id", actor.UserID, "role", actor.Role, "action", perm, "request_id", requestID)
		return nil, errors.NewForbiddenError(fmt.Sprintf("role %s may not %s requests", actor.Role, perm))
	}

	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		s.logger.Errorw("failed to load request", "request_id", requestID, "error", err)
		return nil, errors.NewInternalError("failed to load request")
	}
	if r == nil || !request.VisibleTo(actor).Matches(r) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("request %d not found", requestID))
	}
	return r, nil
}

func (s *ActionService) checkDeputy(ctx context.Context, deputyID *uint) error {
	if deputyID == nil || *deputyID == 0 {
		return errors.NewValidationError("deputy_assistant_id is required")
	}
	emp, err := s.employees.GetByID(ctx, *deputyID)
	if err != nil {
		s.logger.Errorw("failed to load deputy assistant", "employee_id", *deputyID, "error", err)
		return errors.NewInternalError("failed to load deputy assistant")
	}
	if emp == nil || !emp.IsActive() || !emp.HasRole(agency.RoleDeputyAssistant) {
		return errors.NewValidationError(fmt.Sprintf("employee %d is not a deputy assistant", *deputyID))
	}
	return nil
}

func (s *ActionService) reject(r *request.Request, op request.Operation, warning string) *dto.TransitionResultDTO {
	s.logger.Warnw("action rejected", "operation", op, "request_id", r.ID(), "status", r.Status(), "reason", warning)
	if s.observer != nil {
		s.observer.ObserveNoop(op.String(), r.Status().String())
	}
	return &dto.TransitionResultDTO{
		RequestID:  r.ID(),
		PublicID:   r.PublicID(),
		Operation:  op.String(),
		Warning:    warning,
		FromStatus: r.Status().String(),
		Status:     r.Status().String(),
	}
}
