package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adli-inc/adli/internal/application/request/dto"
	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/domain/request"
	"github.com/adli-inc/adli/internal/shared/errors"
)

type CreateResolutionCommand struct {
	RequestID          uint
	AuthorUserID       uint
	Text               string
	TargetDepartmentID *uint
	TargetEmployeeID   *uint
	DueDate            *time.Time
}

type CreateResolutionUseCase struct {
	lifecycle   lifecycle
	employees   agency.EmployeeRepository
	departments agency.DepartmentRepository
}

func NewCreateResolutionUseCase(
	deps LifecycleDeps,
	employees agency.EmployeeRepository,
	departments agency.DepartmentRepository,
) *CreateResolutionUseCase {
	return &CreateResolutionUseCase{
		lifecycle:   newLifecycle(deps),
		employees:   employees,
		departments: departments,
	}
}

func (uc *CreateResolutionUseCase) Execute(ctx context.Context, cmd CreateResolutionCommand) (*dto.TransitionResultDTO, error) {
	log := uc.lifecycle.Logger
	log.Infow("executing create resolution use case",
		"request_id", cmd.RequestID,
		"target_department_id", cmd.TargetDepartmentID,
		"target_employee_id", cmd.TargetEmployeeID)

	if err := uc.validateCommand(cmd); err != nil {
		log.Errorw("invalid create resolution command", "error", err)
		return nil, err
	}

	input, err := uc.resolveTargets(ctx, cmd)
	if err != nil {
		return nil, err
	}

	return uc.lifecycle.run(ctx, cmd.RequestID, request.OpCreateResolution, func(r *request.Request, now time.Time) ([]request.Outcome, error) {
		o, err := r.Resolve(cmd.AuthorUserID, input, now)
		if err != nil {
			return nil, err
		}
		return []request.Outcome{o}, nil
	})
}

// resolveTargets checks that the targets exist and looks up the employee's
// department so the request lands in the right department bucket.
func (uc *CreateResolutionUseCase) resolveTargets(ctx context.Context, cmd CreateResolutionCommand) (request.ResolutionInput, error) {
	input := request.ResolutionInput{
		Text:               cmd.Text,
		TargetDepartmentID: cmd.TargetDepartmentID,
		TargetEmployeeID:   cmd.TargetEmployeeID,
		DueDate:            cmd.DueDate,
	}

	if cmd.TargetEmployeeID != nil {
		emp, err := uc.employees.GetByID(ctx, *cmd.TargetEmployeeID)
		if err != nil {
			uc.lifecycle.Logger.Errorw("failed to load target employee", "employee_id", *cmd.TargetEmployeeID, "error", err)
			return input, errors.NewInternalError("failed to load target employee")
		}
		if emp == nil || !emp.IsActive() {
			return input, errors.NewValidationError(fmt.Sprintf("employee %d not found", *cmd.TargetEmployeeID))
		}
		input.EmployeeDepartmentID = emp.DepartmentID()
	}

	if cmd.TargetDepartmentID != nil {
		dep, err := uc.departments.GetByID(ctx, *cmd.TargetDepartmentID)
		if err != nil {
			uc.lifecycle.Logger.Errorw("failed to load target department", "department_id", *cmd.TargetDepartmentID, "error", err)
			return input, errors.NewInternalError("failed to load target department")
		}
		if dep == nil || !dep.IsActive() {
			return input, errors.NewValidationError(fmt.Sprintf("department %d not found", *cmd.TargetDepartmentID))
		}
	}

	return input, nil
}

func (uc *CreateResolutionUseCase) validateCommand(cmd CreateResolutionCommand) error {
	if cmd.RequestID == 0 {
		return errors.NewValidationError("request ID is required")
	}
	if cmd.AuthorUserID == 0 {
		return errors.NewValidationError("author is required")
	}
	if strings.TrimSpace(cmd.Text) == "" {
		return errors.NewValidationError("resolution text is required")
	}
	return nil
}
