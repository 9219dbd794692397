package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/adli-inc/adli/internal/application/request/dto"
	"github.com/adli-inc/adli/internal/domain/request"
	"github.com/adli-inc/adli/internal/shared/errors"
)

type AddStepCommand struct {
	RequestID    uint
	AuthorUserID uint
	Text         string
}

type AddStepUseCase struct {
	lifecycle lifecycle
}

func NewAddStepUseCase(deps LifecycleDeps) *AddStepUseCase {
	return &AddStepUseCase{lifecycle: newLifecycle(deps)}
}

func (uc *AddStepUseCase) Execute(ctx context.Context, cmd AddStepCommand) (*dto.TransitionResultDTO, error) {
	uc.lifecycle.Logger.Infow("executing add step use case", "request_id", cmd.RequestID)

	if cmd.RequestID == 0 {
		return nil, errors.NewValidationError("request ID is required")
	}
	if cmd.AuthorUserID == 0 {
		return nil, errors.NewValidationError("author is required")
	}
	if strings.TrimSpace(cmd.Text) == "" {
		return nil, errors.NewValidationError("step text is required")
	}

	return uc.lifecycle.run(ctx, cmd.RequestID, request.OpAddStep, func(r *request.Request, now time.Time) ([]request.Outcome, error) {
		o, err := r.AddStep(cmd.AuthorUserID, cmd.Text, now)
		if err != nil {
			return nil, err
		}
		return []request.Outcome{o}, nil
	})
}
