package usecases

import (
	"context"
	"time"

	"github.com/adli-inc/adli/internal/application/request/dto"
	"github.com/adli-inc/adli/internal/domain/request"
	"github.com/adli-inc/adli/internal/shared/errors"
)

type RegisterRequestCommand struct {
	RequestID   uint
	ActorUserID uint
}

type RegisterRequestUseCase struct {
	lifecycle lifecycle
}

func NewRegisterRequestUseCase(deps LifecycleDeps) *RegisterRequestUseCase {
	return &RegisterRequestUseCase{lifecycle: newLifecycle(deps)}
}

func (uc *RegisterRequestUseCase) Execute(ctx context.Context, cmd RegisterRequestCommand) (*dto.TransitionResultDTO, error) {
	uc.lifecycle.Logger.Infow("executing register request use case", "request_id", cmd.RequestID)

	if cmd.RequestID == 0 {
		return nil, errors.NewValidationError("request ID is required")
	}

	return uc.lifecycle.run(ctx, cmd.RequestID, request.OpRegister, func(r *request.Request, now time.Time) ([]request.Outcome, error) {
		return []request.Outcome{r.Register(actorRef(cmd.ActorUserID), now)}, nil
	})
}

// actorRef maps the zero user to an unattributed history row.
func actorRef(userID uint) *uint {
	if userID == 0 {
		return nil
	}
	return &userID
}
