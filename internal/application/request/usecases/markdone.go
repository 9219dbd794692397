package usecases

import (
	"context"
	"time"

	"github.com/adli-inc/adli/internal/application/request/dto"
	"github.com/adli-inc/adli/internal/domain/request"
	"github.com/adli-inc/adli/internal/shared/errors"
)

type MarkDoneCommand struct {
	RequestID   uint
	ActorUserID uint
}

type MarkDoneUseCase struct {
	lifecycle lifecycle
}

func NewMarkDoneUseCase(deps LifecycleDeps) *MarkDoneUseCase {
	return &MarkDoneUseCase{lifecycle: newLifecycle(deps)}
}

func (uc *MarkDoneUseCase) Execute(ctx context.Context, cmd MarkDoneCommand) (*dto.TransitionResultDTO, error) {
	uc.lifecycle.Logger.Infow("executing mark done use case", "request_id", cmd.RequestID)

	if cmd.RequestID == 0 {
		return nil, errors.NewValidationError("request ID is required")
	}

	return uc.lifecycle.run(ctx, cmd.RequestID, request.OpMarkDone, func(r *request.Request, now time.Time) ([]request.Outcome, error) {
		return []request.Outcome{r.MarkDone(actorRef(cmd.ActorUserID), now)}, nil
	})
}
