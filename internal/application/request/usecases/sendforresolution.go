package usecases

import (
	"context"
	"time"

	"github.com/adli-inc/adli/internal/application/request/dto"
	"github.com/adli-inc/adli/internal/domain/request"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/shared/errors"
)

type SendForResolutionCommand struct {
	RequestID         uint
	ActorUserID       uint
	DeputyAssistantID *uint
}

type SendForResolutionUseCase struct {
	lifecycle lifecycle
}

func NewSendForResolutionUseCase(deps LifecycleDeps) *SendForResolutionUseCase {
	return &SendForResolutionUseCase{lifecycle: newLifecycle(deps)}
}

// Execute registers a new request on the way, so the audit trail always
// shows registration before routing.
func (uc *SendForResolutionUseCase) Execute(ctx context.Context, cmd SendForResolutionCommand) (*dto.TransitionResultDTO, error) {
	uc.lifecycle.Logger.Infow("executing send for resolution use case",
		"request_id", cmd.RequestID,
		"deputy_assistant_id", cmd.DeputyAssistantID)

	if cmd.RequestID == 0 {
		return nil, errors.NewValidationError("request ID is required")
	}

	return uc.lifecycle.run(ctx, cmd.RequestID, request.OpSendForResolution, func(r *request.Request, now time.Time) ([]request.Outcome, error) {
		actor := actorRef(cmd.ActorUserID)
		var outcomes []request.Outcome
		if r.Status() == vo.StatusNew {
			outcomes = append(outcomes, r.Register(actor, now))
		}
		return append(outcomes, r.SendForResolution(actor, cmd.DeputyAssistantID, now)), nil
	})
}
