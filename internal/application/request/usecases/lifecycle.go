package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/adli-inc/adli/internal/application/request/dto"
	"github.com/adli-inc/adli/internal/domain/request"
	"github.com/adli-inc/adli/internal/shared/biztime"
	"github.com/adli-inc/adli/internal/shared/errors"
	"github.com/adli-inc/adli/internal/shared/logger"
)

// LifecycleDeps is shared by every state-changing use case.
type LifecycleDeps struct {
	TxManager   TransactionManager
	Requests    request.Repository
	History     request.HistoryRepository
	Resolutions request.ResolutionRepository
	Steps       request.StepRepository
	Observer    TransitionObserver
	Counts      CountCache
	Clock       biztime.Clock
	Logger      logger.Interface
}

// mutation applies one or more domain operations to a locked request.
type mutation func(r *request.Request, now time.Time) ([]request.Outcome, error)

// lifecycle runs a mutation in one transaction: lock the row, apply the
// domain operation, then persist the request and everything the outcomes
// produced. A no-op outcome writes nothing.
type lifecycle struct {
	LifecycleDeps
}

func newLifecycle(deps LifecycleDeps) lifecycle {
	if deps.Clock == nil {
		deps.Clock = biztime.SystemClock()
	}
	return lifecycle{LifecycleDeps: deps}
}

func (l lifecycle) run(ctx context.Context, requestID uint, op request.Operation, mutate mutation) (*dto.TransitionResultDTO, error) {
	var (
		req      *request.Request
		outcomes []request.Outcome
	)

	err := l.TxManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		r, err := l.Requests.GetByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}
		if r == nil {
			return errors.NewNotFoundError(fmt.Sprintf("request %d not found", requestID))
		}
		req = r

		outcomes, err = mutate(r, l.Clock.Now())
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if !anyApplied(outcomes) {
			return nil
		}

		if err := l.Requests.Update(txCtx, r); err != nil {
			return err
		}
		for _, o := range outcomes {
			if err := l.persist(txCtx, o); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		l.Logger.Errorw("lifecycle operation failed", "operation", op, "request_id", requestID, "error", err)
		return nil, errors.NewInternalError(fmt.Sprintf("failed to %s", humanize(op)))
	}

	l.observe(ctx, outcomes)
	final := outcomes[len(outcomes)-1]
	if final.Applied {
		l.Logger.Infow("lifecycle operation applied",
			"operation", op,
			"request_id", requestID,
			"from", outcomes[0].From,
			"to", final.To)
	} else {
		l.Logger.Warnw("lifecycle operation skipped", "operation", op, "request_id", requestID, "reason", final.Warning)
	}

	result := dto.ToTransitionResultDTO(req, final)
	result.FromStatus = outcomes[0].From.String()
	return result, nil
}

func (l lifecycle) persist(ctx context.Context, o request.Outcome) error {
	if !o.Applied {
		return nil
	}
	if o.Resolution != nil {
		if err := l.Resolutions.Create(ctx, o.Resolution); err != nil {
			return err
		}
	}
	if o.Step != nil {
		if err := l.Steps.Create(ctx, o.Step); err != nil {
			return err
		}
	}
	return l.History.Append(ctx, o.History...)
}

// observe reports metrics and drops cached counters. Both happen after
// commit and never fail the operation.
func (l lifecycle) observe(ctx context.Context, outcomes []request.Outcome) {
	for _, o := range outcomes {
		if l.Observer == nil {
			break
		}
		if o.Applied {
			l.Observer.ObserveTransition(o.Operation.String(), o.From.String(), o.To.String())
		} else {
			l.Observer.ObserveNoop(o.Operation.String(), o.From.String())
		}
	}
	if l.Counts != nil && anyApplied(outcomes) {
		if err := l.Counts.Invalidate(ctx); err != nil {
			l.Logger.Warnw("failed to invalidate bucket counts", "error", err)
		}
	}
}

func anyApplied(outcomes []request.Outcome) bool {
	for _, o := range outcomes {
		if o.Applied {
			return true
		}
	}
	return false
}

func humanize(op request.Operation) string {
	switch op {
	case request.OpRegister:
		return "register request"
	case request.OpSendForResolution:
		return "send request for resolution"
	case request.OpCreateResolution:
		return "create resolution"
	case request.OpAddStep:
		return "add step"
	case request.OpMarkDone:
		return "mark request done"
	}
	return string(op)
}
