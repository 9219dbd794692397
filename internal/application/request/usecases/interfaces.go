package usecases

import (
	"context"

	"github.com/adli-inc/adli/internal/application/request/dto"
	"github.com/adli-inc/adli/internal/domain/agency"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
)

type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransitionObserver receives one call per lifecycle operation after commit.
type TransitionObserver interface {
	ObserveTransition(operation, from, to string)
	ObserveNoop(operation, status string)
}

type IntakeObserver interface {
	ObserveIntake()
}

// CountCache holds per-actor bucket counters.
type CountCache interface {
	Get(ctx context.Context, actor agency.Actor) (map[vo.Bucket]int64, error)
	Set(ctx context.Context, actor agency.Actor, counts map[vo.Bucket]int64) error
	Invalidate(ctx context.Context) error
}

// ReceiptNotice is sent to the requester once intake commits.
type ReceiptNotice struct {
	Email       string
	FullName    string
	CompanyName string
	PublicID    string
}

type ReceiptNotifier interface {
	NotifyReceipt(ctx context.Context, notice ReceiptNotice) error
}

type TextService interface {
	PlainText(input string) string
	ToHTMLSanitized(markdown string) (string, error)
}

type CreatePublicRequestExecutor interface {
	Execute(ctx context.Context, cmd CreatePublicRequestCommand) (*dto.CreatedRequestDTO, error)
}

type RegisterRequestExecutor interface {
	Execute(ctx context.Context, cmd RegisterRequestCommand) (*dto.TransitionResultDTO, error)
}

type SendForResolutionExecutor interface {
	Execute(ctx context.Context, cmd SendForResolutionCommand) (*dto.TransitionResultDTO, error)
}

type CreateResolutionExecutor interface {
	Execute(ctx context.Context, cmd CreateResolutionCommand) (*dto.TransitionResultDTO, error)
}

type AddStepExecutor interface {
	Execute(ctx context.Context, cmd AddStepCommand) (*dto.TransitionResultDTO, error)
}

type MarkDoneExecutor interface {
	Execute(ctx context.Context, cmd MarkDoneCommand) (*dto.TransitionResultDTO, error)
}

type TrackRequestExecutor interface {
	Execute(ctx context.Context, query TrackRequestQuery) (*dto.TrackDTO, error)
}

type ListRequestsExecutor interface {
	Execute(ctx context.Context, query ListRequestsQuery) (*ListRequestsResult, error)
}

type BucketCountsExecutor interface {
	Execute(ctx context.Context, query BucketCountsQuery) (*dto.BucketCountsDTO, error)
}

type GetRequestExecutor interface {
	Execute(ctx context.Context, query GetRequestQuery) (*dto.RequestDTO, error)
}
