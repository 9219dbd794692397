package request

import (
	"context"

	"github.com/adli-inc/adli/internal/application/request/dto"
	"github.com/adli-inc/adli/internal/application/request/usecases"
	"github.com/adli-inc/adli/internal/domain/agency"
)

// ActionService is satisfied by *usecases.ActionService.
type ActionService interface {
	Register(ctx context.Context, actor agency.Actor, requestID uint) (*dto.TransitionResultDTO, error)
	SendForResolution(ctx context.Context, actor agency.Actor, requestID uint, deputyID *uint) (*dto.TransitionResultDTO, error)
	CreateResolution(ctx context.Context, actor agency.Actor, requestID uint, in usecases.ResolutionRequest) (*dto.TransitionResultDTO, error)
	AddStep(ctx context.Context, actor agency.Actor, requestID uint, text string) (*dto.TransitionResultDTO, error)
	MarkDone(ctx context.Context, actor agency.Actor, requestID uint) (*dto.TransitionResultDTO, error)
}
