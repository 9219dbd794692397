package usecases

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"github.com/adli-inc/adli/internal/application/request/dto"
	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/domain/company"
	"github.com/adli-inc/adli/internal/domain/request"
	"github.com/adli-inc/adli/internal/shared/biztime"
	"github.com/adli-inc/adli/internal/shared/errors"
	"github.com/adli-inc/adli/internal/shared/logger"
)

type GetRequestQuery struct {
	Actor     agency.Actor
	RequestID uint
	Language  language.Tag
}

// GetRequestUseCase loads the full case file. Requests the actor cannot
// see are reported as not found.
type GetRequestUseCase struct {
	requests    request.Repository
	companies   company.Repository
	history     request.HistoryRepository
	resolutions request.ResolutionRepository
	steps       request.StepRepository
	files       request.FileRepository
	text        TextService
	clock       biztime.Clock
	logger      logger.Interface
}

type GetRequestDeps struct {
	Requests    request.Repository
	Companies   company.Repository
	History     request.HistoryRepository
	Resolutions request.ResolutionRepository
	Steps       request.StepRepository
	Files       request.FileRepository
	Text        TextService
	Clock       biztime.Clock
	Logger      logger.Interface
}

func NewGetRequestUseCase(deps GetRequestDeps) *GetRequestUseCase {
	if deps.Clock == nil {
		deps.Clock = biztime.SystemClock()
	}
	return &GetRequestUseCase{
		requests:    deps.Requests,
		companies:   deps.Companies,
		history:     deps.History,
		resolutions: deps.Resolutions,
		steps:       deps.Steps,
		files:       deps.Files,
		text:        deps.Text,
		clock:       deps.Clock,
		logger:      deps.Logger,
	}
}

func (uc *GetRequestUseCase) Execute(ctx context.Context, query GetRequestQuery) (*dto.RequestDTO, error) {
	if query.RequestID == 0 {
		return nil, errors.NewValidationError("request ID is required")
	}

	r, err := uc.requests.GetByID(ctx, query.RequestID)
	if err != nil {
		uc.logger.Errorw("failed to get request", "request_id", query.RequestID, "error", err)
		return nil, errors.NewInternalError("failed to get request")
	}
	if r == nil || !request.VisibleTo(query.Actor).Matches(r) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("request %d not found", query.RequestID))
	}

	out, err := uc.assemble(ctx, query.Language, r)
	if err != nil {
		uc.logger.Errorw("failed to load request details", "request_id", r.ID(), "error", err)
		return nil, errors.NewInternalError("failed to get request")
	}
	return out, nil
}

func (uc *GetRequestUseCase) assemble(ctx context.Context, tag language.Tag, r *request.Request) (*dto.RequestDTO, error) {
	var companyName string
	c, err := uc.companies.GetByID(ctx, r.CompanyID())
	if err != nil {
		return nil, err
	}
	if c != nil {
		companyName = c.Name()
	}

	out := dto.ToRequestDTO(tag, r, companyName, biztime.DateOf(uc.clock.Now()))

	resolutions, err := uc.resolutions.ListByRequest(ctx, r.ID())
	if err != nil {
		return nil, err
	}
	for _, res := range resolutions {
		out.Resolutions = append(out.Resolutions, dto.ToResolutionDTO(res, uc.render(res.Text())))
	}

	steps, err := uc.steps.ListByRequest(ctx, r.ID())
	if err != nil {
		return nil, err
	}
	for _, s := range steps {
		out.Steps = append(out.Steps, dto.ToStepDTO(s, uc.render(s.Text())))
	}

	files, err := uc.files.ListByRequest(ctx, r.ID())
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		out.Files = append(out.Files, dto.ToFileDTO(f))
	}

	history, err := uc.history.ListByRequest(ctx, r.ID(), nil)
	if err != nil {
		return nil, err
	}
	for _, h := range history {
		out.History = append(out.History, dto.ToHistoryEntryDTO(tag, h))
	}
	return out, nil
}

// render falls back to empty HTML; the raw text is always returned.
func (uc *GetRequestUseCase) render(text string) string {
	html, err := uc.text.ToHTMLSanitized(text)
	if err != nil {
		uc.logger.Warnw("failed to render text", "error", err)
		return ""
	}
	return html
}
