package usecases

import (
	"context"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"

	"github.com/adli-inc/adli/internal/application/request/dto"
	"github.com/adli-inc/adli/internal/domain/company"
	"github.com/adli-inc/adli/internal/domain/request"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/shared/constants"
	"github.com/adli-inc/adli/internal/shared/errors"
	"github.com/adli-inc/adli/internal/shared/logger"
	"github.com/adli-inc/adli/internal/shared/utils"
)

func init() {
	err := utils.Validator().RegisterValidation("public_id", func(fl validator.FieldLevel) bool {
		_, _, err := request.ParsePublicID(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic("usecases: register public_id validation: " + err.Error())
	}
}

// TrackRequestQuery identifies a request by its tracking number. The INN
// must match the submitting company.
type TrackRequestQuery struct {
	INN      string       `json:"inn" validate:"required"`
	PublicID string       `json:"public_id" validate:"required,public_id"`
	Language language.Tag `json:"-" validate:"-"`
}

type PublicHistoryQuery = TrackRequestQuery

type PublicHistoryExecutor interface {
	History(ctx context.Context, query PublicHistoryQuery) ([]dto.PublicHistoryEntryDTO, error)
}

type TrackRequestUseCase struct {
	requests  request.Repository
	companies company.Repository
	history   request.HistoryRepository
	logger    logger.Interface
}

func NewTrackRequestUseCase(
	requests request.Repository,
	companies company.Repository,
	history request.HistoryRepository,
	logger logger.Interface,
) *TrackRequestUseCase {
	return &TrackRequestUseCase{
		requests:  requests,
		companies: companies,
		history:   history,
		logger:    logger,
	}
}

func (uc *TrackRequestUseCase) Execute(ctx context.Context, query TrackRequestQuery) (*dto.TrackDTO, error) {
	r, entries, err := uc.locate(ctx, query)
	if err != nil {
		return nil, err
	}
	return dto.ToTrackDTO(query.Language, r, entries), nil
}

// History returns only the public part of the audit trail, newest first.
func (uc *TrackRequestUseCase) History(ctx context.Context, query PublicHistoryQuery) ([]dto.PublicHistoryEntryDTO, error) {
	_, entries, err := uc.locate(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PublicHistoryEntryDTO, 0, len(entries))
	for _, h := range entries {
		out = append(out, dto.ToPublicHistoryEntryDTO(query.Language, h))
	}
	return out, nil
}

// locate resolves the tracking pair. A wrong INN is indistinguishable from
// an unknown number.
func (uc *TrackRequestUseCase) locate(ctx context.Context, query TrackRequestQuery) (*request.Request, []*request.HistoryEntry, error) {
	query.INN = company.NormalizeINN(query.INN)
	if err := utils.ValidateStruct(query); err != nil {
		return nil, nil, err
	}

	year, seq, _ := request.ParsePublicID(query.PublicID)
	publicID := request.FormatPublicID(year, seq)
	uc.logger.Infow("tracking request", "public_id", publicID)

	r, err := uc.requests.GetByPublicID(ctx, publicID)
	if err != nil {
		uc.logger.Errorw("failed to get request by public ID", "public_id", publicID, "error", err)
		return nil, nil, errors.NewInternalError("failed to get request")
	}
	if r == nil {
		return nil, nil, errors.NewNotFoundError(constants.ErrMsgRequestNotFound)
	}

	c, err := uc.companies.GetByID(ctx, r.CompanyID())
	if err != nil {
		uc.logger.Errorw("failed to get company", "company_id", r.CompanyID(), "error", err)
		return nil, nil, errors.NewInternalError("failed to get request")
	}
	if c == nil || c.INN() != query.INN {
		uc.logger.Warnw("tracking INN mismatch", "public_id", publicID)
		return nil, nil, errors.NewNotFoundError(constants.ErrMsgRequestNotFound)
	}

	entries, err := uc.history.ListByRequest(ctx, r.ID(), vo.PublicActions())
	if err != nil {
		uc.logger.Errorw("failed to list request history", "request_id", r.ID(), "error", err)
		return nil, nil, errors.NewInternalError("failed to get request history")
	}
	return r, entries, nil
}
