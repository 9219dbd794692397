package usecases

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"github.com/adli-inc/adli/internal/application/request/dto"
	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/domain/request"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/shared/biztime"
	"github.com/adli-inc/adli/internal/shared/constants"
	"github.com/adli-inc/adli/internal/shared/errors"
	"github.com/adli-inc/adli/internal/shared/logger"
)

// CompanyNames resolves company IDs to display names in one query.
type CompanyNames interface {
	GetNames(ctx context.Context, ids []uint) (map[uint]string, error)
}

type ListRequestsQuery struct {
	Actor    agency.Actor
	Bucket   string
	Query    string
	Status   string
	Overdue  bool
	Page     int
	PageSize int
	Language language.Tag
}

type ListRequestsResult struct {
	Bucket   string                   `json:"bucket"`
	Items    []dto.RequestListItemDTO `json:"items"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
}

type ListRequestsUseCase struct {
	requests  request.Repository
	companies CompanyNames
	clock     biztime.Clock
	logger    logger.Interface
}

func NewListRequestsUseCase(requests request.Repository, companies CompanyNames, clock biztime.Clock, logger logger.Interface) *ListRequestsUseCase {
	if clock == nil {
		clock = biztime.SystemClock()
	}
	return &ListRequestsUseCase{
		requests:  requests,
		companies: companies,
		clock:     clock,
		logger:    logger,
	}
}

func (uc *ListRequestsUseCase) Execute(ctx context.Context, query ListRequestsQuery) (*ListRequestsResult, error) {
	bucket := vo.ParseBucket(query.Bucket)
	uc.logger.Infow("executing list requests use case",
		"user_id", query.Actor.UserID,
		"role", query.Actor.Role,
		"bucket", bucket,
		"page", query.Page)

	filter, err := uc.buildFilter(query, bucket)
	if err != nil {
		return nil, err
	}

	items, total, err := uc.requests.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list requests", "error", err)
		return nil, errors.NewInternalError("failed to list requests")
	}

	names, err := uc.companyNames(ctx, items)
	if err != nil {
		uc.logger.Errorw("failed to load company names", "error", err)
		return nil, errors.NewInternalError("failed to list requests")
	}

	today := biztime.DateOf(uc.clock.Now())
	out := make([]dto.RequestListItemDTO, 0, len(items))
	for _, r := range items {
		out = append(out, dto.ToRequestListItemDTO(query.Language, r, names[r.CompanyID()], today))
	}

	return &ListRequestsResult{
		Bucket:   bucket.String(),
		Items:    out,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (uc *ListRequestsUseCase) buildFilter(query ListRequestsQuery, bucket vo.Bucket) (request.ListFilter, error) {
	filter := request.ListFilter{
		Scope:    request.ScopeFor(query.Actor, bucket),
		Query:    query.Query,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = constants.DefaultPage
	}
	if filter.PageSize < 1 {
		filter.PageSize = constants.DefaultPageSize
	}
	if filter.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.MaxPageSize
	}

	if query.Status != "" {
		status, err := vo.NewRequestStatus(query.Status)
		if err != nil {
			return filter, errors.NewValidationError(fmt.Sprintf("unknown status %q", query.Status))
		}
		filter.Status = &status
	}
	if query.Overdue {
		today := biztime.DateOf(uc.clock.Now())
		filter.OverdueOn = &today
	}
	return filter, nil
}

func (uc *ListRequestsUseCase) companyNames(ctx context.Context, items []*request.Request) (map[uint]string, error) {
	if len(items) == 0 {
		return map[uint]string{}, nil
	}
	seen := make(map[uint]bool, len(items))
	ids := make([]uint, 0, len(items))
	for _, r := range items {
		if !seen[r.CompanyID()] {
			seen[r.CompanyID()] = true
			ids = append(ids, r.CompanyID())
		}
	}
	return uc.companies.GetNames(ctx, ids)
}
