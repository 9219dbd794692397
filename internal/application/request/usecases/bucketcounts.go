package usecases

import (
	"context"

	"github.com/adli-inc/adli/internal/application/request/dto"
	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/domain/request"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/shared/errors"
	"github.com/adli-inc/adli/internal/shared/logger"
)

type BucketCountsQuery struct {
	Actor agency.Actor
}

// BucketCountsUseCase counts the actor's visible requests per bucket. The
// cache is optional; cache failures fall through to the database.
type BucketCountsUseCase struct {
	requests request.Repository
	cache    CountCache
	logger   logger.Interface
}

func NewBucketCountsUseCase(requests request.Repository, cache CountCache, logger logger.Interface) *BucketCountsUseCase {
	return &BucketCountsUseCase{requests: requests, cache: cache, logger: logger}
}

func (uc *BucketCountsUseCase) Execute(ctx context.Context, query BucketCountsQuery) (*dto.BucketCountsDTO, error) {
	if counts := uc.cached(ctx, query.Actor); counts != nil {
		out := dto.ToBucketCountsDTO(counts)
		return &out, nil
	}

	counts := make(map[vo.Bucket]int64, len(request.CountBuckets))
	for _, b := range request.CountBuckets {
		n, err := uc.requests.Count(ctx, request.ScopeFor(query.Actor, b))
		if err != nil {
			uc.logger.Errorw("failed to count requests", "bucket", b, "user_id", query.Actor.UserID, "error", err)
			return nil, errors.NewInternalError("failed to count requests")
		}
		counts[b] = n
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, query.Actor, counts); err != nil {
			uc.logger.Warnw("failed to cache bucket counts", "user_id", query.Actor.UserID, "error", err)
		}
	}

	out := dto.ToBucketCountsDTO(counts)
	return &out, nil
}

func (uc *BucketCountsUseCase) cached(ctx context.Context, actor agency.Actor) map[vo.Bucket]int64 {
	if uc.cache == nil {
		return nil
	}
	counts, err := uc.cache.Get(ctx, actor)
	if err != nil {
		uc.logger.Warnw("failed to read cached bucket counts", "user_id", actor.UserID, "error", err)
		return nil
	}
	return counts
}
