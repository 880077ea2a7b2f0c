package usecase

import (
	"context"
	"errors"

	"hiretop/internal/domain/candidate"
	"hiretop/internal/domain/job"
	"hiretop/internal/infrastructure/metrics"
	"hiretop/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecommendationLimit caps how many offers a candidate is shown.
const RecommendationLimit = 3

type JobRecommendationUsecase interface {
	GetRecommendations(ctx context.Context, candidateUserID uuid.UUID) ([]job.Offer, error)
}

type JobRecommendation struct {
	offers     repository.JobOfferRepository
	candidates repository.CandidateProfileRepository
	cache      Cache
	events     EventRecorder
	logger     *zap.Logger
}

func NewJobRecommendationUsecase(
	offers repository.JobOfferRepository,
	candidates repository.CandidateProfileRepository,
	cache Cache,
	events EventRecorder,
	logger *zap.Logger,
) *JobRecommendation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobRecommendation{
		offers:     offers,
		candidates: candidates,
		cache:      cacheOrNoop(cache),
		events:     recorderOrNoop(events),
		logger:     logger,
	}
}

const recommendationsPrefix = "recommendations:v1:"

func recommendationsKey(candidateUserID uuid.UUID) string {
	return recommendationsPrefix + candidateUserID.String()
}

// GetRecommendations returns up to RecommendationLimit open offers sharing a
// skill with the candidate, newest first, leaving out offers the candidate
// already applied to.
func (u *JobRecommendation) GetRecommendations(ctx context.Context, candidateUserID uuid.UUID) ([]job.Offer, error) {
	key := recommendationsKey(candidateUserID)

	var cached []job.Offer
	if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		u.events.Event(metrics.EventRecommendationsHit)
		return cached, nil
	}
	u.events.Event(metrics.EventRecommendationsMiss)

	p, err := u.candidates.GetByUserID(ctx, candidateUserID)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return nil, ErrProfileRequired
		}
		return nil, ErrInternal
	}
	if len(p.Skills) == 0 {
		return nil, ErrSkillProfileEmpty
	}

	items, err := u.offers.ListBySkills(ctx, p.Skills, p.ID, RecommendationLimit)
	if err != nil {
		u.logger.Error("recommendation query failed", zap.String("candidate_id", p.ID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	if items == nil {
		items = []job.Offer{}
	}

	if err := u.cache.SetJSON(ctx, key, items, 0); err != nil {
		u.logger.Debug("recommendations cache set failed", zap.String("key", key), zap.Error(err))
	}
	return items, nil
}
