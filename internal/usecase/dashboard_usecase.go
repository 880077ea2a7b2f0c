package usecase

import (
	"context"
	"errors"

	"hiretop/internal/domain/application"
	"hiretop/internal/domain/candidate"
	"hiretop/internal/domain/enterprise"
	"hiretop/internal/domain/job"
	"hiretop/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type CandidateDashboard struct {
	Applications    map[application.Status]int `json:"applications"`
	UnreadMessages  int                        `json:"unread_messages"`
	Recommendations int                        `json:"recommendations"`
}

type EnterpriseDashboard struct {
	OpenOffers     int                        `json:"open_offers"`
	ClosedOffers   int                        `json:"closed_offers"`
	Applications   map[application.Status]int `json:"applications"`
	UnreadMessages int                        `json:"unread_messages"`
}

type DashboardUsecase interface {
	CandidateDashboard(ctx context.Context, userID uuid.UUID) (CandidateDashboard, error)
	EnterpriseDashboard(ctx context.Context, userID uuid.UUID) (EnterpriseDashboard, error)
}

type Dashboard struct {
	candidates      repository.CandidateProfileRepository
	enterprises     repository.EnterpriseProfileRepository
	offers          repository.JobOfferRepository
	applications    repository.JobApplicationRepository
	messages        repository.MessageRepository
	recommendations JobRecommendationUsecase
	logger          *zap.Logger
}

type DashboardDeps struct {
	Candidates      repository.CandidateProfileRepository
	Enterprises     repository.EnterpriseProfileRepository
	Offers          repository.JobOfferRepository
	Applications    repository.JobApplicationRepository
	Messages        repository.MessageRepository
	Recommendations JobRecommendationUsecase
	Logger          *zap.Logger
}

func NewDashboardUsecase(d DashboardDeps) *Dashboard {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{
		candidates:      d.Candidates,
		enterprises:     d.Enterprises,
		offers:          d.Offers,
		applications:    d.Applications,
		messages:        d.Messages,
		recommendations: d.Recommendations,
		logger:          logger,
	}
}

func (u *Dashboard) CandidateDashboard(ctx context.Context, userID uuid.UUID) (CandidateDashboard, error) {
	p, err := u.candidates.GetByUserID(ctx, userID)
	if err != nil {
		return CandidateDashboard{}, profileRequired(err, candidate.ErrNotFound)
	}

	var out CandidateDashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := u.applications.CountByStatus(gctx, repository.ApplicationCountFilter{CandidateID: p.ID})
		out.Applications = counts
		return err
	})
	g.Go(func() error {
		n, err := u.messages.CountUnread(gctx, userID)
		out.UnreadMessages = n
		return err
	})
	g.Go(func() error {
		items, err := u.recommendations.GetRecommendations(gctx, userID)
		if errors.Is(err, ErrSkillProfileEmpty) {
			return nil
		}
		out.Recommendations = len(items)
		return err
	})
	if err := g.Wait(); err != nil {
		u.logger.Error("candidate dashboard failed", zap.String("user_id", userID.String()), zap.Error(err))
		return CandidateDashboard{}, ErrInternal
	}
	return out, nil
}

func (u *Dashboard) EnterpriseDashboard(ctx context.Context, userID uuid.UUID) (EnterpriseDashboard, error) {
	ent, err := u.enterprises.GetByUserID(ctx, userID)
	if err != nil {
		return EnterpriseDashboard{}, profileRequired(err, enterprise.ErrNotFound)
	}

	var out EnterpriseDashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := u.offers.CountByStatus(gctx, ent.ID)
		out.OpenOffers = counts[job.StatusOpen]
		out.ClosedOffers = counts[job.StatusClosed]
		return err
	})
	g.Go(func() error {
		counts, err := u.applications.CountByStatus(gctx, repository.ApplicationCountFilter{EnterpriseID: ent.ID})
		out.Applications = counts
		return err
	})
	g.Go(func() error {
		n, err := u.messages.CountUnread(gctx, userID)
		out.UnreadMessages = n
		return err
	})
	if err := g.Wait(); err != nil {
		u.logger.Error("enterprise dashboard failed", zap.String("user_id", userID.String()), zap.Error(err))
		return EnterpriseDashboard{}, ErrInternal
	}
	return out, nil
}
