package usecase

import (
	"context"
	"errors"
	"strings"

	"hiretop/internal/database/postgres"
	"hiretop/internal/domain/application"
	"hiretop/internal/domain/candidate"
	"hiretop/internal/domain/enterprise"
	"hiretop/internal/domain/job"
	"hiretop/internal/infrastructure/metrics"
	"hiretop/internal/repository"
	"hiretop/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxCoverLetterLength = 5000

// ApplicationStatusEvent is pushed when an application changes stage.
type ApplicationStatusEvent struct {
	ApplicationID  uuid.UUID `json:"application_id"`
	JobOfferID     uuid.UUID `json:"job_offer_id"`
	JobTitle       string    `json:"job_title"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
}

type JobApplicationUsecase interface {
	Apply(ctx context.Context, candidateUserID, offerID uuid.UUID, coverLetter string) (application.Application, error)
	ListMine(ctx context.Context, candidateUserID uuid.UUID) ([]application.Application, error)
	ListForOffer(ctx context.Context, enterpriseUserID, offerID uuid.UUID) ([]application.Application, error)
	ListForEnterprise(ctx context.Context, enterpriseUserID uuid.UUID, status application.Status) ([]application.Application, error)
	UpdateStatus(ctx context.Context, enterpriseUserID, id uuid.UUID, status application.Status) (application.Application, error)
	Withdraw(ctx context.Context, candidateUserID, id uuid.UUID) (application.Application, error)
}

type JobApplication struct {
	applications repository.JobApplicationRepository
	offers       repository.JobOfferRepository
	candidates   repository.CandidateProfileRepository
	enterprises  repository.EnterpriseProfileRepository
	cache        Cache
	notifier     Notifier
	events       EventRecorder
	logger       *zap.Logger
}

type JobApplicationDeps struct {
	Applications repository.JobApplicationRepository
	Offers       repository.JobOfferRepository
	Candidates   repository.CandidateProfileRepository
	Enterprises  repository.EnterpriseProfileRepository
	Cache        Cache
	Notifier     Notifier
	Events       EventRecorder
	Logger       *zap.Logger
}

func NewJobApplicationUsecase(d JobApplicationDeps) *JobApplication {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobApplication{
		applications: d.Applications,
		offers:       d.Offers,
		candidates:   d.Candidates,
		enterprises:  d.Enterprises,
		cache:        cacheOrNoop(d.Cache),
		notifier:     notifierOrNoop(d.Notifier),
		events:       recorderOrNoop(d.Events),
		logger:       logger,
	}
}

func (u *JobApplication) Apply(ctx context.Context, candidateUserID, offerID uuid.UUID, coverLetter string) (application.Application, error) {
	coverLetter = strings.TrimSpace(coverLetter)
	if offerID == uuid.Nil || len([]rune(coverLetter)) > maxCoverLetterLength {
		return application.Application{}, ErrInvalidInput
	}

	p, err := u.candidateOf(ctx, candidateUserID)
	if err != nil {
		return application.Application{}, err
	}

	offer, err := u.offers.GetByID(ctx, offerID)
	if err != nil {
		return application.Application{}, mapOfferErr(err)
	}
	if offer.Status != job.StatusOpen {
		return application.Application{}, ErrJobOfferClosed
	}

	a, err := u.applications.Create(ctx, application.Application{
		ID:           uuid.New(),
		JobOfferID:   offer.ID,
		CandidateID:  p.ID,
		EnterpriseID: offer.EnterpriseID,
		Status:       application.StatusPending,
		CoverLetter:  coverLetter,
	})
	if err != nil {
		if postgres.IsUniqueViolation(err, repository.ConstraintApplicationUnique) {
			return application.Application{}, ErrAlreadyApplied
		}
		if postgres.IsForeignKeyViolation(err) {
			// The offer was deleted after it was read.
			return application.Application{}, ErrJobOfferNotFound
		}
		u.logger.Error("create application failed", zap.String("job_offer_id", offerID.String()), zap.Error(err))
		return application.Application{}, ErrInternal
	}

	// Applied offers drop out of the candidate's recommendations.
	_ = u.cache.Delete(ctx, recommendationsKey(candidateUserID))
	u.events.Event(metrics.EventApplicationCreated)
	return a, nil
}

func (u *JobApplication) ListMine(ctx context.Context, candidateUserID uuid.UUID) ([]application.Application, error) {
	p, err := u.candidateOf(ctx, candidateUserID)
	if err != nil {
		return nil, err
	}
	items, err := u.applications.ListByCandidate(ctx, p.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *JobApplication) ListForOffer(ctx context.Context, enterpriseUserID, offerID uuid.UUID) ([]application.Application, error) {
	ent, err := u.enterpriseOf(ctx, enterpriseUserID)
	if err != nil {
		return nil, err
	}
	offer, err := u.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, mapOfferErr(err)
	}
	if offer.EnterpriseID != ent.ID {
		return nil, ErrForbidden
	}
	items, err := u.applications.ListByOffer(ctx, offer.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *JobApplication) ListForEnterprise(ctx context.Context, enterpriseUserID uuid.UUID, status application.Status) ([]application.Application, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidInput
	}
	ent, err := u.enterpriseOf(ctx, enterpriseUserID)
	if err != nil {
		return nil, err
	}
	items, err := u.applications.ListByEnterprise(ctx, ent.ID, status)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// UpdateStatus moves an application forward on behalf of the enterprise that
// received it and notifies the candidate.
func (u *JobApplication) UpdateStatus(ctx context.Context, enterpriseUserID, id uuid.UUID, status application.Status) (application.Application, error) {
	if !status.Valid() {
		return application.Application{}, ErrInvalidInput
	}

	ent, err := u.enterpriseOf(ctx, enterpriseUserID)
	if err != nil {
		return application.Application{}, err
	}
	a, err := u.get(ctx, id)
	if err != nil {
		return application.Application{}, err
	}
	if a.EnterpriseID != ent.ID {
		return application.Application{}, ErrForbidden
	}
	if !application.CanTransition(a.Status, status) {
		return application.Application{}, ErrInvalidStatusTransition
	}

	updated, err := u.transition(ctx, a, status)
	if err != nil {
		return application.Application{}, err
	}
	u.notifyStatus(a.CandidateUser, a.Status, updated)
	return updated, nil
}

// Withdraw lets the candidate pull an application that is still open.
func (u *JobApplication) Withdraw(ctx context.Context, candidateUserID, id uuid.UUID) (application.Application, error) {
	p, err := u.candidateOf(ctx, candidateUserID)
	if err != nil {
		return application.Application{}, err
	}
	a, err := u.get(ctx, id)
	if err != nil {
		return application.Application{}, err
	}
	if a.CandidateID != p.ID {
		return application.Application{}, ErrForbidden
	}
	if a.Status.Terminal() {
		return application.Application{}, ErrInvalidStatusTransition
	}

	updated, err := u.transition(ctx, a, application.StatusWithdrawn)
	if err != nil {
		return application.Application{}, err
	}

	if ent, err := u.enterprises.GetByID(ctx, a.EnterpriseID); err == nil {
		u.notifyStatus(ent.UserID, a.Status, updated)
	} else {
		u.logger.Warn("withdraw notification skipped", zap.String("enterprise_id", a.EnterpriseID.String()), zap.Error(err))
	}
	return updated, nil
}

func (u *JobApplication) transition(ctx context.Context, a application.Application, to application.Status) (application.Application, error) {
	updated, err := u.applications.UpdateStatus(ctx, a.ID, a.Status, to)
	if err != nil {
		// Zero rows means another request moved it first.
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrInvalidStatusTransition
		}
		u.logger.Error("update application status failed", zap.String("application_id", a.ID.String()), zap.Error(err))
		return application.Application{}, ErrInternal
	}
	u.events.Event(metrics.EventApplicationStatus)
	return updated, nil
}

func (u *JobApplication) notifyStatus(userID uuid.UUID, prev application.Status, a application.Application) {
	if userID == uuid.Nil {
		return
	}
	u.notifier.Notify(userID, ws.EventApplicationStatus, ApplicationStatusEvent{
		ApplicationID:  a.ID,
		JobOfferID:     a.JobOfferID,
		JobTitle:       a.JobTitle,
		PreviousStatus: string(prev),
		Status:         string(a.Status),
	})
}

func (u *JobApplication) get(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := u.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}
	return a, nil
}

func (u *JobApplication) candidateOf(ctx context.Context, userID uuid.UUID) (candidate.Profile, error) {
	p, err := u.candidates.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return candidate.Profile{}, ErrProfileRequired
		}
		return candidate.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *JobApplication) enterpriseOf(ctx context.Context, userID uuid.UUID) (enterprise.Profile, error) {
	ent, err := u.enterprises.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, enterprise.ErrNotFound) {
			return enterprise.Profile{}, ErrProfileRequired
		}
		return enterprise.Profile{}, ErrInternal
	}
	return ent, nil
}
