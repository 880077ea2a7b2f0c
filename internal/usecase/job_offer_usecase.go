package usecase

import (
	"context"
	"errors"
	"strings"

	"hiretop/internal/domain/candidate"
	"hiretop/internal/domain/enterprise"
	"hiretop/internal/domain/job"
	"hiretop/internal/infrastructure/metrics"
	"hiretop/internal/pkg/validation"
	"hiretop/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultJobListLimit = 20
	MaxJobListLimit     = 50
)

type JobOfferInput struct {
	Title        string   `json:"title" validate:"notblank,max=160"`
	Description  string   `json:"description" validate:"notblank,max=10000"`
	Location     string   `json:"location" validate:"notblank,max=120"`
	ContractType string   `json:"contract_type" validate:"required,oneof=full_time part_time internship freelance temporary"`
	Salary       string   `json:"salary" validate:"max=120"`
	Skills       []string `json:"skills" validate:"max=30,dive,max=60"`
}

type JobOfferPatch struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Location     *string  `json:"location"`
	ContractType *string  `json:"contract_type"`
	Salary       *string  `json:"salary"`
	Skills       []string `json:"skills"`
}

type JobOfferUsecase interface {
	Create(ctx context.Context, enterpriseUserID uuid.UUID, in JobOfferInput) (job.Offer, error)
	Get(ctx context.Context, id uuid.UUID) (job.Offer, error)
	List(ctx context.Context, f job.Filter) ([]job.Offer, error)
	ListMine(ctx context.Context, enterpriseUserID uuid.UUID, limit, offset int) ([]job.Offer, error)
	Update(ctx context.Context, enterpriseUserID, id uuid.UUID, in JobOfferPatch) (job.Offer, error)
	Close(ctx context.Context, enterpriseUserID, id uuid.UUID) (job.Offer, error)
	Delete(ctx context.Context, enterpriseUserID, id uuid.UUID) error
}

type JobOffer struct {
	offers      repository.JobOfferRepository
	enterprises repository.EnterpriseProfileRepository
	cache       Cache
	events      EventRecorder
	logger      *zap.Logger
}

func NewJobOfferUsecase(
	offers repository.JobOfferRepository,
	enterprises repository.EnterpriseProfileRepository,
	cache Cache,
	events EventRecorder,
	logger *zap.Logger,
) *JobOffer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobOffer{
		offers:      offers,
		enterprises: enterprises,
		cache:       cacheOrNoop(cache),
		events:      recorderOrNoop(events),
		logger:      logger,
	}
}

func jobOfferKey(id uuid.UUID) string {
	return "job_offer:v1:" + id.String()
}

func (u *JobOffer) Create(ctx context.Context, enterpriseUserID uuid.UUID, in JobOfferInput) (job.Offer, error) {
	in.ContractType = strings.ToLower(strings.TrimSpace(in.ContractType))
	if err := validation.Struct(in); err != nil {
		return job.Offer{}, err
	}

	ent, err := u.enterpriseOf(ctx, enterpriseUserID)
	if err != nil {
		return job.Offer{}, err
	}

	o, err := u.offers.Create(ctx, job.Offer{
		ID:           uuid.New(),
		EnterpriseID: ent.ID,
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Location:     strings.TrimSpace(in.Location),
		ContractType: job.ContractType(in.ContractType),
		Salary:       strings.TrimSpace(in.Salary),
		Skills:       candidate.NormalizeSkills(in.Skills),
		Status:       job.StatusOpen,
	})
	if err != nil {
		u.logger.Error("create job offer failed", zap.String("enterprise_id", ent.ID.String()), zap.Error(err))
		return job.Offer{}, ErrInternal
	}
	u.evictRecommendations(ctx)
	u.events.Event(metrics.EventJobOfferCreated)
	return o, nil
}

func (u *JobOffer) Get(ctx context.Context, id uuid.UUID) (job.Offer, error) {
	key := jobOfferKey(id)

	var cached job.Offer
	if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	o, err := u.offers.GetByID(ctx, id)
	if err != nil {
		return job.Offer{}, mapOfferErr(err)
	}

	if err := u.cache.SetJSON(ctx, key, o, 0); err != nil {
		u.logger.Debug("job offer cache set failed", zap.String("key", key), zap.Error(err))
	}
	return o, nil
}

// List returns offers matching f, newest first. An empty status lists only
// open offers.
func (u *JobOffer) List(ctx context.Context, f job.Filter) ([]job.Offer, error) {
	if f.Limit == 0 {
		f.Limit = DefaultJobListLimit
	}
	if f.Limit < 1 || f.Limit > MaxJobListLimit || f.Offset < 0 {
		return nil, ErrInvalidInput
	}
	if f.ContractType != "" && !f.ContractType.Valid() {
		return nil, ErrInvalidInput
	}
	if f.Status == "" {
		f.Status = job.StatusOpen
	}
	if !f.Status.Valid() {
		return nil, ErrInvalidInput
	}

	items, err := u.offers.List(ctx, f)
	if err != nil {
		u.logger.Error("list job offers failed", zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

// ListMine pages through the caller's offers in every status, newest first.
func (u *JobOffer) ListMine(ctx context.Context, enterpriseUserID uuid.UUID, limit, offset int) ([]job.Offer, error) {
	if limit == 0 {
		limit = DefaultJobListLimit
	}
	if limit < 1 || limit > MaxJobListLimit || offset < 0 {
		return nil, ErrInvalidInput
	}

	ent, err := u.enterpriseOf(ctx, enterpriseUserID)
	if err != nil {
		return nil, err
	}

	items, err := u.offers.List(ctx, job.Filter{EnterpriseID: ent.ID, Limit: limit, Offset: offset})
	if err != nil {
		u.logger.Error("list enterprise job offers failed", zap.String("enterprise_id", ent.ID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

func (u *JobOffer) Update(ctx context.Context, enterpriseUserID, id uuid.UUID, in JobOfferPatch) (job.Offer, error) {
	o, err := u.owned(ctx, enterpriseUserID, id)
	if err != nil {
		return job.Offer{}, err
	}

	setString(&o.Title, in.Title)
	setString(&o.Description, in.Description)
	setString(&o.Location, in.Location)
	setString(&o.Salary, in.Salary)
	if in.ContractType != nil {
		o.ContractType = job.ContractType(strings.ToLower(strings.TrimSpace(*in.ContractType)))
	}
	if in.Skills != nil {
		o.Skills = candidate.NormalizeSkills(in.Skills)
	}

	if err := validation.Struct(JobOfferInput{
		Title:        o.Title,
		Description:  o.Description,
		Location:     o.Location,
		ContractType: string(o.ContractType),
		Salary:       o.Salary,
		Skills:       o.Skills,
	}); err != nil {
		return job.Offer{}, err
	}

	return u.save(ctx, o)
}

func (u *JobOffer) Close(ctx context.Context, enterpriseUserID, id uuid.UUID) (job.Offer, error) {
	o, err := u.owned(ctx, enterpriseUserID, id)
	if err != nil {
		return job.Offer{}, err
	}
	if o.Status == job.StatusClosed {
		return o, nil
	}
	o.Status = job.StatusClosed
	return u.save(ctx, o)
}

func (u *JobOffer) Delete(ctx context.Context, enterpriseUserID, id uuid.UUID) error {
	o, err := u.owned(ctx, enterpriseUserID, id)
	if err != nil {
		return err
	}
	if err := u.offers.Delete(ctx, o.ID, o.EnterpriseID); err != nil {
		return mapOfferErr(err)
	}
	u.evict(ctx, o.ID)
	return nil
}

func (u *JobOffer) save(ctx context.Context, o job.Offer) (job.Offer, error) {
	updated, err := u.offers.Update(ctx, o)
	if err != nil {
		return job.Offer{}, mapOfferErr(err)
	}
	u.evict(ctx, o.ID)
	return updated, nil
}

// evict drops the cached offer and every cached recommendation list, since
// any of them may hold the old version of the offer.
func (u *JobOffer) evict(ctx context.Context, id uuid.UUID) {
	if err := u.cache.Delete(ctx, jobOfferKey(id)); err != nil {
		u.logger.Warn("job offer cache evict failed", zap.String("job_offer_id", id.String()), zap.Error(err))
	}
	u.evictRecommendations(ctx)
}

func (u *JobOffer) evictRecommendations(ctx context.Context) {
	if err := u.cache.DeleteByPattern(ctx, recommendationsPrefix+"*"); err != nil {
		u.logger.Warn("recommendations cache evict failed", zap.Error(err))
	}
}

func (u *JobOffer) enterpriseOf(ctx context.Context, userID uuid.UUID) (enterprise.Profile, error) {
	ent, err := u.enterprises.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, enterprise.ErrNotFound) {
			return enterprise.Profile{}, ErrProfileRequired
		}
		return enterprise.Profile{}, ErrInternal
	}
	return ent, nil
}

// owned loads an offer from the store, bypassing the cache, and checks that
// the caller's enterprise owns it.
func (u *JobOffer) owned(ctx context.Context, enterpriseUserID, id uuid.UUID) (job.Offer, error) {
	ent, err := u.enterpriseOf(ctx, enterpriseUserID)
	if err != nil {
		return job.Offer{}, err
	}
	o, err := u.offers.GetByID(ctx, id)
	if err != nil {
		return job.Offer{}, mapOfferErr(err)
	}
	if o.EnterpriseID != ent.ID {
		return job.Offer{}, ErrForbidden
	}
	return o, nil
}

func mapOfferErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, job.ErrNotFound):
		return ErrJobOfferNotFound
	default:
		return ErrInternal
	}
}
