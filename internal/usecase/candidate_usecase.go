package usecase

import (
	"context"
	"errors"
	"strings"

	"hiretop/internal/database/postgres"
	"hiretop/internal/domain/candidate"
	"hiretop/internal/pkg/validation"
	"hiretop/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CandidateProfileInput struct {
	FullName        string   `json:"full_name" validate:"notblank,max=120"`
	Email           string   `json:"email" validate:"required,email,max=254"`
	Phone           string   `json:"phone" validate:"max=32"`
	Location        string   `json:"location" validate:"max=120"`
	Title           string   `json:"title" validate:"max=120"`
	Bio             string   `json:"bio" validate:"max=2000"`
	Skills          []string `json:"skills" validate:"max=50,dive,max=60"`
	ExperienceYears int      `json:"experience_years" validate:"gte=0,lte=70"`
	Education       string   `json:"education" validate:"max=200"`
}

// CandidateProfilePatch updates only the fields that are set. A non-nil
// Skills replaces the whole list, including with an empty one. The merged
// profile is validated with the same rules as creation.
type CandidateProfilePatch struct {
	FullName        *string  `json:"full_name"`
	Email           *string  `json:"email"`
	Phone           *string  `json:"phone"`
	Location        *string  `json:"location"`
	Title           *string  `json:"title"`
	Bio             *string  `json:"bio"`
	Skills          []string `json:"skills"`
	ExperienceYears *int     `json:"experience_years"`
	Education       *string  `json:"education"`
}

type CandidateProfileUsecase interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, in CandidateProfileInput) (candidate.Profile, error)
	GetMyProfile(ctx context.Context, userID uuid.UUID) (candidate.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (candidate.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in CandidateProfilePatch) (candidate.Profile, error)
	DeleteProfile(ctx context.Context, userID uuid.UUID) error
}

type CandidateProfile struct {
	profiles repository.CandidateProfileRepository
	cache    Cache
	logger   *zap.Logger
}

func NewCandidateProfileUsecase(profiles repository.CandidateProfileRepository, cache Cache, logger *zap.Logger) *CandidateProfile {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CandidateProfile{profiles: profiles, cache: cacheOrNoop(cache), logger: logger}
}

func (u *CandidateProfile) CreateProfile(ctx context.Context, userID uuid.UUID, in CandidateProfileInput) (candidate.Profile, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return candidate.Profile{}, err
	}

	if _, err := u.profiles.GetByUserID(ctx, userID); err == nil {
		return candidate.Profile{}, ErrProfileAlreadyExists
	} else if !errors.Is(err, candidate.ErrNotFound) {
		return candidate.Profile{}, ErrInternal
	}

	p, err := u.profiles.Create(ctx, candidate.Profile{
		ID:              uuid.New(),
		UserID:          userID,
		FullName:        strings.TrimSpace(in.FullName),
		Email:           in.Email,
		Phone:           strings.TrimSpace(in.Phone),
		Location:        strings.TrimSpace(in.Location),
		Title:           strings.TrimSpace(in.Title),
		Bio:             strings.TrimSpace(in.Bio),
		Skills:          candidate.NormalizeSkills(in.Skills),
		ExperienceYears: in.ExperienceYears,
		Education:       strings.TrimSpace(in.Education),
	})
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return candidate.Profile{}, ErrProfileAlreadyExists
		}
		u.logger.Error("create candidate profile failed", zap.String("user_id", userID.String()), zap.Error(err))
		return candidate.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *CandidateProfile) GetMyProfile(ctx context.Context, userID uuid.UUID) (candidate.Profile, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	return p, mapCandidateErr(err)
}

func (u *CandidateProfile) GetProfile(ctx context.Context, id uuid.UUID) (candidate.Profile, error) {
	p, err := u.profiles.GetByID(ctx, id)
	return p, mapCandidateErr(err)
}

func (u *CandidateProfile) UpdateProfile(ctx context.Context, userID uuid.UUID, in CandidateProfilePatch) (candidate.Profile, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return candidate.Profile{}, mapCandidateErr(err)
	}

	setString(&p.FullName, in.FullName)
	if in.Email != nil {
		p.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	setString(&p.Phone, in.Phone)
	setString(&p.Location, in.Location)
	setString(&p.Title, in.Title)
	setString(&p.Bio, in.Bio)
	setString(&p.Education, in.Education)
	if in.ExperienceYears != nil {
		p.ExperienceYears = *in.ExperienceYears
	}
	skillsChanged := in.Skills != nil
	if skillsChanged {
		p.Skills = candidate.NormalizeSkills(in.Skills)
	}

	if err := validation.Struct(CandidateProfileInput{
		FullName:        p.FullName,
		Email:           p.Email,
		Phone:           p.Phone,
		Location:        p.Location,
		Title:           p.Title,
		Bio:             p.Bio,
		Skills:          p.Skills,
		ExperienceYears: p.ExperienceYears,
		Education:       p.Education,
	}); err != nil {
		return candidate.Profile{}, err
	}

	updated, err := u.profiles.Update(ctx, p)
	if err != nil {
		return candidate.Profile{}, mapCandidateErr(err)
	}

	if skillsChanged {
		u.invalidateRecommendations(ctx, userID)
	}
	return updated, nil
}

func (u *CandidateProfile) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	if err := u.profiles.DeleteByUserID(ctx, userID); err != nil {
		return mapCandidateErr(err)
	}
	u.invalidateRecommendations(ctx, userID)
	return nil
}

func (u *CandidateProfile) invalidateRecommendations(ctx context.Context, userID uuid.UUID) {
	if err := u.cache.Delete(ctx, recommendationsKey(userID)); err != nil {
		u.logger.Warn("recommendations cache evict failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func mapCandidateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, candidate.ErrNotFound):
		return ErrProfileNotFound
	default:
		return ErrInternal
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
