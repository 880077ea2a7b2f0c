package usecase

import (
	"context"
	"errors"
	"strings"

	"hiretop/internal/database/postgres"
	"hiretop/internal/domain/enterprise"
	"hiretop/internal/pkg/validation"
	"hiretop/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EnterpriseProfileInput struct {
	Name        string `json:"name" validate:"notblank,max=160"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Phone       string `json:"phone" validate:"max=32"`
	Location    string `json:"location" validate:"max=120"`
	Industry    string `json:"industry" validate:"max=120"`
	Website     string `json:"website" validate:"omitempty,url,max=300"`
	Description string `json:"description" validate:"max=4000"`
}

type EnterpriseProfilePatch struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Location    *string `json:"location"`
	Industry    *string `json:"industry"`
	Website     *string `json:"website"`
	Description *string `json:"description"`
}

type EnterpriseProfileUsecase interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, in EnterpriseProfileInput) (enterprise.Profile, error)
	GetMyProfile(ctx context.Context, userID uuid.UUID) (enterprise.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (enterprise.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in EnterpriseProfilePatch) (enterprise.Profile, error)
	DeleteProfile(ctx context.Context, userID uuid.UUID) error
}

type EnterpriseProfile struct {
	profiles repository.EnterpriseProfileRepository
	logger   *zap.Logger
}

func NewEnterpriseProfileUsecase(profiles repository.EnterpriseProfileRepository, logger *zap.Logger) *EnterpriseProfile {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnterpriseProfile{profiles: profiles, logger: logger}
}

func (u *EnterpriseProfile) CreateProfile(ctx context.Context, userID uuid.UUID, in EnterpriseProfileInput) (enterprise.Profile, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Website = strings.TrimSpace(in.Website)
	if err := validation.Struct(in); err != nil {
		return enterprise.Profile{}, err
	}

	if _, err := u.profiles.GetByUserID(ctx, userID); err == nil {
		return enterprise.Profile{}, ErrProfileAlreadyExists
	} else if !errors.Is(err, enterprise.ErrNotFound) {
		return enterprise.Profile{}, ErrInternal
	}

	p, err := u.profiles.Create(ctx, enterprise.Profile{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Email:       in.Email,
		Phone:       strings.TrimSpace(in.Phone),
		Location:    strings.TrimSpace(in.Location),
		Industry:    strings.TrimSpace(in.Industry),
		Website:     in.Website,
		Description: strings.TrimSpace(in.Description),
	})
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return enterprise.Profile{}, ErrProfileAlreadyExists
		}
		u.logger.Error("create enterprise profile failed", zap.String("user_id", userID.String()), zap.Error(err))
		return enterprise.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *EnterpriseProfile) GetMyProfile(ctx context.Context, userID uuid.UUID) (enterprise.Profile, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	return p, mapEnterpriseErr(err)
}

func (u *EnterpriseProfile) GetProfile(ctx context.Context, id uuid.UUID) (enterprise.Profile, error) {
	p, err := u.profiles.GetByID(ctx, id)
	return p, mapEnterpriseErr(err)
}

func (u *EnterpriseProfile) UpdateProfile(ctx context.Context, userID uuid.UUID, in EnterpriseProfilePatch) (enterprise.Profile, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return enterprise.Profile{}, mapEnterpriseErr(err)
	}

	setString(&p.Name, in.Name)
	if in.Email != nil {
		p.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	setString(&p.Phone, in.Phone)
	setString(&p.Location, in.Location)
	setString(&p.Industry, in.Industry)
	setString(&p.Website, in.Website)
	setString(&p.Description, in.Description)

	if err := validation.Struct(EnterpriseProfileInput{
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		Location:    p.Location,
		Industry:    p.Industry,
		Website:     p.Website,
		Description: p.Description,
	}); err != nil {
		return enterprise.Profile{}, err
	}

	updated, err := u.profiles.Update(ctx, p)
	if err != nil {
		return enterprise.Profile{}, mapEnterpriseErr(err)
	}
	return updated, nil
}

func (u *EnterpriseProfile) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	return mapEnterpriseErr(u.profiles.DeleteByUserID(ctx, userID))
}

func mapEnterpriseErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, enterprise.ErrNotFound):
		return ErrProfileNotFound
	default:
		return ErrInternal
	}
}
