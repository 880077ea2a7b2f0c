package usecase

import (
	"context"
	"testing"

	"hiretop/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCandidateProfile_CreateOncePerUser(t *testing.T) {
	s := newStore()
	uc := NewCandidateProfileUsecase(fakeCandidates{s}, nil, nil)
	userID := uuid.New()

	p, err := uc.CreateProfile(context.Background(), userID, CandidateProfileInput{
		FullName: " Ana Lima ", Email: "ANA@mail.com", Skills: []string{"Go", " go", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", p.FullName)
	assert.Equal(t, "ana@mail.com", p.Email)
	assert.Equal(t, []string{"Go"}, p.Skills)

	_, err = uc.CreateProfile(context.Background(), userID, CandidateProfileInput{FullName: "Ana", Email: "ana@mail.com"})
	assert.ErrorIs(t, err, ErrProfileAlreadyExists)
}

func TestCandidateProfile_CreateValidation(t *testing.T) {
	uc := NewCandidateProfileUsecase(fakeCandidates{newStore()}, nil, nil)

	_, err := uc.CreateProfile(context.Background(), uuid.New(), CandidateProfileInput{ExperienceYears: -1})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	msgs := map[string]string{}
	for _, fe := range verrs {
		msgs[fe.Field] = fe.Message
	}
	assert.Equal(t, "full_name is required", msgs["full_name"])
	assert.Equal(t, "email is required", msgs["email"])
	assert.Equal(t, "experience_years must be greater than or equal to 0", msgs["experience_years"])
}

func TestCandidateProfile_UpdateSkillsEvictsRecommendations(t *testing.T) {
	s := newStore()
	cache := newMemCache()
	uc := NewCandidateProfileUsecase(fakeCandidates{s}, cache, nil)
	c := s.addCandidate("Go")
	key := recommendationsKey(c.UserID)
	require.NoError(t, cache.SetJSON(context.Background(), key, []string{"stale"}, 0))

	p, err := uc.UpdateProfile(context.Background(), c.UserID, CandidateProfilePatch{Title: ptr("Backend dev")})
	require.NoError(t, err)
	assert.Equal(t, "Backend dev", p.Title)
	assert.Equal(t, []string{"Go"}, p.Skills)
	assert.True(t, cache.has(key))

	p, err = uc.UpdateProfile(context.Background(), c.UserID, CandidateProfilePatch{Skills: []string{"Kotlin", "KOTLIN"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kotlin"}, p.Skills)
	assert.False(t, cache.has(key))
}

func TestCandidateProfile_UpdateCannotBlankRequired(t *testing.T) {
	s := newStore()
	uc := NewCandidateProfileUsecase(fakeCandidates{s}, nil, nil)
	c := s.addCandidate()

	_, err := uc.UpdateProfile(context.Background(), c.UserID, CandidateProfilePatch{FullName: ptr("   ")})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "full_name", verrs[0].Field)
	assert.Equal(t, "Ana Lima", s.candidates[c.ID].FullName)
}

func TestCandidateProfile_GetAndDelete(t *testing.T) {
	s := newStore()
	uc := NewCandidateProfileUsecase(fakeCandidates{s}, nil, nil)
	c := s.addCandidate()

	got, err := uc.GetProfile(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.UserID, got.UserID)

	require.NoError(t, uc.DeleteProfile(context.Background(), c.UserID))

	_, err = uc.GetMyProfile(context.Background(), c.UserID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.ErrorIs(t, uc.DeleteProfile(context.Background(), c.UserID), ErrProfileNotFound)
}

func TestEnterpriseProfile_CreateAndUpdate(t *testing.T) {
	s := newStore()
	uc := NewEnterpriseProfileUsecase(fakeEnterprises{s}, nil)
	userID := uuid.New()

	_, err := uc.CreateProfile(context.Background(), userID, EnterpriseProfileInput{Name: "Acme", Email: "hr@acme.io", Website: "not a url"})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "website must be a valid URL", verrs[0].Message)

	p, err := uc.CreateProfile(context.Background(), userID, EnterpriseProfileInput{Name: "Acme", Email: "hr@acme.io", Website: "https://acme.io"})
	require.NoError(t, err)

	_, err = uc.CreateProfile(context.Background(), userID, EnterpriseProfileInput{Name: "Acme", Email: "hr@acme.io"})
	assert.ErrorIs(t, err, ErrProfileAlreadyExists)

	updated, err := uc.UpdateProfile(context.Background(), userID, EnterpriseProfilePatch{Website: ptr(""), Industry: ptr("Retail")})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)
	assert.Empty(t, updated.Website)
	assert.Equal(t, "Retail", updated.Industry)

	_, err = uc.UpdateProfile(context.Background(), userID, EnterpriseProfilePatch{Name: ptr("")})
	assert.ErrorAs(t, err, &verrs)
}
