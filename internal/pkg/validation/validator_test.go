package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileForm struct {
	FullName string   `json:"full_name" validate:"required,notblank,max=120"`
	Email    string   `json:"email" validate:"required,email"`
	Website  *string  `json:"website" validate:"omitempty,url"`
	Years    int      `json:"experience_years" validate:"gte=0,lte=60"`
	Role     string   `json:"role" validate:"oneof=candidate enterprise"`
	Skills   []string `json:"skills" validate:"max=2"`
}

func TestStruct_Valid(t *testing.T) {
	site := "https://example.com"
	err := Struct(profileForm{FullName: "Ada", Email: "ada@example.com", Website: &site, Role: "candidate"})
	assert.NoError(t, err)
}

func TestStruct_FieldMessages(t *testing.T) {
	site := "not a url"
	err := Struct(profileForm{
		FullName: "   ",
		Email:    "nope",
		Website:  &site,
		Years:    -1,
		Role:     "admin",
		Skills:   []string{"a", "b", "c"},
	})
	require.Error(t, err)

	var verrs Errors
	require.True(t, errors.As(err, &verrs))

	byField := map[string]string{}
	for _, fe := range verrs {
		byField[fe.Field] = fe.Message
	}
	assert.Equal(t, "full_name is required", byField["full_name"])
	assert.Equal(t, "email must be a valid email address", byField["email"])
	assert.Equal(t, "website must be a valid URL", byField["website"])
	assert.Equal(t, "experience_years must be greater than or equal to 0", byField["experience_years"])
	assert.Equal(t, "role must be one of: candidate, enterprise", byField["role"])
	assert.Equal(t, "skills must contain at most 2 items", byField["skills"])
}

func TestStruct_MissingRequired(t *testing.T) {
	err := Struct(profileForm{Role: "enterprise"})
	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.Error(), "full_name is required")
	assert.Contains(t, verrs.Error(), "email is required")
}
