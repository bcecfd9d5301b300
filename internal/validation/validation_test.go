package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconnector/internal/models"
)

type signupForm struct {
	Name     string `json:"name" validate:"notblank" msg:"Name is required"`
	Email    string `json:"email" validate:"required,email" msg:"Please enter a valid email."`
	Password string `json:"password" validate:"min=6"`
	Nickname string `json:"nickname" validate:"omitempty,max=5"`
}

func TestStruct_Valid(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct(&signupForm{Name: "Ada", Email: "ada@example.com", Password: "secret1"}))
}

func TestStruct_ListsEveryFailingField(t *testing.T) {
	v := New()

	err := v.Struct(signupForm{Name: "   ", Email: "nope", Password: "123", Nickname: "toolongname"})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Equal(t, []models.FieldError{
		{Msg: "Name is required", Param: "name"},
		{Msg: "Please enter a valid email.", Param: "email"},
		{Msg: "password must be at least 6 characters", Param: "password"},
		{Msg: "nickname must be at most 5 characters", Param: "nickname"},
	}, appErr.Fields)
}

func TestStruct_NonStructIsInternal(t *testing.T) {
	err := New().Struct("not a struct")
	require.Error(t, err)
	assert.Equal(t, models.CodeInternal, models.AsAppError(err).Code)
}

type secretForm struct {
	Secret string `json:"secret" validate:"min=2,maxbytes=8" msg:"Secret is too short" msg_maxbytes:"Secret is too long"`
}

func TestStruct_MaxBytesCountsBytesNotRunes(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(secretForm{Secret: "12345678"}))

	// four runes, eight bytes
	assert.NoError(t, v.Struct(secretForm{Secret: strings.Repeat("é", 4)}))

	// five runes, ten bytes
	err := v.Struct(secretForm{Secret: strings.Repeat("é", 5)})
	require.Error(t, err)
	assert.Equal(t, []models.FieldError{{Msg: "Secret is too long", Param: "secret"}}, models.AsAppError(err).Fields)

	err = v.Struct(secretForm{Secret: "x"})
	require.Error(t, err)
	assert.Equal(t, []models.FieldError{{Msg: "Secret is too short", Param: "secret"}}, models.AsAppError(err).Fields)
}
