package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := map[*AppError]int{
		NewValidationError([]string{"Title can't be blank"}): http.StatusUnprocessableEntity,
		NewInvalidCredentials():                              http.StatusUnauthorized,
		NewUnauthenticated():                                 http.StatusUnauthorized,
		NewNotPermitted(nil):                                 http.StatusForbidden,
		NewInternal(errors.New("boom")):                      http.StatusInternalServerError,
	}
	for e, want := range cases {
		assert.Equal(t, want, e.StatusCode(), e.Error())
	}
}

func TestFrom_WrapsUnknownAsInternal(t *testing.T) {
	cause := errors.New("disk I/O error")
	e := From(fmt.Errorf("insert: %w", cause))

	assert.Equal(t, Internal, e.Kind)
	assert.Equal(t, []string{MsgInternal}, e.Messages)
	assert.ErrorIs(t, e, cause)
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("update video: %w", NewNotPermitted(nil))

	assert.True(t, IsNotPermitted(err))
	assert.False(t, IsValidation(err))
	assert.Same(t, From(err), From(err))
}
