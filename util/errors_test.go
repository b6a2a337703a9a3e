package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFoundError(APPOINTMENT_NOT_FOUND)))
	assert.Equal(t, http.StatusForbidden, StatusOf(NotAuthorizedError(NOT_ENOUGH_MONEY)))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(NotAuthenticatedError(USER_NOT_FOUND)))
	assert.Equal(t, http.StatusConflict, StatusOf(NewAppError(http.StatusConflict, FOLLOW_UP_ALREADY_REQUESTED)))

	// wrapped AppErrors still carry their code
	wrapped := fmt.Errorf("booking: %w", NotFoundError(DOCTOR_NOT_FOUND))
	assert.Equal(t, http.StatusNotFound, StatusOf(wrapped))

	// everything else is a plain bad request
	assert.Equal(t, http.StatusBadRequest, StatusOf(errors.New("boom")))
}

func TestFailedResponse(t *testing.T) {
	resp := FailedResponse(errors.New("something broke"))
	assert.False(t, resp.Success)
	assert.Equal(t, "something broke", resp.Error)

	ok := SuccessResponse("done")
	assert.True(t, ok.Success)
	assert.Equal(t, "done", ok.Data)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Str0ng!pass"))

	assert.Error(t, ValidatePassword("Sh0rt!a"))
	assert.Error(t, ValidatePassword("alllowercase1!"))
	assert.Error(t, ValidatePassword("ALLUPPERCASE1!"))
	assert.Error(t, ValidatePassword("NoDigitsHere!"))
	assert.Error(t, ValidatePassword("NoSymbols123"))
}
