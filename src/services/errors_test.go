package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("x")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden("x")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("x")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(BadRequest("x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Internal(errors.New("x"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestWrapRecordNotFound(t *testing.T) {
	err := Wrap(gorm.ErrRecordNotFound, "event not found")
	assert.Equal(t, KindNotFound, err.Kind)
	assert.Equal(t, "event not found", err.Error())
}

func TestWrapOtherErrorsStayInternal(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, "event not found")
	assert.Equal(t, KindInternal, err.Kind)
	assert.True(t, errors.Is(err, cause))
}

func TestHTTPStatusUnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("admitting: %w", Conflict("duplicate"))
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
}
