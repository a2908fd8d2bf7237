package apierr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/shopster-web/internal/apperr"
	"github.com/tuanvumaihuynh/shopster-web/internal/http/apierr"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
	"github.com/tuanvumaihuynh/shopster-web/pkg/validator"
)

func TestNew(t *testing.T) {
	t.Run("Should map validation errors with details", func(t *testing.T) {
		err := validator.MustNewDefaultValidator().Validate(model.PasswordResetRequest{})

		res := apierr.New(err)

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, apperr.ValidationErrorCode, res.Code)
		if assert.Len(t, res.Details, 1) {
			assert.Equal(t, "email", res.Details[0].Field)
		}
	})

	t.Run("Should map wrapped zerrors by status", func(t *testing.T) {
		err := fmt.Errorf("search: %w", apperr.SearchUnavailableErr)

		res := apierr.New(err)

		assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
		assert.Equal(t, apperr.SearchUnavailableCode, res.Code)
	})

	t.Run("Should hide unknown errors", func(t *testing.T) {
		assert.Equal(t, apierr.InternalServerErr, apierr.New(errors.New("boom")))
	})
}

func TestUserMessage(t *testing.T) {
	const fallback = "Не удалось войти. Проверьте данные."

	t.Run("Should return the message the API addressed to the user", func(t *testing.T) {
		err := fmt.Errorf("login: %w", apperr.UpstreamRejectedErr.WithMsg("Пароль слишком простой"))
		assert.Equal(t, "Пароль слишком простой", apierr.UserMessage(err, fallback))
	})

	t.Run("Should fall back for generic and server errors", func(t *testing.T) {
		assert.Equal(t, fallback, apierr.UserMessage(apperr.UpstreamRejectedErr, fallback))
		assert.Equal(t, fallback, apierr.UserMessage(apperr.UpstreamErr.WithMsg("db down"), fallback))
		assert.Equal(t, fallback, apierr.UserMessage(errors.New("boom"), fallback))
	})
}
