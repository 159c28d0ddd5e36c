package client

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestDecode_Success(t *testing.T) {
	body := `{"code":"2000","messageCode":{"code":"SUCCESS","text":"ok"},"data":{"accessToken":"a","refreshToken":"r"}}`

	pair, err := Decode[models.TokenPair](response(http.StatusOK, body), nil)
	require.NoError(t, err)
	assert.Equal(t, models.TokenPair{AccessToken: "a", RefreshToken: "r"}, pair)
}

func TestDecode_FailureMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   string
		msg    string
	}{
		{"known code", 401, `{"code":"4010","messageCode":{"code":"INVALID_CREDENTIALS","text":"x"}}`, "INVALID_CREDENTIALS", "Incorrect email or password."},
		{"unknown code uses status", 404, `{"code":"4040","messageCode":{"code":"NOPE","text":"x"}}`, "NOPE", "Resource not found."},
		{"unknown status is generic", 418, `{"code":"4180","messageCode":{"code":"NOPE","text":"x"}}`, "NOPE", "Something went wrong. Please try again later."},
		{"non json body", 502, `<html>bad gateway</html>`, "", "Something went wrong. Please try again later."},
		{"conflict", 409, `{"messageCode":{"code":"EMAIL_ALREADY_EXISTS","text":"x"}}`, "EMAIL_ALREADY_EXISTS", "This email is already registered."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[models.TokenPair](response(tt.status, tt.body), nil)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Equal(t, tt.msg, apiErr.Message)
		})
	}
}

func TestDecode_MalformedSuccessBody(t *testing.T) {
	_, err := Decode[models.TokenPair](response(http.StatusOK, `{"data":`), nil)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestDecodeVoid(t *testing.T) {
	require.NoError(t, DecodeVoid(response(http.StatusOK, `{"code":"2000","messageCode":{"code":"SUCCESS","text":"ok"}}`), nil))
	require.NoError(t, DecodeVoid(response(http.StatusNoContent, ``), nil))
	assert.Error(t, DecodeVoid(response(http.StatusForbidden, `{}`), nil))
}

func TestAPIError_Is(t *testing.T) {
	assert.ErrorIs(t, &APIError{Status: 401}, ErrUnauthorized)
	assert.ErrorIs(t, &APIError{Status: 409}, ErrConflict)
	assert.ErrorIs(t, &APIError{Status: 400, Code: CodeBookmarkAlreadyExists}, ErrConflict)
	assert.NotErrorIs(t, &APIError{Status: 500}, ErrConflict)
}
