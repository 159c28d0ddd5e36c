package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type MessageCode struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

// Envelope is the wrapper every backend response uses.
type Envelope[T any] struct {
	Code        string      `json:"code"`
	MessageCode MessageCode `json:"messageCode"`
	Message     string      `json:"message,omitempty"`
	Data        T           `json:"data"`
}

// Decode consumes and closes resp. A 2xx response yields the envelope data;
// anything else yields an *APIError. A nil Messages means English.
func Decode[T any](resp *http.Response, msgs *Messages) (T, error) {
	var zero T
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	if !isSuccess(resp.StatusCode) {
		return zero, newAPIError(resp.StatusCode, raw, msgs)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return zero, nil
	}

	var env Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, fmt.Errorf("decode response: %w", err)
	}
	return env.Data, nil
}

// DecodeVoid is Decode for endpoints without data.
func DecodeVoid(resp *http.Response, msgs *Messages) error {
	_, err := Decode[json.RawMessage](resp, msgs)
	return err
}

func newAPIError(status int, raw []byte, msgs *Messages) *APIError {
	if msgs == nil {
		msgs = defaultMessages
	}

	// failure bodies that are not JSON still map through the status table
	var env Envelope[json.RawMessage]
	_ = json.Unmarshal(raw, &env)

	code := env.MessageCode.Code
	return &APIError{
		Status:  status,
		Code:    code,
		Message: msgs.Resolve(code, status),
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
