package upstream

import (
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// FromGenAI converts a genai SDK API error into *Error so the provider status reaches the
// client. Other errors are wrapped with msg.
func FromGenAI(provider, msg string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return genaiError(provider, apiErr)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return genaiError(provider, *apiErrPtr)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func genaiError(provider string, apiErr genai.APIError) *Error {
	body := apiErr.Message
	if body == "" {
		body = apiErr.Status
	}
	return &Error{Provider: provider, StatusCode: apiErr.Code, Body: body}
}
