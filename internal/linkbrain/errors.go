package linkbrain

import (
	"fmt"
	"net/http"

	"github.com/RobinCoderZhao/apibridge/pkg/apierr"
)

const unknownCode = "UNKNOWN_ERROR"

// apiError is the error member of the response envelope.
type apiError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// classify turns a failed response into one error. The message is always
// "[CODE] message"; the kind only follows the status so logs can group
// failures.
func classify(status int, body *apiError) *apierr.Error {
	code := unknownCode
	msg := fmt.Sprintf("API error %d: %s", status, http.StatusText(status))
	if body != nil {
		if body.Code != "" {
			code = body.Code
		}
		if body.Message != "" {
			msg = body.Message
		}
	}
	return &apierr.Error{
		Kind:    kindForStatus(status),
		Message: fmt.Sprintf("[%s] %s", code, msg),
		Status:  status,
		Code:    code,
	}
}

func kindForStatus(status int) apierr.Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apierr.KindAuth
	case http.StatusTooManyRequests:
		return apierr.KindRateLimit
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apierr.KindInvalidParameter
	default:
		return apierr.KindUpstream
	}
}
