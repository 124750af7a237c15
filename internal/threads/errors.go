package threads

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/RobinCoderZhao/apibridge/pkg/apierr"
)

// Graph API error codes.
const (
	codeInvalidParameter = 100
	codeAuth             = 190
)

// rateLimitCodes are the throttling codes the Graph API returns for app,
// user and page level limits.
var rateLimitCodes = map[int]bool{4: true, 17: true, 32: true, 613: true}

type graphError struct {
	Error *struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode,omitempty"`
		FBTraceID    string `json:"fbtrace_id,omitempty"`
	} `json:"error"`
}

// classify turns a failed response into one error. A structured error body
// decides the kind when present; otherwise the status does.
func classify(status int, body []byte) *apierr.Error {
	var ge graphError
	if err := json.Unmarshal(body, &ge); err == nil && ge.Error != nil {
		e := ge.Error
		out := &apierr.Error{Status: status, Code: strconv.Itoa(e.Code)}
		switch {
		case e.Code == codeAuth:
			out.Kind = apierr.KindAuth
			out.Message = fmt.Sprintf("Authentication error: %s. Your access token may have expired. Generate a new one.", e.Message)
		case rateLimitCodes[e.Code]:
			out.Kind = apierr.KindRateLimit
			out.Message = fmt.Sprintf("Rate limit exceeded: %s. Wait a few minutes before retrying.", e.Message)
		case e.Code == codeInvalidParameter:
			out.Kind = apierr.KindInvalidParameter
			out.Message = fmt.Sprintf("Invalid parameter: %s. Check your input values.", e.Message)
		default:
			out.Kind = apierr.KindUpstream
			out.Message = fmt.Sprintf("Threads API error (%s, code %d): %s", e.Type, e.Code, e.Message)
		}
		return out
	}

	text := fmt.Sprintf("HTTP %d %s", status, http.StatusText(status))
	out := &apierr.Error{Status: status}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		out.Kind = apierr.KindAuth
		out.Message = fmt.Sprintf("Authentication error: %s. Your access token may have expired. Generate a new one.", text)
	case http.StatusTooManyRequests:
		out.Kind = apierr.KindRateLimit
		out.Message = fmt.Sprintf("Rate limit exceeded: %s. Wait a few minutes before retrying.", text)
	case http.StatusBadRequest:
		out.Kind = apierr.KindInvalidParameter
		out.Message = fmt.Sprintf("Invalid parameter: %s. Check your input values.", text)
	default:
		out.Kind = apierr.KindUpstream
		out.Message = "Threads API error: " + text
	}
	return out
}
