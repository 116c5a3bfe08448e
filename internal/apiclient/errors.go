package apiclient

import (
	"encoding/json"
	"net/http"
	"strings"

	"sportify-admin/internal/model"
	"sportify-admin/pkg/apierror"
)

// envelopeProbe inspects a body without committing to its data type.
type envelopeProbe struct {
	Success *bool            `json:"success"`
	Message string           `json:"message"`
	Error   *model.ErrorBody `json:"error"`
}

// normalizeError turns an error response into the uniform shape. Only this
// package looks at status codes.
func normalizeError(status int, body []byte) *apierror.APIError {
	out := &apierror.APIError{
		Code:       apierror.CodeUnknown,
		StatusCode: status,
	}

	var probe envelopeProbe
	if len(body) > 0 && json.Unmarshal(body, &probe) == nil {
		if probe.Error != nil {
			if probe.Error.Code != "" {
				out.Code = probe.Error.Code
			}
			out.Message = probe.Error.Message
			out.Details = probe.Error.Details
		}
		if out.Message == "" {
			out.Message = probe.Message
		}
	}

	if strings.TrimSpace(out.Message) == "" {
		out.Message = http.StatusText(status)
	}
	if out.Message == "" {
		out.Message = "An error occurred"
	}
	return out
}

// checkEnvelope validates a 2xx body. A body without "success" is treated as
// a transport failure.
func checkEnvelope(status int, body []byte) error {
	var probe envelopeProbe
	if err := json.Unmarshal(body, &probe); err != nil {
		return apierror.New(apierror.CodeInvalidResponse, "response is not a JSON envelope", err.Error(), status)
	}
	if probe.Success == nil {
		return apierror.New(apierror.CodeInvalidResponse, "response is missing the success field", nil, status)
	}
	if !*probe.Success {
		return normalizeError(status, body)
	}
	return nil
}
