package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is the current response envelope version.
// Bump only for breaking changes to the envelope structure itself.
const EnvelopeVersion = 1

// APIEnvelope wraps successful responses and simple errors.
// The fan page and operator console both key off "v" and "success"
// before touching "data", so those field names are load-bearing.
type APIEnvelope struct {
	Version int    `json:"v" doc:"Envelope version"`
	Success bool   `json:"success" doc:"Whether the request succeeded"`
	Data    any    `json:"data,omitempty" doc:"Response payload"`
	Error   string `json:"error,omitempty" doc:"Error message when success is false"`
}

// APIErrorEnvelope wraps errors that carry a machine-readable code and
// optional details, such as validation field maps.
type APIErrorEnvelope struct {
	Version int    `json:"v" doc:"Envelope version"`
	Success bool   `json:"success" doc:"Always false"`
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// EnvelopeTransformer wraps every response body in a versioned envelope.
// Registered on the huma config so handlers return plain payloads and
// never see envelope types.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	success := len(status) > 0 && (status[0] == '2' || status[0] == '3')

	switch body := v.(type) {
	case nil:
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: success,
		}, nil

	case *APIError:
		// Errors with a code get the detailed envelope so clients can
		// branch on the code instead of parsing messages.
		if body.Code != "" || body.Details != nil {
			return APIErrorEnvelope{
				Version: EnvelopeVersion,
				Success: false,
				Code:    body.Code,
				Message: body.Message,
				Details: body.Details,
			}, nil
		}
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   body.Message,
		}, nil

	case error:
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   body.Error(),
		}, nil

	default:
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: success,
			Data:    v,
		}, nil
	}
}
