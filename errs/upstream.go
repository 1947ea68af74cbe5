package errs

import (
	"errors"
	"net/http"
)

// AI-provider errors. The raw payload is carried in Details so a failed
// generation can be diagnosed from the error response alone.
var (
	ErrEmptyModelResponse = errors.New("model response was empty or could not be parsed")
	ErrUnparsableContent  = errors.New("failed to parse content from model response")
)

func NewEmptyModelResponseError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEmptyModelResponse,
	}
}

// NewUpstreamError reports an unusable AI provider response, echoing the raw
// payload for diagnostics.
func NewUpstreamError(message string, raw string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        errors.New(message),
		Details:    raw,
		Cause:      cause,
	}
}
