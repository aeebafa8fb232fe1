// Package v1 holds the JSON bodies served by the numeral API.
package v1

// ErrorCode classifies an ErrorResponse.
type ErrorCode string

const (
	ErrorCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrorCodeInternalError    ErrorCode = "INTERNAL_ERROR"
	ErrorCodeTooManyRequests  ErrorCode = "TOO_MANY_REQUESTS"
	ErrorCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrorCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
)

// ConversionResponse is a single integer and its numeral. Input is the
// decimal representation of the converted integer.
type ConversionResponse struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// RangeConversionResponse lists conversions in ascending input order.
type RangeConversionResponse struct {
	Conversions []ConversionResponse `json:"conversions"`
}

type ErrorResponse struct {
	Message   string    `json:"message"`
	ErrorCode ErrorCode `json:"errorCode"`
}

type Version struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
}

const (
	ServerUrlConvert      = "/romannumeral/v1"
	ServerUrlConvertRange = "/romannumeral"
	ServerUrlHealthcheck  = "/healthcheck"
	ServerUrlReadyz       = "/readyz"
	ServerUrlVersion      = "/api/version"

	QueryParamValue = "query"
	QueryParamMin   = "min"
	QueryParamMax   = "max"
)
