package errors

import (
	"fmt"
	"net/http"
)

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int    // Business error code
	Status  int    // HTTP status code
	Message string // Error message
}

// Error codes for different modules
const (
	// Success
	Success = 0

	// Common errors (1000-1999)
	ErrInternalServer = 1000
	ErrInvalidParams  = 1001
	ErrNotFound       = 1002
	ErrBadRequest     = 1007

	// Search errors (6000-6999)
	ErrSearchEmptyQuery     = 6000
	ErrSearchTransport      = 6001
	ErrSearchUpstreamStatus = 6002
	ErrSearchDecode         = 6003
	ErrSearchInvalidConfig  = 6004
)

// codeMap maps error codes to their details
var codeMap = map[int]Code{
	Success: {Success, http.StatusOK, "Success"},

	// Common errors
	ErrInternalServer: {ErrInternalServer, http.StatusInternalServerError, "Internal server error"},
	ErrInvalidParams:  {ErrInvalidParams, http.StatusBadRequest, "Invalid parameters"},
	ErrNotFound:       {ErrNotFound, http.StatusNotFound, "Resource not found"},
	ErrBadRequest:     {ErrBadRequest, http.StatusBadRequest, "Bad request"},

	// Search errors
	ErrSearchEmptyQuery:     {ErrSearchEmptyQuery, http.StatusBadRequest, "Empty search query"},
	ErrSearchTransport:      {ErrSearchTransport, http.StatusBadGateway, "Search backend unreachable"},
	ErrSearchUpstreamStatus: {ErrSearchUpstreamStatus, http.StatusBadGateway, "Search backend returned an error"},
	ErrSearchDecode:         {ErrSearchDecode, http.StatusBadGateway, "Invalid response from search backend"},
	ErrSearchInvalidConfig:  {ErrSearchInvalidConfig, http.StatusInternalServerError, "Invalid search configuration"},
}

// GetCode returns the Code for a given error code
func GetCode(code int) Code {
	if c, ok := codeMap[code]; ok {
		return c
	}
	return codeMap[ErrInternalServer]
}

// GetHTTPStatus returns HTTP status for a given error code
func GetHTTPStatus(code int) int {
	return GetCode(code).Status
}

// GetMessage returns the message for a given error code
func GetMessage(code int) string {
	return GetCode(code).Message
}

// FormatError formats an error message with code
func FormatError(code int, details ...string) string {
	msg := GetMessage(code)
	if len(details) > 0 && details[0] != "" {
		return fmt.Sprintf("%s: %s", msg, details[0])
	}
	return msg
}
