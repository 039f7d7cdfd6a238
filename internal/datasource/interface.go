package datasource

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeUnknown              = "unknown"
)

// Source names
const (
	SourceStatsAPI    = "mlb_stats_api"
	SourceOpenWeather = "openweather"
	SourceStatFiles   = "stat_files"
	SourceHandedness  = "handedness_csv"
	SourceLineupPage  = "lineup_page"
	SourceTelegram    = "telegram"
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// HasCode reports whether err is a DataSourceError with the given code
func HasCode(err error, code string) bool {
	var dsErr DataSourceError
	return errors.As(err, &dsErr) && dsErr.Code == code
}

// errorCode returns the DataSourceError code of err, or unknown
func errorCode(err error) string {
	var dsErr DataSourceError
	if errors.As(err, &dsErr) {
		return dsErr.Code
	}
	return ErrCodeUnknown
}

// CheckStatus converts a non-2xx response into a DataSourceError
func CheckStatus(source string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return NewDataSourceError(source, ErrCodeAuthenticationFailed, "invalid credentials", nil)
	case http.StatusNotFound:
		return NewDataSourceError(source, ErrCodeNotFound, "resource not found", nil)
	case http.StatusTooManyRequests:
		return NewDataSourceError(source, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	code := ErrCodeUnknown
	if resp.StatusCode >= 500 {
		code = ErrCodeServerError
	}
	return NewDataSourceError(source, code, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
}
