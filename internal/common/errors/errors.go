// Package errors provides the error taxonomy shared by the tour workers and
// its mapping onto BPMN errors.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeParseError ErrorCode = "PARSE_ERROR"

	// Catalog provider failures. These are the only errors the discovery
	// core surfaces to callers.
	ErrCodeCatalogUnavailable  ErrorCode = "CATALOG_UNAVAILABLE"
	ErrCodeCatalogDecodeFailed ErrorCode = "CATALOG_DECODE_FAILED"

	ErrCodeDatabaseConnectionFailed      ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed          ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeIndexNotFound                 ErrorCode = "INDEX_NOT_FOUND"
	ErrCodeWorkflowEngineUnavailable     ErrorCode = "WORKFLOW_ENGINE_UNAVAILABLE"

	// Log-only codes. Malformed preferences and filters are normalized and
	// analytics failures are swallowed; none of these reach a workflow.
	ErrCodeInvalidConstraint          ErrorCode = "INVALID_CONSTRAINT"
	ErrCodeInvalidFilterFormat        ErrorCode = "INVALID_FILTER_FORMAT"
	ErrCodeAnalyticsPersistenceFailed ErrorCode = "ANALYTICS_PERSISTENCE_FAILED"
	ErrCodeInternal                   ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is matches any StandardError carrying the same code, so callers can test
// against the exported sentinels with errors.Is.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrCatalogUnavailable = &StandardError{Code: ErrCodeCatalogUnavailable}
	ErrAnalyticsFailed    = &StandardError{Code: ErrCodeAnalyticsPersistenceFailed}
)

// AsStandardError extracts a StandardError from err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message string, retryable bool, cause error, details string) *StandardError {
	if details == "" && cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Job variables could not be decoded", false, err, "")
}

// NewCatalogUnavailableError wraps a failure of the catalog origin.
func NewCatalogUnavailableError(source string, err error) *StandardError {
	e := newError(ErrCodeCatalogUnavailable, "Catalog provider unavailable", true, err, "")
	e.Metadata = map[string]interface{}{"source": source}
	return e
}

func NewCatalogDecodeFailedError(source string, err error) *StandardError {
	e := newError(ErrCodeCatalogDecodeFailed, "Catalog data could not be decoded", false, err, "")
	e.Metadata = map[string]interface{}{"source": source}
	return e
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", true, err, "")
}

func NewQueryExecutionFailedError(query string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error", true, err,
		fmt.Sprintf("query: %s, error: %v", query, err))
}

func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeElasticsearchConnectionFailed, "Elasticsearch connection error", true, err, "")
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Search query execution error", true, err,
		fmt.Sprintf("index: %s, error: %v", index, err))
}

func NewIndexNotFoundError(index string) *StandardError {
	return newError(ErrCodeIndexNotFound, "Search index not found", false, nil,
		fmt.Sprintf("index: %s", index))
}

func NewWorkflowEngineUnavailableError(operation string, err error) *StandardError {
	e := newError(ErrCodeWorkflowEngineUnavailable, "Workflow engine unavailable", true, err, "")
	e.Metadata = map[string]interface{}{"operation": operation}
	return e
}

// NewInvalidConstraintError describes a normalization that replaced user
// input with a default. It is logged, never returned.
func NewInvalidConstraintError(field, reason string) *StandardError {
	return newError(ErrCodeInvalidConstraint, "Preference input normalized", false, nil,
		fmt.Sprintf("%s: %s", field, reason))
}

func NewInvalidFilterFormatError(field, reason string) *StandardError {
	return newError(ErrCodeInvalidFilterFormat, "Filter input normalized", false, nil,
		fmt.Sprintf("%s: %s", field, reason))
}

func NewAnalyticsPersistenceFailedError(sink string, err error) *StandardError {
	e := newError(ErrCodeAnalyticsPersistenceFailed, "Analytics record not persisted", false, err, "")
	e.Metadata = map[string]interface{}{"sink": sink}
	return e
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", false, err, "")
}

// BPMNErrorMapping maps internal error codes to BPMN error codes. Codes
// missing from the map are thrown verbatim.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeParseError:                    "PARSE_ERROR",
	ErrCodeCatalogUnavailable:            "CATALOG_UNAVAILABLE",
	ErrCodeCatalogDecodeFailed:           "CATALOG_UNAVAILABLE",
	ErrCodeDatabaseConnectionFailed:      "CATALOG_UNAVAILABLE",
	ErrCodeQueryExecutionFailed:          "CATALOG_UNAVAILABLE",
	ErrCodeElasticsearchConnectionFailed: "CATALOG_UNAVAILABLE",
	ErrCodeSearchQueryFailed:             "CATALOG_UNAVAILABLE",
	ErrCodeIndexNotFound:                 "CATALOG_UNAVAILABLE",
	ErrCodeInternal:                      "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogUnavailable,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeWorkflowEngineUnavailable:
		return 3

	case ErrCodeQueryExecutionFailed,
		ErrCodeSearchQueryFailed:
		return 2

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "ANALYTICS"):
		return "ANALYTICS"
	case strings.Contains(codeStr, "WORKFLOW"):
		return "WORKFLOW"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "PARSE"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
