package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardError_IsMatchesByCode(t *testing.T) {
	err := NewCatalogUnavailableError("postgres", fmt.Errorf("connection refused"))
	wrapped := fmt.Errorf("list catalog: %w", err)

	assert.True(t, stderrors.Is(wrapped, ErrCatalogUnavailable))
	assert.False(t, stderrors.Is(wrapped, ErrAnalyticsFailed))

	stdErr, ok := AsStandardError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeCatalogUnavailable, stdErr.Code)
	assert.Equal(t, "postgres", stdErr.Metadata["source"])
	assert.True(t, stdErr.Retryable)
}

func TestStandardError_UnwrapsCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := NewAnalyticsPersistenceFailedError("sns", cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "ANALYTICS_PERSISTENCE_FAILED")
	assert.Contains(t, err.Error(), "boom")
}

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name            string
		err             *StandardError
		expectedCode    string
		expectedRetries int
	}{
		{"catalog unavailable is retried", NewCatalogUnavailableError("file", fmt.Errorf("x")), "CATALOG_UNAVAILABLE", 3},
		{"search failures collapse to catalog code", NewSearchQueryFailedError("tour_packages", fmt.Errorf("x")), "CATALOG_UNAVAILABLE", 2},
		{"index not found is not retried", NewIndexNotFoundError("tour_packages"), "CATALOG_UNAVAILABLE", 0},
		{"parse error", NewParseError(fmt.Errorf("bad json")), "PARSE_ERROR", 0},
		{"unmapped code passes through", NewInvalidConstraintError("budgetMin", "not a number"), "INVALID_CONSTRAINT", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmnErr := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.expectedCode, bpmnErr.Code)
			assert.Equal(t, tt.expectedRetries, bpmnErr.Retries)

			vars := bpmnErr.ToErrorVariables()
			assert.Equal(t, string(tt.err.Code), vars["originalErrorCode"])
			assert.Equal(t, tt.expectedCode, vars["errorCode"])
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "CATALOG", GetErrorCategory(ErrCodeCatalogUnavailable))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeQueryExecutionFailed))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeIndexNotFound))
	assert.Equal(t, "ANALYTICS", GetErrorCategory(ErrCodeAnalyticsPersistenceFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidConstraint))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeParseError))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeCatalogUnavailable))
	assert.False(t, IsRetryableErrorCode(ErrCodeAnalyticsPersistenceFailed))
}
