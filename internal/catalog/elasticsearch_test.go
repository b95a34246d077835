package catalog

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"tour-workers/internal/common/errors"
	"tour-workers/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func esResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header: http.Header{
			"X-Elastic-Product": []string{"Elasticsearch"},
			"Content-Type":      []string{"application/json"},
		},
		Body: io.NopCloser(strings.NewReader(body)),
	}
}

func newFakeES(t *testing.T, fn roundTripFunc) *elasticsearch.Client {
	t.Helper()
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://es.test:9200"},
		Transport: fn,
	})
	require.NoError(t, err)
	return client
}

func TestElasticsearchStore_List(t *testing.T) {
	var searchedPath string
	var query map[string]interface{}

	client := newFakeES(t, func(r *http.Request) (*http.Response, error) {
		searchedPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&query))
		return esResponse(http.StatusOK, `{
			"hits": {"hits": [
				{"_source": {"id":"pkg-2","name":"Bali Beach Escape","duration":"5 Days","type":"beach","price":699}},
				{"_source": {"id":"pkg-1","name":"Kyoto Temples","duration":"7 Days","type":"cultural","price":899}},
				{"_source": {"id":"pkg-9","duration":"2 Days"}}
			]}
		}`), nil
	})

	store, err := NewElasticsearchStore(client, "tour_packages", 25, logger.NewTestLogger(t))
	require.NoError(t, err)

	pkgs, err := store.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/tour_packages/_search", searchedPath)
	assert.Equal(t, float64(25), query["size"])
	assert.Contains(t, query, "sort")

	require.Len(t, pkgs, 2)
	assert.Equal(t, "pkg-1", pkgs[0].ID)
	assert.Equal(t, "pkg-2", pkgs[1].ID)
}

func TestElasticsearchStore_Errors(t *testing.T) {
	t.Run("missing index", func(t *testing.T) {
		client := newFakeES(t, func(*http.Request) (*http.Response, error) {
			return esResponse(http.StatusNotFound, `{"error":{"type":"index_not_found_exception"}}`), nil
		})
		store, err := NewElasticsearchStore(client, "tour_packages", 0, logger.NewTestLogger(t))
		require.NoError(t, err)

		_, err = store.List(context.Background())
		stdErr, ok := errors.AsStandardError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeIndexNotFound, stdErr.Code)
		assert.Equal(t, "CATALOG_UNAVAILABLE", errors.ConvertToBPMNError(stdErr).Code)
	})

	t.Run("server error", func(t *testing.T) {
		client := newFakeES(t, func(*http.Request) (*http.Response, error) {
			return esResponse(http.StatusInternalServerError, `{"error":"boom"}`), nil
		})
		store, err := NewElasticsearchStore(client, "tour_packages", 0, logger.NewTestLogger(t))
		require.NoError(t, err)

		_, err = store.List(context.Background())
		assert.True(t, stderrors.Is(err, errors.ErrCatalogUnavailable))
	})
}
