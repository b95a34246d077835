package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tour-workers/internal/common/errors"
	"tour-workers/internal/common/logger"
	"tour-workers/internal/common/metrics"
	"tour-workers/internal/common/validation"
	"tour-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

const sourceElasticsearch = "elasticsearch"

// ElasticsearchStore reads package documents from a search index. The index
// must map id as a keyword so the snapshot can be sorted on it.
type ElasticsearchStore struct {
	client      *elasticsearch.Client
	index       string
	maxPackages int
	validator   *validation.Validator
	logger      logger.Logger
}

func NewElasticsearchStore(client *elasticsearch.Client, index string, maxPackages int, log logger.Logger) (*ElasticsearchStore, error) {
	v, err := validation.PackageValidator()
	if err != nil {
		return nil, err
	}
	return &ElasticsearchStore{
		client:      client,
		index:       index,
		maxPackages: capOrDefault(maxPackages),
		validator:   v,
		logger:      log.WithFields(map[string]interface{}{"catalogSource": sourceElasticsearch, "index": index}),
	}, nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticsearchStore) buildQuery() map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		"sort": []interface{}{
			map[string]interface{}{"id": map[string]interface{}{"order": "asc"}},
		},
		"size": s.maxPackages,
	}
}

func (s *ElasticsearchStore) List(ctx context.Context) ([]models.Package, error) {
	start := time.Now()
	defer func() {
		metrics.CatalogLoadDuration.WithLabelValues(sourceElasticsearch).Observe(time.Since(start).Seconds())
	}()

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(s.buildQuery()); err != nil {
		return nil, errors.NewInternalError(err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(&body),
		s.client.Search.WithTrackTotalHits(false),
	)
	if err != nil {
		return nil, errors.NewCatalogUnavailableError(sourceElasticsearch,
			errors.NewElasticsearchConnectionFailedError(err))
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, errors.NewIndexNotFoundError(s.index)
	}
	if res.IsError() {
		return nil, errors.NewCatalogUnavailableError(sourceElasticsearch,
			errors.NewSearchQueryFailedError(s.index, fmt.Errorf("status %s", res.Status())))
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, errors.NewCatalogDecodeFailedError(sourceElasticsearch, err)
	}

	docs := make([]json.RawMessage, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		docs = append(docs, hit.Source)
	}

	return finalize(decodeDocuments(docs, s.validator, s.logger), s.maxPackages), nil
}
