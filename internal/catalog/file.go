package catalog

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"tour-workers/internal/common/errors"
	"tour-workers/internal/common/logger"
	"tour-workers/internal/common/metrics"
	"tour-workers/internal/common/validation"
	"tour-workers/internal/models"
)

const sourceFile = "file"

// FileStore reads a JSON array of package documents on every List, so edits
// to the seed file are picked up without a restart.
type FileStore struct {
	path        string
	maxPackages int
	validator   *validation.Validator
	logger      logger.Logger
}

func NewFileStore(path string, maxPackages int, log logger.Logger) (*FileStore, error) {
	v, err := validation.PackageValidator()
	if err != nil {
		return nil, err
	}
	return &FileStore{
		path:        path,
		maxPackages: capOrDefault(maxPackages),
		validator:   v,
		logger:      log.WithFields(map[string]interface{}{"catalogSource": sourceFile, "path": path}),
	}, nil
}

func (s *FileStore) List(_ context.Context) ([]models.Package, error) {
	start := time.Now()
	defer func() {
		metrics.CatalogLoadDuration.WithLabelValues(sourceFile).Observe(time.Since(start).Seconds())
	}()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.NewCatalogUnavailableError(sourceFile, err)
	}

	var docs []json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, errors.NewCatalogDecodeFailedError(sourceFile, err)
	}

	return finalize(decodeDocuments(docs, s.validator, s.logger), s.maxPackages), nil
}
