package transcribe

import (
	"context"
	"fmt"
	"log/slog"

	"subburn/internal/logging"
)

// Cache keeps the most recently loaded model for one node instance.
// It is not safe for concurrent use; callers process one invocation at a
// time.
type Cache struct {
	loader Loader
	logger *slog.Logger

	model Model
	size  string
}

// NewCache returns an empty cache backed by loader.
func NewCache(loader Loader, logger *slog.Logger) *Cache {
	return &Cache{loader: loader, logger: logging.NewComponentLogger(logger, "transcribe")}
}

// Acquire returns the cached model when size matches the last load and
// loads a new one otherwise. A failed load leaves the previous model in
// place.
func (c *Cache) Acquire(ctx context.Context, size string) (Model, error) {
	if c.model != nil && c.size == size {
		return c.model, nil
	}
	if err := ValidateSize(size); err != nil {
		return nil, err
	}
	c.logger.Info("loading transcription model", logging.String("model_size", size))
	model, err := c.loader.Load(ctx, size)
	if err != nil {
		return nil, fmt.Errorf("load %s model: %w", size, err)
	}
	c.model = model
	c.size = size
	c.logger.Info("transcription model ready", logging.String("model", model.Name()))
	return model, nil
}

// Loaded returns the cached model and its size, if any.
func (c *Cache) Loaded() (Model, string) {
	return c.model, c.size
}
