package cache

import (
	"context"
	"errors"
	"io/fs"
	"sync"
	"sync/atomic"

	"github.com/semshift/semshift/config"
	"github.com/semshift/semshift/internal"
	"github.com/semshift/semshift/pkg/models"
	"github.com/semshift/semshift/pkg/search"
)

var log = internal.GetLogger()

const DefaultBatchSize = 64

var _ models.EmbeddingCache = &Cache{}

// Cache owns the vocabulary embedding matrix. A rebuild assembles the new
// matrix fully off to the side and publishes it with a single atomic
// pointer swap, so concurrent searches see the old matrix or the new one,
// never a partially populated buffer. The mutex serializes rebuilds.
type Cache struct {
	client    models.EmbeddingsClient
	vocab     *models.Vocabulary
	model     models.EmbeddingModel
	dir       string
	batchSize int

	mu     sync.Mutex
	matrix atomic.Pointer[models.EmbeddingMatrix]
}

func NewCache(
	cfg *config.Config,
	client models.EmbeddingsClient,
	vocabulary *models.Vocabulary,
) *Cache {
	batchSize := cfg.Embeddings.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Cache{
		client: client,
		vocab:  vocabulary,
		model: models.EmbeddingModel{
			Name:         cfg.Embeddings.Model,
			Dimensions:   cfg.Embeddings.Dimensions,
			IsNormalized: true,
		},
		dir:       cfg.Cache.Dir,
		batchSize: batchSize,
	}
}

func (c *Cache) Model() models.EmbeddingModel {
	return c.model
}

// Metadata reports the published matrix's metadata, if one exists.
func (c *Cache) Metadata() (models.CacheMetadata, bool) {
	m := c.matrix.Load()
	if m == nil {
		return models.CacheMetadata{}, false
	}
	return models.CacheMetadata{
		N:          m.Rows(),
		Dim:        m.Dim,
		Normalized: m.Normalized,
		Signature:  m.Signature,
	}, true
}

// Ensure returns the matrix for the given template, loading the persisted
// copy when its signature matches and rebuilding otherwise. An unreadable
// or mismatched cache is recovered transparently via rebuild; only a
// provider failure during the rebuild itself surfaces as an error.
func (c *Cache) Ensure(ctx context.Context, template string) (*models.EmbeddingMatrix, error) {
	sig := Signature(c.model.Name, c.model.Dimensions, c.vocab.Words(), template)

	if m := c.matrix.Load(); m != nil && m.Signature == sig {
		return m, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have finished the same rebuild while we waited.
	if m := c.matrix.Load(); m != nil && m.Signature == sig {
		return m, nil
	}

	if m, err := loadMatrix(c.dir, c.vocab.Words(), sig); err == nil {
		log.Infof("loaded embedding cache: %d rows, dim %d", m.Rows(), m.Dim)
		c.matrix.Store(m)
		return m, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("embedding cache invalid, rebuilding: %v", err)
	}

	return c.rebuildLocked(ctx, template, sig)
}

// Rebuild forces a full re-embed regardless of what is persisted.
func (c *Cache) Rebuild(ctx context.Context, template string) (*models.EmbeddingMatrix, error) {
	sig := Signature(c.model.Name, c.model.Dimensions, c.vocab.Words(), template)

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.rebuildLocked(ctx, template, sig)
}

func (c *Cache) rebuildLocked(
	ctx context.Context,
	template, sig string,
) (*models.EmbeddingMatrix, error) {
	m, err := c.build(ctx, template, sig)
	if err != nil {
		return nil, err
	}
	c.matrix.Store(m)

	if err := saveMatrix(c.dir, m); err != nil {
		// The in-memory matrix stays valid; the next process rebuilds.
		log.Errorf("failed to persist embedding cache: %v", err)
	}
	return m, nil
}

// build embeds the vocabulary in batches and unit-normalizes every row.
// When the dimension is not configured, a single item is probed first to
// learn it before the full buffer is allocated.
func (c *Cache) build(ctx context.Context, template, sig string) (*models.EmbeddingMatrix, error) {
	words := c.vocab.Words()
	n := len(words)
	dim := c.model.Dimensions

	if n == 0 {
		return &models.EmbeddingMatrix{
			Words:      words,
			Dim:        dim,
			Normalized: true,
			Signature:  sig,
		}, nil
	}

	texts := make([]string, n)
	for i, w := range words {
		texts[i] = internal.ApplyTemplate(template, w)
	}

	var data []float32
	start := 0
	if dim == 0 {
		out, err := c.client.EmbedTexts(ctx, texts[:1])
		if err != nil {
			return nil, err
		}
		dim, err = out.ProbeDim(1)
		if err != nil {
			return nil, err
		}
		rows, err := out.Rows(1, dim)
		if err != nil {
			return nil, err
		}
		data = make([]float32, n*dim)
		copy(data[:dim], rows[0])
		start = 1
		log.Debugf("probed embedding dimension: %d", dim)
	} else {
		data = make([]float32, n*dim)
	}

	for lo := start; lo < n; lo += c.batchSize {
		hi := min(lo+c.batchSize, n)
		out, err := c.client.EmbedTexts(ctx, texts[lo:hi])
		if err != nil {
			return nil, err
		}
		rows, err := out.Rows(hi-lo, dim)
		if err != nil {
			return nil, err
		}
		for i, row := range rows {
			copy(data[(lo+i)*dim:(lo+i+1)*dim], row)
		}
	}

	for i := 0; i < n; i++ {
		search.Normalize(data[i*dim : (i+1)*dim])
	}

	log.Infof("built embedding cache: %d rows, dim %d", n, dim)
	return &models.EmbeddingMatrix{
		Words:      words,
		Dim:        dim,
		Normalized: true,
		Signature:  sig,
		Data:       data,
	}, nil
}
