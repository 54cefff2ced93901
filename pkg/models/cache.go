package models

import "context"

// CacheMetadata is persisted 1:1 with the binary matrix blob. A load
// succeeds only if both files exist and the signature matches the one
// freshly computed from {model, dim, vocabulary, template}.
type CacheMetadata struct {
	N          int    `json:"n"`
	Dim        int    `json:"dim"`
	Normalized bool   `json:"normalized"`
	Signature  string `json:"signature"`
}

// EmbeddingCache owns the vocabulary embedding matrix.
type EmbeddingCache interface {
	// Ensure returns the current matrix for the given context template,
	// loading it from disk or rebuilding it on a signature mismatch.
	// Idempotent; concurrent callers share one rebuild.
	Ensure(ctx context.Context, template string) (*EmbeddingMatrix, error)
	// Rebuild forces a full re-embed regardless of what is persisted.
	Rebuild(ctx context.Context, template string) (*EmbeddingMatrix, error)
	// Metadata reports the published matrix's metadata, if one exists.
	Metadata() (CacheMetadata, bool)
	Model() EmbeddingModel
}
