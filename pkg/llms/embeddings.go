package llms

import (
	"fmt"

	"github.com/semshift/semshift/config"
	"github.com/semshift/semshift/pkg/models"
)

// NewEmbeddingsClient creates the embedding provider configured in
// embeddings.service.
func NewEmbeddingsClient(cfg *config.Config) (models.EmbeddingsClient, error) {
	switch cfg.Embeddings.Service {
	// For now we only support OpenAI embeddings
	case "openai":
		return NewOpenAIEmbeddingsClient(cfg)
	default:
		return nil, fmt.Errorf("invalid embeddings service: %s", cfg.Embeddings.Service)
	}
}
