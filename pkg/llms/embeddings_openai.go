package llms

import (
	"context"
	"errors"

	"github.com/hashicorp/go-retryablehttp"
	openai "github.com/sashabaranov/go-openai"

	"github.com/semshift/semshift/config"
	"github.com/semshift/semshift/internal"
	"github.com/semshift/semshift/pkg/models"
)

const EmbeddingsOpenAIAPIKeyNotSetError = "SEMSHIFT_OPENAI_API_KEY is not set" //nolint:gosec

const openAIMaxRetries = 3

var _ models.EmbeddingsClient = &OpenAIEmbeddingsClient{}

type OpenAIEmbeddingsClient struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
}

func NewOpenAIEmbeddingsClient(cfg *config.Config) (*OpenAIEmbeddingsClient, error) {
	if cfg.Embeddings.OpenAIAPIKey == "" {
		return nil, errors.New(EmbeddingsOpenAIAPIKeyNotSetError)
	}

	clientConfig := openai.DefaultConfig(cfg.Embeddings.OpenAIAPIKey)
	if cfg.Embeddings.OpenAIEndpoint != "" {
		clientConfig.BaseURL = cfg.Embeddings.OpenAIEndpoint
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = openAIMaxRetries
	retryClient.Logger = internal.NewLeveledLogrus(internal.GetLogger())
	clientConfig.HTTPClient = retryClient.StandardClient()

	return &OpenAIEmbeddingsClient{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      openai.EmbeddingModel(cfg.Embeddings.Model),
		dimensions: cfg.Embeddings.Dimensions,
	}, nil
}

// EmbedTexts embeds a batch of texts in one request. The response is
// reordered by the per-item index the API reports, so output order always
// matches input order.
func (c *OpenAIEmbeddingsClient) EmbedTexts(
	ctx context.Context,
	texts []string,
) (*models.BatchOutput, error) {
	if len(texts) == 0 {
		return nil, models.NewProviderError("no text to embed", nil)
	}

	req := openai.EmbeddingRequestStrings{
		Input: texts,
		Model: c.model,
	}
	if c.dimensions > 0 {
		req.Dimensions = c.dimensions
	}

	resp, err := c.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, models.NewProviderError("embeddings request failed", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, models.NewProviderError("provider returned wrong vector count", nil)
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			return nil, models.NewProviderError("provider returned an out-of-range item index", nil)
		}
		vectors[d.Index] = d.Embedding
	}
	for _, v := range vectors {
		if v == nil {
			return nil, models.NewProviderError("provider response is missing an item", nil)
		}
	}

	return models.NewPerItemBatch(vectors), nil
}
