package cache

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/semshift/semshift/pkg/models"
)

const (
	matrixFile   = "embeddings.bin"
	metadataFile = "embeddings.json"
)

var errSignatureMismatch = errors.New("cache signature mismatch")

// saveMatrix persists the raw little-endian float32 blob and its metadata
// as a pair. The blob has no header; shape lives in the metadata file.
func saveMatrix(dir string, m *models.EmbeddingMatrix) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	buf := make([]byte, len(m.Data)*4)
	for i, f := range m.Data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	if err := os.WriteFile(filepath.Join(dir, matrixFile), buf, 0o644); err != nil {
		return err
	}

	meta := models.CacheMetadata{
		N:          m.Rows(),
		Dim:        m.Dim,
		Normalized: m.Normalized,
		Signature:  m.Signature,
	}
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, metadataFile), metaBytes, 0o644)
}

// loadMatrix reads a persisted matrix if both files exist, the signature
// matches, and the blob agrees with the metadata shape. Any other state
// is reported as an error; callers recover by rebuilding.
func loadMatrix(dir string, words []string, signature string) (*models.EmbeddingMatrix, error) {
	metaBytes, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}
	var meta models.CacheMetadata
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, fmt.Errorf("unreadable cache metadata: %w", err)
	}
	if meta.Signature != signature {
		return nil, errSignatureMismatch
	}

	blob, err := os.ReadFile(filepath.Join(dir, matrixFile))
	if err != nil {
		return nil, err
	}
	if meta.N != len(words) || meta.Dim < 0 || len(blob) != meta.N*meta.Dim*4 {
		return nil, fmt.Errorf(
			"cache blob size %d does not match metadata shape [%d, %d]",
			len(blob), meta.N, meta.Dim,
		)
	}

	data := make([]float32, meta.N*meta.Dim)
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}

	return &models.EmbeddingMatrix{
		Words:      words,
		Dim:        meta.Dim,
		Normalized: meta.Normalized,
		Signature:  meta.Signature,
		Data:       data,
	}, nil
}
