package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semshift/semshift/config"
	"github.com/semshift/semshift/pkg/cache"
	"github.com/semshift/semshift/pkg/models"
	"github.com/semshift/semshift/pkg/testutils"
)

func testAppState(t *testing.T) *models.AppState {
	t.Helper()

	cfg := &config.Config{
		Embeddings: config.EmbeddingsConfig{
			Service:    "stub",
			Model:      "stub-model",
			Dimensions: 4,
			BatchSize:  8,
		},
		Cache:  config.CacheConfig{Dir: t.TempDir()},
		Search: config.SearchConfig{DefaultK: 3},
	}

	words := testutils.AnalogyFixtureWords()
	entries := make([]models.VocabEntry, len(words))
	for i, w := range words {
		entries[i] = models.VocabEntry{Word: w, POS: "verb"}
	}
	vocabulary := &models.Vocabulary{Entries: entries}

	client := &testutils.StubEmbeddings{Dim: 4, Fixtures: testutils.AnalogyFixtureVectors()}

	return &models.AppState{
		EmbeddingsClient: client,
		Cache:            cache.NewCache(cfg, client, vocabulary),
		Vocabulary:       vocabulary,
		Config:           cfg,
	}
}

func postJSON(t *testing.T, ts *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	return resp
}

func TestSearchAnalogyScenario(t *testing.T) {
	ts := httptest.NewServer(setupRouter(testAppState(t)))
	defer ts.Close()

	body := `{"pairs": [["garden","gardening"]], "target": "work", "k": 1, "include_seeds": true}`
	resp := postJSON(t, ts, "/api/v1/analogy/search", body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Semshift-Version"))

	var result models.AnalogySearchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	require.Len(t, result.Neighbors, 1)
	assert.Equal(t, "working", result.Neighbors[0].Word)
	assert.Equal(t, "verb", result.Neighbors[0].POS)

	// 1 neighbor + target + predicted + seed from/to
	assert.Len(t, result.Points, 5)
	assert.Len(t, result.SeedLinks, 1)

	assert.Equal(t, "stub-model", result.Meta.Model)
	assert.Equal(t, 4, result.Meta.Dim)
	assert.True(t, result.Meta.Normalized)
	assert.NotEmpty(t, result.Meta.Signature)
	assert.Zero(t, result.Meta.SkippedPairs)
}

func TestSearchExcludesInputsByDefault(t *testing.T) {
	ts := httptest.NewServer(setupRouter(testAppState(t)))
	defer ts.Close()

	body := `{"pairs": [["garden","gardening"]], "target": "work", "k": 10}`
	resp := postJSON(t, ts, "/api/v1/analogy/search", body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.AnalogySearchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	for _, n := range result.Neighbors {
		assert.NotContains(t, []string{"work", "garden", "gardening"}, n.Word)
	}
}

func TestSearchDefaultsK(t *testing.T) {
	ts := httptest.NewServer(setupRouter(testAppState(t)))
	defer ts.Close()

	resp := postJSON(t, ts, "/api/v1/analogy/search", `{"pairs": [], "target": "work"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.AnalogySearchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 3, result.Meta.K)
	assert.LessOrEqual(t, len(result.Neighbors), 3)
}

func TestSearchCountsSkippedPairs(t *testing.T) {
	ts := httptest.NewServer(setupRouter(testAppState(t)))
	defer ts.Close()

	body := `{"pairs": [["garden","gardening"], ["belief", 7], [null, "x"]], "target": "work"}`
	resp := postJSON(t, ts, "/api/v1/analogy/search", body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.AnalogySearchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 2, result.Meta.SkippedPairs)
}

func TestSearchMissingTargetFails(t *testing.T) {
	ts := httptest.NewServer(setupRouter(testAppState(t)))
	defer ts.Close()

	resp := postJSON(t, ts, "/api/v1/analogy/search", `{"pairs": []}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCacheMetadataLifecycle(t *testing.T) {
	ts := httptest.NewServer(setupRouter(testAppState(t)))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/cache")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = postJSON(t, ts, "/api/v1/cache/rebuild", `{"template": "I saw {w}"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var meta models.CacheMetadata
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&meta))
	resp.Body.Close()
	assert.Equal(t, 6, meta.N)
	assert.Equal(t, 4, meta.Dim)
	assert.True(t, meta.Normalized)

	resp, err = http.Get(ts.URL + "/api/v1/cache")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var meta2 models.CacheMetadata
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&meta2))
	assert.Equal(t, meta.Signature, meta2.Signature)
}

func TestGetVocabulary(t *testing.T) {
	ts := httptest.NewServer(setupRouter(testAppState(t)))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/vocab")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var v models.Vocabulary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	assert.Equal(t, 6, v.Len())
}

func TestHealthz(t *testing.T) {
	ts := httptest.NewServer(setupRouter(testAppState(t)))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
