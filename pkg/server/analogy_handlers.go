package server

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/semshift/semshift/pkg/analogy"
	"github.com/semshift/semshift/pkg/models"
	"github.com/semshift/semshift/pkg/projection"
	"github.com/semshift/semshift/pkg/search"
)

var validate = validator.New()

// SearchAnalogyHandler runs the full analogy pipeline: ensure the cache,
// translate the target through the averaged seed-pair shift, rank the
// vocabulary, and project the result set for visualization.
//
// A cache rebuild triggered lazily by this request failing aborts the
// request; projection failure does not, the neighbors are returned with
// zeroed coordinates.
func SearchAnalogyHandler(appState *models.AppState) http.HandlerFunc {
	engine := analogy.NewEngine(appState.EmbeddingsClient)
	adapter := projection.NewPCAAdapter()

	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AnalogySearchRequest
		if err := decodeJSON(r, &req); err != nil {
			renderError(w, err, http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			renderError(w, err, http.StatusBadRequest)
			return
		}

		k := appState.Config.Search.DefaultK
		if req.K != nil {
			k = *req.K
		}

		matrix, err := appState.Cache.Ensure(r.Context(), req.Template)
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}

		tr, err := engine.Translate(r.Context(), req.Pairs, req.Target, req.Template, matrix)
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}

		exclude := make(map[string]struct{})
		if req.ExcludeInputs == nil || *req.ExcludeInputs {
			exclude[req.Target] = struct{}{}
			for _, p := range tr.Pairs {
				exclude[p.From] = struct{}{}
				exclude[p.To] = struct{}{}
			}
		}

		neighbors := search.TopK(matrix, tr.Translated, k, exclude)
		for i := range neighbors {
			neighbors[i].POS = appState.Vocabulary.POSFor(neighbors[i].Word)
		}

		proj, links := adapter.Project(matrix, neighbors, req.Target, tr, req.IncludeSeeds)

		model := appState.Cache.Model()
		resp := models.AnalogySearchResponse{
			Neighbors:         neighbors,
			Points:            proj.Points,
			SeedLinks:         links,
			ExplainedVariance: proj.ExplainedVariance,
			Meta: models.AnalogyMeta{
				RequestID:    uuid.New(),
				Model:        model.Name,
				Dim:          matrix.Dim,
				Normalized:   matrix.Normalized,
				Signature:    matrix.Signature,
				K:            k,
				SkippedPairs: tr.SkippedPairs,
			},
		}
		if err := encodeJSON(w, resp); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// GetCacheMetadataHandler reports the published cache metadata.
func GetCacheMetadataHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		meta, ok := appState.Cache.Metadata()
		if !ok {
			renderError(w, fmt.Errorf("no embedding cache built yet"), http.StatusNotFound)
			return
		}
		if err := encodeJSON(w, meta); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

type rebuildRequest struct {
	Template string `json:"template"`
}

// RebuildCacheHandler forces a full re-embed of the vocabulary. Unlike
// the lazy path, failures here are the operation's result and surface to
// the caller.
func RebuildCacheHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rebuildRequest
		if r.ContentLength > 0 {
			if err := decodeJSON(r, &req); err != nil {
				renderError(w, err, http.StatusBadRequest)
				return
			}
		}

		matrix, err := appState.Cache.Rebuild(r.Context(), req.Template)
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}

		meta := models.CacheMetadata{
			N:          matrix.Rows(),
			Dim:        matrix.Dim,
			Normalized: matrix.Normalized,
			Signature:  matrix.Signature,
		}
		if err := encodeJSON(w, meta); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// GetVocabularyHandler returns the working vocabulary with any POS
// metadata the word source provided.
func GetVocabularyHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := encodeJSON(w, appState.Vocabulary); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
