package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// SeedPair is one (from, to) example of the semantic shift to learn.
// Request-scoped, never persisted.
//
// Unmarshalling is lenient: a pair with non-string members or the wrong
// arity is marked invalid and skipped by the engine rather than failing
// the whole request. This is a documented input policy, not an accident.
type SeedPair struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Valid bool   `json:"-"`
}

func NewSeedPair(from, to string) SeedPair {
	return SeedPair{From: from, To: to, Valid: true}
}

func (p *SeedPair) UnmarshalJSON(data []byte) error {
	p.Valid = false

	var arr []any
	if err := json.Unmarshal(data, &arr); err == nil {
		if len(arr) != 2 {
			return nil
		}
		from, okFrom := arr[0].(string)
		to, okTo := arr[1].(string)
		if !okFrom || !okTo {
			return nil
		}
		p.From, p.To, p.Valid = from, to, true
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	from, okFrom := obj["from"].(string)
	to, okTo := obj["to"].(string)
	if !okFrom || !okTo {
		return nil
	}
	p.From, p.To, p.Valid = from, to, true
	return nil
}

func (p SeedPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.From, p.To})
}

// AnalogySearchRequest is the payload of POST /api/v1/analogy/search.
type AnalogySearchRequest struct {
	Pairs    []SeedPair `json:"pairs"`
	Target   string     `json:"target" validate:"required"`
	K        *int       `json:"k,omitempty"`
	Template string     `json:"template,omitempty"`
	// IncludeSeeds adds each seed word's own embedding to the
	// visualization point set, linked from-to.
	IncludeSeeds bool `json:"include_seeds,omitempty"`
	// ExcludeInputs removes the target and all seed words from the
	// neighbor ranking. Defaults to true when omitted.
	ExcludeInputs *bool `json:"exclude_inputs,omitempty"`
}

// NeighborResult is one ranked vocabulary word. Score is the cosine
// similarity to the translated query vector.
type NeighborResult struct {
	Word     string  `json:"word"`
	Score    float64 `json:"score"`
	RowIndex int     `json:"row_index"`
	POS      string  `json:"pos,omitempty"`
}

// SeedLink joins a seed-from point to its seed-to point by point id.
type SeedLink struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
}

type AnalogyMeta struct {
	RequestID    uuid.UUID `json:"request_id"`
	Model        string    `json:"model"`
	Dim          int       `json:"dim"`
	Normalized   bool      `json:"normalized"`
	Signature    string    `json:"signature"`
	K            int       `json:"k"`
	SkippedPairs int       `json:"skipped_pairs"`
}

type AnalogySearchResponse struct {
	Neighbors         []NeighborResult     `json:"neighbors"`
	Points            []VisualizationPoint `json:"points"`
	SeedLinks         []SeedLink           `json:"seed_links,omitempty"`
	ExplainedVariance []float64            `json:"explained_variance"`
	Meta              AnalogyMeta          `json:"meta"`
}
