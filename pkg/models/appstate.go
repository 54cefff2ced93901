package models

import (
	"github.com/semshift/semshift/config"
)

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	EmbeddingsClient EmbeddingsClient
	Cache            EmbeddingCache
	Vocabulary       *Vocabulary
	Config           *config.Config
}
