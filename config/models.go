package config

// Config holds the configuration of the application
// Use cmd.NewConfig to create a new instance
type Config struct {
	Embeddings EmbeddingsConfig `mapstructure:"embeddings"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Search     SearchConfig     `mapstructure:"search"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
}

// EmbeddingsConfig configures the embedding provider used to build the
// vocabulary matrix and to embed per-request words.
type EmbeddingsConfig struct {
	Service    string `mapstructure:"service"`
	Model      string `mapstructure:"model"`
	Dimensions int    `mapstructure:"dimensions"`
	BatchSize  int    `mapstructure:"batch_size"`
	// OpenAIAPIKey is loaded from ENV not config file.
	OpenAIAPIKey   string `mapstructure:"openai_api_key"`
	OpenAIEndpoint string `mapstructure:"openai_endpoint"`
}

type VocabularyConfig struct {
	// Path to a line-delimited word source. A missing file is not an
	// error; the built-in fallback vocabulary is used instead.
	Path string `mapstructure:"path"`
}

type CacheConfig struct {
	// Dir holds the persisted embedding matrix and its metadata.
	Dir string `mapstructure:"dir"`
}

type SearchConfig struct {
	DefaultK int `mapstructure:"default_k"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}
