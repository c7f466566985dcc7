package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_InvalidEmbeddingProvider(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{URI: "mongodb://localhost:27017"},
		Embedding: EmbeddingConfig{
			Provider: "cohere",
		},
		Generation: GenerationConfig{Provider: "huggingface"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid embedding provider")
	}

	expected := `embedding.provider must be "huggingface" or "openai", got "cohere"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_InvalidGenerationProvider(t *testing.T) {
	cfg := Config{
		HTTP:       HTTPConfig{Port: 8080},
		Database:   DatabaseConfig{URI: "mongodb://localhost:27017"},
		Embedding:  EmbeddingConfig{Provider: "huggingface"},
		Generation: GenerationConfig{Provider: "anthropic"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid generation provider")
	}
}

func TestValidate_ValidProviders(t *testing.T) {
	providers := []string{"huggingface", "openai"}

	for _, provider := range providers {
		t.Run("provider="+provider, func(t *testing.T) {
			cfg := Config{
				HTTP:     HTTPConfig{Port: 8080},
				Database: DatabaseConfig{URI: "mongodb://localhost:27017"},
				Embedding: EmbeddingConfig{
					Provider: provider,
					APIKey:   "test-key",
				},
				Generation: GenerationConfig{Provider: provider},
			}

			err := cfg.Validate()
			if err != nil {
				t.Fatalf("unexpected error for valid provider %q: %v", provider, err)
			}
		})
	}
}

func TestValidate_OpenAIEmbeddingRequiresKey(t *testing.T) {
	cfg := Config{
		HTTP:       HTTPConfig{Port: 8080},
		Database:   DatabaseConfig{URI: "mongodb://localhost:27017"},
		Embedding:  EmbeddingConfig{Provider: "openai"},
		Generation: GenerationConfig{Provider: "huggingface"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for openai embedding without api key")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 0},
		Database: DatabaseConfig{URI: "mongodb://localhost:27017"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseURI(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing database uri")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.Database != "test" {
		t.Errorf("expected Database='test', got %q", cfg.Database.Database)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Index.Collection != "knowledge_docs" {
		t.Errorf("expected Collection='knowledge_docs', got %q", cfg.Index.Collection)
	}
	if cfg.Index.Name != "vector_index" {
		t.Errorf("expected Name='vector_index', got %q", cfg.Index.Name)
	}
	if cfg.Index.Path != "embedding" {
		t.Errorf("expected Path='embedding', got %q", cfg.Index.Path)
	}
	if cfg.Embedding.Provider != "huggingface" {
		t.Errorf("expected embedding provider 'huggingface', got %q", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Model != "sentence-transformers/all-MiniLM-L6-v2" {
		t.Errorf("unexpected embedding model %q", cfg.Embedding.Model)
	}
	if cfg.Generation.Provider != "huggingface" {
		t.Errorf("expected generation provider 'huggingface', got %q", cfg.Generation.Provider)
	}
	if cfg.Generation.Model != "mistralai/Mistral-7B-Instruct-v0.2" {
		t.Errorf("unexpected generation model %q", cfg.Generation.Model)
	}
	if cfg.Cache.TTLSec != 86400 {
		t.Errorf("expected cache TTLSec=86400, got %d", cfg.Cache.TTLSec)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:       HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database:   DatabaseConfig{Database: "jobportal", ReadinessTimeout: 15},
		Index:      IndexConfig{Collection: "docs", Name: "embeddings_idx", Path: "vec"},
		Embedding:  EmbeddingConfig{Provider: "openai", Model: "text-embedding-3-small"},
		Generation: GenerationConfig{Provider: "openai", Model: "gpt-4o-mini"},
		Cache:      CacheConfig{TTLSec: 600},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Database != "jobportal" {
		t.Errorf("expected Database='jobportal', got %q", cfg.Database.Database)
	}
	if cfg.Index.Name != "embeddings_idx" {
		t.Errorf("expected Name='embeddings_idx', got %q", cfg.Index.Name)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("expected Model='text-embedding-3-small', got %q", cfg.Embedding.Model)
	}
	if cfg.Cache.TTLSec != 600 {
		t.Errorf("expected TTLSec=600, got %d", cfg.Cache.TTLSec)
	}
}

func TestApplyDefaults_DropsEmptyListEntries(t *testing.T) {
	cfg := Config{
		Cache: CacheConfig{Addrs: []string{"", "localhost:6379", ""}},
		Auth:  AuthConfig{APIKeys: []string{""}},
	}
	cfg.ApplyDefaults()

	if len(cfg.Cache.Addrs) != 1 || cfg.Cache.Addrs[0] != "localhost:6379" {
		t.Errorf("expected one cache addr, got %v", cfg.Cache.Addrs)
	}
	if len(cfg.Auth.APIKeys) != 0 {
		t.Errorf("expected no api keys, got %v", cfg.Auth.APIKeys)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}

	content := `
http:
  port: 8080
database:
  uri: ${RAGCHAT_TEST_MONGO_URI}
  database: ${RAGCHAT_TEST_DB:-portal}
embedding:
  api_key: ${RAGCHAT_TEST_UNSET_KEY:-}
`
	path := filepath.Join(dir, "config", "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("RAGCHAT_TEST_MONGO_URI", "mongodb://db.example.com:27017")
	t.Chdir(dir)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.URI != "mongodb://db.example.com:27017" {
		t.Errorf("expected env-expanded uri, got %q", cfg.Database.URI)
	}
	if cfg.Database.Database != "portal" {
		t.Errorf("expected default-expanded database 'portal', got %q", cfg.Database.Database)
	}
	if cfg.Embedding.APIKey != "" {
		t.Errorf("expected empty api key, got %q", cfg.Embedding.APIKey)
	}
}
