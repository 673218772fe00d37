package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aven-ai/support-agent/internal/cache"
	"github.com/aven-ai/support-agent/internal/config"
	"github.com/aven-ai/support-agent/internal/embedding"
	"github.com/aven-ai/support-agent/internal/embedding/huggingface"
	"github.com/aven-ai/support-agent/internal/embedding/titan"
	"github.com/aven-ai/support-agent/internal/generation"
	"github.com/aven-ai/support-agent/internal/guardrails"
	"github.com/aven-ai/support-agent/internal/llm"
	"github.com/aven-ai/support-agent/internal/llm/bedrock"
	"github.com/aven-ai/support-agent/internal/llm/gemini"
	"github.com/aven-ai/support-agent/internal/metrics"
	"github.com/aven-ai/support-agent/internal/orchestrator"
	"github.com/aven-ai/support-agent/internal/pinecone"
	"github.com/aven-ai/support-agent/internal/prompts"
	"github.com/aven-ai/support-agent/internal/retrieval"
	"github.com/rs/zerolog"
)

type Config struct {
	Port     string
	LogLevel string

	LLMProvider   string
	GeminiAPIKey  string
	GeminiModelID string
	AWSRegion     string
	ClaudeModelID string
	MaxTokens     int
	Temperature   float64

	EmbeddingProvider string
	HuggingFaceToken  string
	EmbeddingModelURL string
	TitanModelID      string

	PineconeAPIKey    string
	PineconeBaseURL   string
	PineconeNamespace string
	SimilarityTopK    uint32

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	StreamChunkWords int
	StreamChunkDelay time.Duration
}

type Dependencies struct {
	Orchestrator *orchestrator.Orchestrator
	Collector    *metrics.Collector
	Logger       *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		Port:     getEnv("API_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		LLMProvider:   getEnv("LLM_PROVIDER", "gemini"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModelID: getEnv("GEMINI_MODEL", "gemini-pro"),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID: getEnv("CLAUDE_MODEL_ID", ""),
		MaxTokens:     getEnvInt("LLM_MAX_TOKENS", 2000),
		Temperature:   getEnvFloat("LLM_TEMPERATURE", 0.0),

		EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "huggingface"),
		HuggingFaceToken:  getEnv("HUGGINGFACE_API_TOKEN", ""),
		EmbeddingModelURL: getEnv("EMBEDDING_MODEL_URL", ""),
		TitanModelID:      getEnv("TITAN_MODEL_ID", ""),

		PineconeAPIKey:    getEnv("PINECONE_API_KEY", ""),
		PineconeBaseURL:   getEnv("PINECONE_BASE_URL", ""),
		PineconeNamespace: getEnv("PINECONE_NAMESPACE", "aven-docs"),
		SimilarityTopK:    uint32(getEnvInt("SIMILARITY_TOP_K", 5)),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      time.Duration(getEnvInt("CACHE_TTL_SECONDS", 3600)) * time.Second,

		StreamChunkWords: getEnvInt("STREAM_CHUNK_WORDS", 3),
		StreamChunkDelay: time.Duration(getEnvInt("STREAM_CHUNK_DELAY_MS", 40)) * time.Millisecond,
	}
}

// Wire builds the full pipeline. Any missing credential or unreadable
// template fails here, before the service starts taking traffic.
func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	extensions, err := config.LoadGuardrailExtensions()
	if err != nil {
		return nil, err
	}

	engine, err := guardrails.NewEngine(extensions)
	if err != nil {
		return nil, fmt.Errorf("failed to build guardrail engine: %w", err)
	}

	collector := metrics.NewCollector()

	embedder, err := createEmbedder(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}

	index, err := pinecone.NewClient(cfg.PineconeAPIKey, cfg.PineconeBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pinecone client: %w", err)
	}

	retriever := retrieval.NewVectorRetriever(embedder, index, cfg.PineconeNamespace, cfg.SimilarityTopK)

	promptManager, err := prompts.NewManager()
	if err != nil {
		return nil, err
	}

	llmClient, err := createLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	generator := generation.NewGenerator(promptManager, llmClient, cfg.MaxTokens, cfg.Temperature)

	var answers cache.AnswerCache
	if cfg.RedisAddr != "" {
		client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, 3)
		if err != nil {
			return nil, err
		}
		answers = cache.NewRedisCache(client, cfg.CacheTTL)
	}

	orch := orchestrator.New(engine, retriever, generator, collector, answers, logger)

	return &Dependencies{
		Orchestrator: orch,
		Collector:    collector,
		Logger:       logger,
	}, nil
}

func createLLMClient(ctx context.Context, cfg *Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case "gemini":
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	default:
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	}
}

func createEmbedder(ctx context.Context, cfg *Config) (embedding.Embedder, error) {
	switch cfg.EmbeddingProvider {
	case "bedrock":
		return titan.NewClient(ctx, cfg.AWSRegion, cfg.TitanModelID)
	case "huggingface":
		return huggingface.NewClient(cfg.HuggingFaceToken, cfg.EmbeddingModelURL)
	default:
		return huggingface.NewClient(cfg.HuggingFaceToken, cfg.EmbeddingModelURL)
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		value = defaultValue
	}

	return value
}
