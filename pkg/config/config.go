package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Defaults for crawl limits. Depth is counted from the root user at 1.
const (
	DefaultDepthLimit         = 3
	DefaultFriendsLimit       = 100
	DefaultSubscriptionsLimit = 300
	DefaultNeo4jURI           = "bolt://localhost:7687"
)

// Config holds all application configuration
type Config struct {
	// VK credentials
	AccessToken  string // primary user token
	ServiceToken string // secondary token for bulk group lookups

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	// Crawl limits
	DepthLimit         int
	FriendsLimit       int
	SubscriptionsLimit int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		AccessToken:        getEnv("VK_ACCESS_TOKEN", ""),
		ServiceToken:       getEnv("VK_SERVICE_TOKEN", ""),
		Neo4jURI:           getEnv("NEO4J_URI", DefaultNeo4jURI),
		Neo4jUser:          getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:      getEnv("NEO4J_PASSWORD", ""),
		DepthLimit:         getEnvInt("DEPTH_LIMIT", DefaultDepthLimit),
		FriendsLimit:       getEnvInt("FRIENDS_LIMIT", DefaultFriendsLimit),
		SubscriptionsLimit: getEnvInt("SUBSCRIPTIONS_LIMIT", DefaultSubscriptionsLimit),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set.
// VK tokens are not checked here: the CLI prompts for them interactively
// when they are absent from the environment.
func (c *Config) Validate() error {
	if c.Neo4jURI == "" {
		return fmt.Errorf("NEO4J_URI is required")
	}
	if c.Neo4jUser == "" {
		return fmt.Errorf("NEO4J_USER is required")
	}
	if c.DepthLimit < 1 {
		return fmt.Errorf("DEPTH_LIMIT must be at least 1")
	}
	if c.FriendsLimit < 0 || c.SubscriptionsLimit < 0 {
		return fmt.Errorf("crawl limits must not be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
