package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"VK_ACCESS_TOKEN", "VK_SERVICE_TOKEN", "NEO4J_URI", "NEO4J_USER", "DEPTH_LIMIT", "FRIENDS_LIMIT", "SUBSCRIPTIONS_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultNeo4jURI, cfg.Neo4jURI)
	assert.Equal(t, "neo4j", cfg.Neo4jUser)
	assert.Equal(t, DefaultDepthLimit, cfg.DepthLimit)
	assert.Equal(t, DefaultFriendsLimit, cfg.FriendsLimit)
	assert.Equal(t, DefaultSubscriptionsLimit, cfg.SubscriptionsLimit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VK_ACCESS_TOKEN", "token-a")
	t.Setenv("VK_SERVICE_TOKEN", "token-b")
	t.Setenv("NEO4J_URI", "bolt://db:7687")
	t.Setenv("DEPTH_LIMIT", "2")
	t.Setenv("FRIENDS_LIMIT", "10")
	t.Setenv("SUBSCRIPTIONS_LIMIT", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token-a", cfg.AccessToken)
	assert.Equal(t, "token-b", cfg.ServiceToken)
	assert.Equal(t, "bolt://db:7687", cfg.Neo4jURI)
	assert.Equal(t, 2, cfg.DepthLimit)
	assert.Equal(t, 10, cfg.FriendsLimit)
	assert.Equal(t, 20, cfg.SubscriptionsLimit)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("DEPTH_LIMIT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultDepthLimit, cfg.DepthLimit)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing URI",
			mutate:  func(c *Config) { c.Neo4jURI = "" },
			wantErr: true,
		},
		{
			name:    "missing user",
			mutate:  func(c *Config) { c.Neo4jUser = "" },
			wantErr: true,
		},
		{
			name:    "zero depth",
			mutate:  func(c *Config) { c.DepthLimit = 0 },
			wantErr: true,
		},
		{
			name:    "negative friends limit",
			mutate:  func(c *Config) { c.FriendsLimit = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Neo4jURI:           DefaultNeo4jURI,
				Neo4jUser:          "neo4j",
				DepthLimit:         DefaultDepthLimit,
				FriendsLimit:       DefaultFriendsLimit,
				SubscriptionsLimit: DefaultSubscriptionsLimit,
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
