package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the HarmattanAI server.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Agent    AgentConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

// AgentConfig configures the hosted-agent dispatch pipeline.
type AgentConfig struct {
	// Providers is the set of configured invokers: azure-only, or azure+openai.
	Providers []string
	// CallTimeout bounds each outbound agent call.
	CallTimeout time.Duration
	// Website is the default ICD-10 classification site the agent must cite.
	Website string
	// Language is the default language for code descriptions.
	Language string
	// ResultTTL is how long the latest analysis stays available for validation.
	ResultTTL time.Duration
	// TargetSystems are the hospital systems a validation may address.
	TargetSystems []string

	Azure  AzureConfig
	OpenAI OpenAIConfig
}

type AzureConfig struct {
	TenantID        string
	ClientID        string
	ClientSecret    string
	ProjectEndpoint string
	AgentID         string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

var validProviders = map[string]bool{
	"azure":  true,
	"openai": true,
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("HARMATTAN_PORT", 8080),
			Env:  envString("HARMATTAN_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Agent: AgentConfig{
			Providers:     envList("AGENT_PROVIDERS", []string{"azure"}),
			CallTimeout:   envDurationSecs("AGENT_CALL_TIMEOUT_SECS", 120*time.Second),
			Website:       envString("ICD_WEBSITE", "https://icd.who.int/browse10/2019/en"),
			Language:      envString("ICD_LANGUAGE", "en"),
			ResultTTL:     envDuration("ANALYSIS_RESULT_TTL", 30*time.Minute),
			TargetSystems: envList("TARGET_SYSTEMS", []string{"Hopital Management", "DEDALUS", "CEGEDIM"}),
			Azure: AzureConfig{
				TenantID:        os.Getenv("AZURE_TENANT_ID"),
				ClientID:        os.Getenv("AZURE_CLIENT_ID"),
				ClientSecret:    os.Getenv("AZURE_CLIENT_SECRET"),
				ProjectEndpoint: os.Getenv("AZURE_AI_PROJECT_ENDPOINT"),
				AgentID:         os.Getenv("AZURE_AI_AGENT_ID"),
			},
			OpenAI: OpenAIConfig{
				APIKey: os.Getenv("OPENAI_API_KEY"),
				Model:  envString("OPENAI_MODEL", "gpt-4o"),
			},
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if len(c.Agent.Providers) == 0 {
		return fmt.Errorf("AGENT_PROVIDERS is required")
	}
	for _, p := range c.Agent.Providers {
		if !validProviders[p] {
			return fmt.Errorf("AGENT_PROVIDERS entries must be one of azure, openai; got %q", p)
		}
	}

	if !strings.HasPrefix(c.Agent.Website, "http://") && !strings.HasPrefix(c.Agent.Website, "https://") {
		return fmt.Errorf("ICD_WEBSITE must start with http:// or https://, got %q", c.Agent.Website)
	}

	if c.HasProvider("azure") {
		required := map[string]string{
			"AZURE_TENANT_ID":           c.Agent.Azure.TenantID,
			"AZURE_CLIENT_ID":           c.Agent.Azure.ClientID,
			"AZURE_CLIENT_SECRET":       c.Agent.Azure.ClientSecret,
			"AZURE_AI_PROJECT_ENDPOINT": c.Agent.Azure.ProjectEndpoint,
		}
		for _, env := range []string{"AZURE_TENANT_ID", "AZURE_CLIENT_ID", "AZURE_CLIENT_SECRET", "AZURE_AI_PROJECT_ENDPOINT"} {
			if required[env] == "" {
				return fmt.Errorf("%s is required when AGENT_PROVIDERS includes azure", env)
			}
		}
	}
	if c.HasProvider("openai") && c.Agent.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when AGENT_PROVIDERS includes openai")
	}

	return nil
}

// HasProvider reports whether the named provider is configured.
func (c *Config) HasProvider(name string) bool {
	for _, p := range c.Agent.Providers {
		if p == name {
			return true
		}
	}
	return false
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}

func envList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
