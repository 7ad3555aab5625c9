package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secretKey"`
	AccessTokenTTL time.Duration `mapstructure:"accessTokenTTL"`
	Issuer         string        `mapstructure:"issuer"`
	Audience       string        `mapstructure:"audience"`
}

type LLMConfig struct {
	Provider        string        `mapstructure:"provider"`
	APIKey          string        `mapstructure:"apiKey"`
	Model           string        `mapstructure:"model"`
	BaseURL         string        `mapstructure:"baseURL"`
	MaxOutputTokens int32         `mapstructure:"maxOutputTokens"`
	Temperature     float32       `mapstructure:"temperature"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

type MediaSearchConfig struct {
	Endpoint          string        `mapstructure:"endpoint"`
	PlaceholderURL    string        `mapstructure:"placeholderURL"`
	Qualifiers        []string      `mapstructure:"qualifiers"`
	TargetLanguage    string        `mapstructure:"targetLanguage"`
	RequestsPerSecond float64       `mapstructure:"requestsPerSecond"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

type PlaceSearchConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	APIKey        string        `mapstructure:"apiKey"`
	DefaultRadius string        `mapstructure:"defaultRadius"`
	Limit         int           `mapstructure:"limit"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
		// Requests per minute per client IP on POST /qa_transaction.
		QARateLimit    int      `mapstructure:"qaRateLimit"`
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"server"`
	Repositories struct {
		Postgres struct {
			Host              string        `mapstructure:"host"`
			Password          string        `mapstructure:"password"`
			Port              string        `mapstructure:"port"`
			Username          string        `mapstructure:"username"`
			DB                string        `mapstructure:"db"`
			SSLMode           string        `mapstructure:"sslmode"`
			MaxConns          int32         `mapstructure:"maxConns"`
			ConnectTimeout    time.Duration `mapstructure:"connectTimeout"`
			HeartbeatInterval time.Duration `mapstructure:"heartbeatInterval"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	JWT           JWTConfig         `mapstructure:"jwt"`
	LLM           LLMConfig         `mapstructure:"llm"`
	MediaSearch   MediaSearchConfig `mapstructure:"mediaSearch"`
	PlaceSearch   PlaceSearchConfig `mapstructure:"placeSearch"`
	Lookup        struct {
		CacheTTL time.Duration `mapstructure:"cacheTTL"`
	} `mapstructure:"lookup"`
	Observability struct {
		MetricsPort string `mapstructure:"metricsPort"`
		ServiceName string `mapstructure:"serviceName"`
	} `mapstructure:"observability"`
}

// InitConfig loads config.yml from the usual locations, falling back to the
// embedded copy. Every key can be overridden from the environment, e.g.
// JWT_SECRETKEY or REPOSITORIES_POSTGRES_HOST.
func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err = config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) validate() error {
	if c.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secretKey must be set (env JWT_SECRETKEY)")
	}
	switch c.LLM.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("llm.provider must be gemini or openai, got %q", c.LLM.Provider)
	}
	return nil
}
