package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Storage struct {
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
		PathStyle bool   `yaml:"path_style"`
	} `yaml:"storage"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	CacheTTL struct {
		LatestPrice time.Duration `yaml:"latest_price"`
		Data        time.Duration `yaml:"data"`
		SymbolList  time.Duration `yaml:"symbol_list"`
	} `yaml:"cache_ttl"`
	Provider struct {
		BaseURL           string        `yaml:"base_url"`
		APIKey            string        `yaml:"api_key"`
		Timeout           time.Duration `yaml:"timeout"`
		RequestsPerSecond float64       `yaml:"requests_per_second"`
		Burst             float64       `yaml:"burst"`
		SourceName        string        `yaml:"source_name"`
	} `yaml:"provider"`
	Pipeline struct {
		EnableIndicators bool   `yaml:"enable_indicators"`
		DefaultSet       string `yaml:"default_set"`
		// Materiality thresholds for incremental merge overwrites.
		PriceDiffThreshold  float64 `yaml:"price_diff_threshold"`
		VolumeDiffThreshold float64 `yaml:"volume_diff_threshold"`
		MaxGapDays          int     `yaml:"max_gap_days"`
		MaxGapWarnings      int     `yaml:"max_gap_warnings"`
		MergeLookbackDays   int     `yaml:"merge_lookback_days"`
	} `yaml:"pipeline"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("PROVIDER_API_KEY"); v != "" {
		c.Provider.APIKey = v
	}
	if v := os.Getenv("PROVIDER_BASE_URL"); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv("STORAGE_BUCKET"); v != "" {
		c.Storage.Bucket = v
	}
	if v := os.Getenv("STORAGE_ENDPOINT"); v != "" {
		c.Storage.Endpoint = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.CacheTTL.LatestPrice == 0 {
		c.CacheTTL.LatestPrice = 5 * time.Minute
	}
	if c.CacheTTL.Data == 0 {
		c.CacheTTL.Data = time.Hour
	}
	if c.CacheTTL.SymbolList == 0 {
		c.CacheTTL.SymbolList = 24 * time.Hour
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = 30 * time.Second
	}
	if c.Provider.RequestsPerSecond == 0 {
		c.Provider.RequestsPerSecond = 4
	}
	if c.Provider.Burst == 0 {
		c.Provider.Burst = 8
	}
	if c.Provider.SourceName == "" {
		c.Provider.SourceName = "eodhd"
	}
	if c.Pipeline.DefaultSet == "" {
		c.Pipeline.DefaultSet = "default"
	}
	if c.Pipeline.PriceDiffThreshold == 0 {
		c.Pipeline.PriceDiffThreshold = 0.01
	}
	if c.Pipeline.VolumeDiffThreshold == 0 {
		c.Pipeline.VolumeDiffThreshold = 0.10
	}
	if c.Pipeline.MaxGapDays == 0 {
		c.Pipeline.MaxGapDays = 5
	}
	if c.Pipeline.MaxGapWarnings == 0 {
		c.Pipeline.MaxGapWarnings = 10
	}
	if c.Pipeline.MergeLookbackDays == 0 {
		c.Pipeline.MergeLookbackDays = 1
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required")
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Provider.APIKey == "" {
		return fmt.Errorf("provider.api_key is required")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when redis is enabled")
	}
	return nil
}
