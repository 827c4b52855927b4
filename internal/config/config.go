package config

import (
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv   = "BILLCOMPARE_CONFIG"
	apiURLEnv       = "BILLCOMPARE_API_URL"
	dataDirEnv      = "BILLCOMPARE_DATA_DIR"
	databaseDSNEnv  = "DATABASE_DSN"
	listenEnv       = "BILLCOMPARE_LISTEN"
	logLevelEnv     = "BILLCOMPARE_LOG_LEVEL"
	minioEndpoint   = "MINIO_ENDPOINT"
	minioAccessKey  = "MINIO_ACCESS_KEY"
	minioSecretKey  = "MINIO_SECRET_KEY"
	minioBucket     = "MINIO_BUCKET"
	defaultStore    = StoreDir
	defaultLayout   = "desktop"
	defaultTimeout  = 15 * time.Second
	defaultMonths   = 3
	defaultLogLevel = "info"
)

// Store kinds.
const (
	StoreDir = "dir"
	StoreSQL = "sql"
	StoreS3  = "s3"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	API     APIConfig     `yaml:"api"`
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Compare CompareConfig `yaml:"compare"`
}

// LoggingConfig selects the slog level and handler format (text or json).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// APIConfig points the comparison client at a data source.
type APIConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig controls the data-source HTTP server.
type ServerConfig struct {
	Listen        string `yaml:"listen"`
	DefaultMonths int    `yaml:"defaultMonths"`
}

// StoreConfig selects where monthly bill files live.
type StoreConfig struct {
	Kind   string       `yaml:"kind"`
	Dir    string       `yaml:"dir"`
	DSN    string       `yaml:"dsn"`
	Bucket BucketConfig `yaml:"bucket"`
	Sync   SyncConfig   `yaml:"sync"`
}

// SyncConfig makes the server re-import a directory of monthly files into
// a sql or s3 store on a fixed interval. A zero interval disables it.
type SyncConfig struct {
	Dir      string        `yaml:"dir"`
	Interval time.Duration `yaml:"interval"`
}

// BucketConfig describes an S3-compatible bucket.
type BucketConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	UseSSL    bool   `yaml:"useSSL"`
}

// CompareConfig tunes comparison rendering.
type CompareConfig struct {
	Layout string `yaml:"layout"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.validate()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(apiURLEnv); v != "" {
		c.API.BaseURL = v
	}

	if v := os.Getenv(dataDirEnv); v != "" {
		c.Store.Dir = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Store.DSN = v
	}

	if v := os.Getenv(listenEnv); v != "" {
		c.Server.Listen = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(minioEndpoint); v != "" {
		c.Store.Bucket.Endpoint = v
	}
	if v := os.Getenv(minioAccessKey); v != "" {
		c.Store.Bucket.AccessKey = v
	}
	if v := os.Getenv(minioSecretKey); v != "" {
		c.Store.Bucket.SecretKey = v
	}
	if v := os.Getenv(minioBucket); v != "" {
		c.Store.Bucket.Bucket = v
	}
}

func (c *Config) validate() {
	c.Store.Kind = strings.ToLower(strings.TrimSpace(c.Store.Kind))
	switch c.Store.Kind {
	case StoreDir, StoreSQL, StoreS3:
	default:
		log.Printf("config: unknown store kind %q, reverting to %s", c.Store.Kind, defaultStore)
		c.Store.Kind = defaultStore
	}

	if c.Server.DefaultMonths <= 0 {
		c.Server.DefaultMonths = defaultMonths
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = defaultTimeout
	}
	if c.Store.Sync.Interval < 0 {
		c.Store.Sync.Interval = 0
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.API.BaseURL != "" {
		base.API.BaseURL = override.API.BaseURL
	}
	if override.API.Timeout != 0 {
		base.API.Timeout = override.API.Timeout
	}

	if override.Server.Listen != "" {
		base.Server.Listen = override.Server.Listen
	}
	if override.Server.DefaultMonths != 0 {
		base.Server.DefaultMonths = override.Server.DefaultMonths
	}

	if override.Store.Kind != "" {
		base.Store.Kind = override.Store.Kind
	}
	if override.Store.Dir != "" {
		base.Store.Dir = override.Store.Dir
	}
	if override.Store.DSN != "" {
		base.Store.DSN = override.Store.DSN
	}
	if override.Store.Bucket.Endpoint != "" {
		base.Store.Bucket = override.Store.Bucket
	}
	if override.Store.Sync.Interval != 0 {
		base.Store.Sync = override.Store.Sync
	}

	if override.Compare.Layout != "" {
		base.Compare.Layout = override.Compare.Layout
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: defaultLogLevel},
		API:     APIConfig{BaseURL: "http://localhost:5000", Timeout: defaultTimeout},
		Server:  ServerConfig{Listen: ":5000", DefaultMonths: defaultMonths},
		Store: StoreConfig{
			Kind: defaultStore,
			Dir:  "storage/ai_output",
			DSN:  "billcompare.db",
		},
		Compare: CompareConfig{Layout: defaultLayout},
	}
}
