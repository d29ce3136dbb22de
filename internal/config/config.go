// Package config resolves runtime settings from defaults, an optional YAML
// file and the environment, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/i-am-zach/uiuc-grade-stats/internal/dataset"
)

const DefaultPath = "gradeview.yaml"

// Dataset sources.
const (
	SourceHTTP    = "http"
	SourceFile    = "file"
	SourceStorage = "storage"
)

// Selection store backends.
const (
	BackendFile      = "file"
	BackendSQLite    = "sqlite"
	BackendFirestore = "firestore"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Dataset  Dataset  `yaml:"dataset"`
	Store    Store    `yaml:"store"`
	Firebase Firebase `yaml:"firebase"`
}

type Server struct {
	Port           int           `yaml:"port"`
	RateLimit      int           `yaml:"rate_limit"`
	RateWindow     int           `yaml:"rate_window_seconds"`
	SearchCacheTTL time.Duration `yaml:"search_cache_ttl"`
}

type Dataset struct {
	Source string `yaml:"source"`
	URL    string `yaml:"url"`
	Path   string `yaml:"path"`
	Object string `yaml:"object"`
}

type Store struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	Key     string `yaml:"key"`
}

type Firebase struct {
	CredentialsFile string `yaml:"credentials_file"`
	Bucket          string `yaml:"bucket"`
	SaveEnvironment string `yaml:"save_environment"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Server: Server{
			Port:           8080,
			RateLimit:      120,
			RateWindow:     60,
			SearchCacheTTL: 5 * time.Minute,
		},
		Dataset: Dataset{
			Source: SourceHTTP,
			URL:    dataset.DefaultURL,
			Object: "grades/uiuc-gpa-dataset.csv",
		},
		Store: Store{
			Backend: BackendFile,
			Path:    ".gradeview",
			Key:     "courses",
		},
	}
}

// Load builds a Config. A missing file at path is not an error; the
// defaults and environment still apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", key, v)
		}
		*dst = n
		return nil
	}

	if err := setInt("PORT", &c.Server.Port); err != nil {
		return err
	}
	if err := setInt("RATE_LIMIT", &c.Server.RateLimit); err != nil {
		return err
	}
	if err := setInt("RATE_WINDOW_SECONDS", &c.Server.RateWindow); err != nil {
		return err
	}
	if v := strings.TrimSpace(getenv("SEARCH_CACHE_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SEARCH_CACHE_TTL must be a duration, got %q", v)
		}
		c.Server.SearchCacheTTL = d
	}

	setString("DATASET_SOURCE", &c.Dataset.Source)
	setString("DATASET_URL", &c.Dataset.URL)
	setString("DATASET_PATH", &c.Dataset.Path)
	setString("DATASET_OBJECT", &c.Dataset.Object)

	setString("STORE_BACKEND", &c.Store.Backend)
	setString("STORE_PATH", &c.Store.Path)
	setString("STORE_KEY", &c.Store.Key)

	setString("FIREBASE_CONFIG", &c.Firebase.CredentialsFile)
	setString("FIREBASE_BUCKET", &c.Firebase.Bucket)
	setString("SAVE_ENVIRONMENT", &c.Firebase.SaveEnvironment)

	c.Dataset.Source = strings.ToLower(c.Dataset.Source)
	c.Store.Backend = strings.ToLower(c.Store.Backend)
	return nil
}

// Validate rejects settings the app cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Server.RateLimit <= 0 || c.Server.RateWindow <= 0 {
		return fmt.Errorf("rate limit and window must be greater than 0")
	}

	switch c.Dataset.Source {
	case SourceHTTP:
		if c.Dataset.URL == "" {
			return fmt.Errorf("dataset url is required for the http source")
		}
	case SourceFile:
		if c.Dataset.Path == "" {
			return fmt.Errorf("dataset path is required for the file source")
		}
	case SourceStorage:
		if c.Dataset.Object == "" {
			return fmt.Errorf("dataset object is required for the storage source")
		}
	default:
		return fmt.Errorf("unknown dataset source %q (options: http, file, storage)", c.Dataset.Source)
	}

	switch c.Store.Backend {
	case BackendFile, BackendSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store path is required for the %s backend", c.Store.Backend)
		}
	case BackendFirestore:
	default:
		return fmt.Errorf("unknown store backend %q (options: file, sqlite, firestore)", c.Store.Backend)
	}
	if c.Store.Key == "" {
		return fmt.Errorf("store key is required")
	}
	return nil
}

// NeedsFirebase reports whether any configured component talks to Firebase.
func (c *Config) NeedsFirebase() bool {
	return c.Dataset.Source == SourceStorage || c.Store.Backend == BackendFirestore
}

// BucketName is the explicit bucket, else the one for SAVE_ENVIRONMENT.
func (f Firebase) BucketName(bucketForEnv func(string) string) string {
	if f.Bucket != "" {
		return f.Bucket
	}
	return bucketForEnv(f.SaveEnvironment)
}
