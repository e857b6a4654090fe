// Package config provides unified configuration for the avaliafor service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/avaliafor/avaliafor/internal/errors"
)

// Document store drivers.
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// File repository types.
const (
	FilesLocal = "local"
	FilesS3    = "s3"
	FilesGCS   = "gcs"
	FilesNone  = "none"
)

// Config holds the unified configuration.
type Config struct {
	// DataDir is the base directory for local data (sqlite file, local files, backups)
	DataDir string `json:"data_dir" yaml:"data_dir"`

	Log LogConfig `json:"log" yaml:"log"`

	// HTTP configuration
	HTTP HTTPConfig `json:"http" yaml:"http"`

	// gRPC configuration
	GRPC GRPCConfig `json:"grpc" yaml:"grpc"`

	// Database configuration
	Database DatabaseConfig `json:"database" yaml:"database"`

	// Files configures the external file repository for exported artifacts
	Files FilesConfig `json:"files" yaml:"files"`

	// Bulk configures the maintenance worker pool
	Bulk BulkConfig `json:"bulk" yaml:"bulk"`

	Maintenance MaintenanceConfig `json:"maintenance" yaml:"maintenance"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Mode is development or production
	Mode string `json:"mode" yaml:"mode"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	// Addr is the HTTP listen address
	Addr string `json:"addr" yaml:"addr"`

	// ReadTimeout is the HTTP read timeout
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the HTTP write timeout; bulk downloads stream through it
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout is the HTTP idle timeout
	IdleTimeout time.Duration `json:"idle_timeout" yaml:"idle_timeout"`

	// MetricsEnabled exposes /metrics on the HTTP listener
	MetricsEnabled bool `json:"metrics_enabled" yaml:"metrics_enabled"`
}

// GRPCConfig holds gRPC server configuration.
type GRPCConfig struct {
	// Addr is the gRPC server address
	Addr string `json:"addr" yaml:"addr"`

	// Enabled controls whether gRPC is enabled
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// DatabaseConfig holds document store configuration.
type DatabaseConfig struct {
	// Driver is mongo, sqlite or memory
	Driver string `json:"driver" yaml:"driver"`

	// Name is the logical database name
	Name string `json:"name" yaml:"name"`

	// Username, Password and Cluster build the mongodb+srv URI
	Username string `json:"username" yaml:"username"`
	Password string `json:"-" yaml:"-"`
	Cluster  string `json:"cluster" yaml:"cluster"`

	// URI overrides the generated connection string when set
	URI string `json:"uri" yaml:"uri"`

	// SQLitePath is the database file for the sqlite driver
	SQLitePath string `json:"sqlite_path" yaml:"sqlite_path"`

	// ConnectTimeout bounds the first connection attempt
	ConnectTimeout time.Duration `json:"connect_timeout" yaml:"connect_timeout"`
}

// FilesConfig holds file repository configuration.
type FilesConfig struct {
	// Type is local, s3, gcs or none
	Type string `json:"type" yaml:"type"`

	// Path is the local repository root (for local type)
	Path string `json:"path" yaml:"path"`

	// S3 configuration (for s3 type)
	S3 S3Config `json:"s3" yaml:"s3"`

	// GCS configuration (for gcs type)
	GCS GCSConfig `json:"gcs" yaml:"gcs"`

	// AdministrationFolder holds artifacts of the administrative workflow
	AdministrationFolder string `json:"administration_folder" yaml:"administration_folder"`

	// SuppliesFolder holds artifacts of the procurement workflow
	SuppliesFolder string `json:"supplies_folder" yaml:"supplies_folder"`

	// ExistenceTTL is how long artifact existence checks are cached
	ExistenceTTL time.Duration `json:"existence_ttl" yaml:"existence_ttl"`
}

// S3Config holds S3 storage configuration.
type S3Config struct {
	// Bucket is the S3 bucket name
	Bucket string `json:"bucket" yaml:"bucket"`

	// Region is the AWS region
	Region string `json:"region" yaml:"region"`

	// Endpoint is the S3 endpoint (for S3-compatible storage)
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// GCSConfig holds Google Cloud Storage configuration.
type GCSConfig struct {
	Bucket          string `json:"bucket" yaml:"bucket"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
}

// BulkConfig holds worker pool settings for maintenance operations.
type BulkConfig struct {
	// Concurrency is the number of parallel file operations
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// ItemTimeout bounds every single file operation
	ItemTimeout time.Duration `json:"item_timeout" yaml:"item_timeout"`
}

// MaintenanceConfig holds destructive-operation settings.
type MaintenanceConfig struct {
	// ConfirmationTTL is how long a purge confirmation token stays valid
	ConfirmationTTL time.Duration `json:"confirmation_ttl" yaml:"confirmation_ttl"`

	// CompressBackups writes snappy-compressed backup files
	CompressBackups bool `json:"compress_backups" yaml:"compress_backups"`
}

// DefaultConfig returns the default configuration for local development.
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data/avaliafor",
		Log: LogConfig{
			Mode: "development",
		},
		HTTP: HTTPConfig{
			Addr:           ":8080",
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   10 * time.Minute,
			IdleTimeout:    120 * time.Second,
			MetricsEnabled: true,
		},
		GRPC: GRPCConfig{
			Addr:    ":9090",
			Enabled: true,
		},
		Database: DatabaseConfig{
			Driver:         DriverSQLite,
			Name:           "avaliacao_fornecedores",
			ConnectTimeout: 10 * time.Second,
		},
		Files: FilesConfig{
			Type:                 FilesLocal,
			AdministrationFolder: "Avaliacao_Fornecedores/ADM",
			SuppliesFolder:       "Avaliacao_Fornecedores/SUP",
			ExistenceTTL:         5 * time.Minute,
		},
		Bulk: BulkConfig{
			Concurrency: 3,
			ItemTimeout: 30 * time.Second,
		},
		Maintenance: MaintenanceConfig{
			ConfirmationTTL: 2 * time.Minute,
		},
	}
}

// Resolve resolves relative paths and sets defaults based on DataDir.
func (c *Config) Resolve() {
	if c.DataDir == "" {
		c.DataDir = "./data/avaliafor"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = filepath.Join(c.DataDir, "avaliafor.db")
	}
	if c.Files.Path == "" {
		c.Files.Path = filepath.Join(c.DataDir, "files")
	}
	if c.Bulk.Concurrency <= 0 {
		c.Bulk.Concurrency = 3
	}
	if c.Bulk.ItemTimeout <= 0 {
		c.Bulk.ItemTimeout = 30 * time.Second
	}
}

// BackupDir is where the CLI writes backup files by default.
func (c *Config) BackupDir() string {
	return filepath.Join(c.DataDir, "backups")
}

// MongoURI returns the connection string for the mongo driver.
func (c *Config) MongoURI() string {
	if c.Database.URI != "" {
		return c.Database.URI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		c.Database.Username, c.Database.Password, c.Database.Cluster)
}

// Validate validates the configuration. Missing database credentials are
// reported as a CONFIGURATION error.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return apperrors.NewConfigurationError(apperrors.CodeInvalidConfig, "data_dir is required")
	}

	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.URI == "" && (c.Database.Username == "" || c.Database.Password == "" || c.Database.Cluster == "") {
			return apperrors.NewConfigurationError(apperrors.CodeMissingCredentials,
				"mongo driver requires MONGODB_USERNAME, MONGODB_PASSWORD and MONGODB_CLUSTER (or database.uri)")
		}
	case DriverSQLite, DriverMemory:
	default:
		return apperrors.NewConfigurationError(apperrors.CodeInvalidConfig,
			fmt.Sprintf("invalid database driver: %s (must be mongo, sqlite or memory)", c.Database.Driver))
	}
	if c.Database.Name == "" {
		return apperrors.NewConfigurationError(apperrors.CodeInvalidConfig, "database.name is required")
	}

	switch c.Files.Type {
	case FilesLocal, FilesNone:
	case FilesS3:
		if c.Files.S3.Bucket == "" {
			return apperrors.NewConfigurationError(apperrors.CodeInvalidConfig, "files.s3.bucket is required when files type is s3")
		}
	case FilesGCS:
		if c.Files.GCS.Bucket == "" {
			return apperrors.NewConfigurationError(apperrors.CodeInvalidConfig, "files.gcs.bucket is required when files type is gcs")
		}
	default:
		return apperrors.NewConfigurationError(apperrors.CodeInvalidConfig,
			fmt.Sprintf("invalid files type: %s (must be local, s3, gcs or none)", c.Files.Type))
	}
	if c.Files.AdministrationFolder == "" || c.Files.SuppliesFolder == "" {
		return apperrors.NewConfigurationError(apperrors.CodeInvalidConfig, "both artifact folders are required")
	}
	if c.Files.AdministrationFolder == c.Files.SuppliesFolder {
		return apperrors.NewConfigurationError(apperrors.CodeInvalidConfig, "artifact folders must differ")
	}

	if c.Bulk.Concurrency < 1 || c.Bulk.Concurrency > 32 {
		return apperrors.NewConfigurationError(apperrors.CodeInvalidConfig,
			fmt.Sprintf("bulk.concurrency must be between 1 and 32, got %d", c.Bulk.Concurrency))
	}

	return nil
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadDotEnv loads a .env file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables.
// Service settings use the AVALIAFOR_ prefix; the database credentials use
// the MONGODB_ names shared with the rest of the deployment.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("AVALIAFOR_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("AVALIAFOR_LOG_MODE"); v != "" {
		cfg.Log.Mode = v
	}

	// HTTP configuration
	if v := os.Getenv("AVALIAFOR_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("AVALIAFOR_METRICS_ENABLED"); v != "" {
		cfg.HTTP.MetricsEnabled = v == "true" || v == "1"
	}

	// gRPC configuration
	if v := os.Getenv("AVALIAFOR_GRPC_ADDR"); v != "" {
		cfg.GRPC.Addr = v
	}
	if v := os.Getenv("AVALIAFOR_GRPC_ENABLED"); v != "" {
		cfg.GRPC.Enabled = v == "true" || v == "1"
	}

	// Database configuration
	if v := os.Getenv("AVALIAFOR_DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("AVALIAFOR_DATABASE_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("AVALIAFOR_DATABASE_URI"); v != "" {
		cfg.Database.URI = v
	}
	if v := os.Getenv("AVALIAFOR_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("MONGODB_USERNAME"); v != "" {
		cfg.Database.Username = v
	}
	if v := os.Getenv("MONGODB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("MONGODB_CLUSTER"); v != "" {
		cfg.Database.Cluster = v
	}

	// Files configuration
	if v := os.Getenv("AVALIAFOR_FILES_TYPE"); v != "" {
		cfg.Files.Type = v
	}
	if v := os.Getenv("AVALIAFOR_FILES_PATH"); v != "" {
		cfg.Files.Path = v
	}
	if v := os.Getenv("AVALIAFOR_S3_BUCKET"); v != "" {
		cfg.Files.S3.Bucket = v
	}
	if v := os.Getenv("AVALIAFOR_S3_REGION"); v != "" {
		cfg.Files.S3.Region = v
	}
	if v := os.Getenv("AVALIAFOR_S3_ENDPOINT"); v != "" {
		cfg.Files.S3.Endpoint = v
	}
	if v := os.Getenv("AVALIAFOR_GCS_BUCKET"); v != "" {
		cfg.Files.GCS.Bucket = v
	}
	if v := os.Getenv("AVALIAFOR_GCS_CREDENTIALS_FILE"); v != "" {
		cfg.Files.GCS.CredentialsFile = v
	}

	// Bulk configuration
	if v := os.Getenv("AVALIAFOR_BULK_CONCURRENCY"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Bulk.Concurrency)
	}
	if v := os.Getenv("AVALIAFOR_BULK_ITEM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Bulk.ItemTimeout = d
		}
	}
	if v := os.Getenv("AVALIAFOR_CONFIRMATION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Maintenance.ConfirmationTTL = d
		}
	}
}

// EnsureDirectories creates all required local directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.DataDir, c.BackupDir()}
	if c.Database.Driver == DriverSQLite {
		dirs = append(dirs, filepath.Dir(c.Database.SQLitePath))
	}
	if c.Files.Type == FilesLocal {
		dirs = append(dirs, c.Files.Path)
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
