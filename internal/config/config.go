// Package config loads client and server configuration from files and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/iudanet/cloudsync/internal/logger"
	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/internal/scheduler"
	"github.com/iudanet/cloudsync/internal/syncer"
	"github.com/iudanet/cloudsync/internal/validation"
)

// EnvPrefix prefixes environment overrides, e.g. CLOUDSYNC_CLOUD_URL.
const EnvPrefix = "CLOUDSYNC"

// FieldConfig describes a column of a synced table.
type FieldConfig struct {
	Name       string `mapstructure:"name"`
	Type       string `mapstructure:"type"`
	PrimaryKey bool   `mapstructure:"primary_key"`
	Nullable   bool   `mapstructure:"nullable"`
}

// TableConfig describes a synced table.
type TableConfig struct {
	Name   string        `mapstructure:"name"`
	Fields []FieldConfig `mapstructure:"fields"`
}

// Schema converts the table description into a models.TableSchema.
func (t TableConfig) Schema() (models.TableSchema, error) {
	if err := validation.ValidateTableName(t.Name); err != nil {
		return models.TableSchema{}, err
	}
	schema := models.TableSchema{Name: t.Name}
	for _, f := range t.Fields {
		if err := validation.ValidateFieldName(f.Name); err != nil {
			return models.TableSchema{}, fmt.Errorf("table %s: %w", t.Name, err)
		}
		ft, err := models.ParseFieldType(f.Type)
		if err != nil {
			return models.TableSchema{}, fmt.Errorf("table %s column %s: %w", t.Name, f.Name, err)
		}
		schema.Fields = append(schema.Fields, models.Field{
			Name:       f.Name,
			Type:       ft,
			PrimaryKey: f.PrimaryKey,
			Nullable:   f.Nullable,
		})
	}
	if len(schema.PrimaryKeys()) == 0 {
		return models.TableSchema{}, fmt.Errorf("table %s has no primary key", t.Name)
	}
	return schema, nil
}

// CloudConfig points the client at the cloud API.
type CloudConfig struct {
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorageConfig places the local database and asset files.
type StorageConfig struct {
	Path     string `mapstructure:"path"`
	AssetDir string `mapstructure:"asset_dir"`
}

// ClientConfig is the configuration of the cloudsync client.
type ClientConfig struct {
	Cloud       CloudConfig      `mapstructure:"cloud"`
	Storage     StorageConfig    `mapstructure:"storage"`
	Logging     logger.Config    `mapstructure:"logging"`
	Scheduler   scheduler.Config `mapstructure:"scheduler"`
	// MetricsAddr enables the /metrics endpoint of the daemon when set.
	MetricsAddr string           `mapstructure:"metrics_addr"`
	Tables      []TableConfig    `mapstructure:"tables"`
	Engine      syncer.Config    `mapstructure:"engine"`
}

// Validate checks fields that have no usable default.
func (c *ClientConfig) Validate() error {
	var errs []error
	if c.Cloud.URL == "" {
		errs = append(errs, errors.New("cloud.url is required"))
	}
	if c.Storage.Path == "" {
		errs = append(errs, errors.New("storage.path is required"))
	}
	if len(c.Tables) == 0 {
		errs = append(errs, errors.New("at least one table is required"))
	}
	seen := make(map[string]bool, len(c.Tables))
	for _, t := range c.Tables {
		if seen[t.Name] {
			errs = append(errs, fmt.Errorf("table %s is declared twice", t.Name))
		}
		seen[t.Name] = true
		if _, err := t.Schema(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Schemas returns schemas of every configured table.
func (c *ClientConfig) Schemas() ([]models.TableSchema, error) {
	out := make([]models.TableSchema, 0, len(c.Tables))
	for _, t := range c.Tables {
		s, err := t.Schema()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// TableNames returns names of the configured tables in declaration order.
func (c *ClientConfig) TableNames() []string {
	out := make([]string, 0, len(c.Tables))
	for _, t := range c.Tables {
		out = append(out, t.Name)
	}
	return out
}

// DeviceID returns the configured device id. Without one, the id is read from
// a device_id file next to the local database, created on first use.
func (c *ClientConfig) DeviceID() (string, error) {
	if c.Engine.DeviceID != "" {
		return c.Engine.DeviceID, nil
	}

	path := filepath.Join(filepath.Dir(c.Storage.Path), "device_id")
	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to read device id: %w", err)
	}

	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("failed to save device id: %w", err)
	}
	return id, nil
}

// JWTConfig configures access tokens of the cloud API.
type JWTConfig struct {
	Secret   string        `mapstructure:"secret"`
	Issuer   string        `mapstructure:"issuer"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// ServerConfig is the configuration of the cloud server.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	DBPath          string        `mapstructure:"db_path"`
	JWT             JWTConfig     `mapstructure:"jwt"`
	Logging         logger.Config `mapstructure:"logging"`
	RateLimit       int           `mapstructure:"rate_limit"`
	RateWindow      time.Duration `mapstructure:"rate_window"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	LockLease       time.Duration `mapstructure:"lock_lease"`
}

// Validate checks fields that have no usable default.
func (c *ServerConfig) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	if len(c.JWT.Secret) < 32 {
		errs = append(errs, errors.New("jwt.secret must be at least 32 bytes"))
	}
	if c.LockLease <= 0 {
		errs = append(errs, errors.New("lock_lease must be positive"))
	}
	return errors.Join(errs...)
}

func setClientDefaults(v *viper.Viper) {
	eng := syncer.DefaultConfig()
	v.SetDefault("engine.device_id", "")
	v.SetDefault("engine.queued_common_limit", eng.QueuedCommonLimit)
	v.SetDefault("engine.queued_priority_limit", eng.QueuedPriorityLimit)
	v.SetDefault("engine.upload_batch_size", eng.UploadBatchSize)
	v.SetDefault("engine.query_limit", eng.QueryLimit)
	v.SetDefault("engine.asset_workers", eng.AssetWorkers)
	v.SetDefault("engine.max_heartbeat_failed", eng.MaxHeartbeatFailed)
	v.SetDefault("engine.version_conflict_retries", eng.VersionConflictRetries)
	v.SetDefault("engine.transport_retries", eng.TransportRetries)
	v.SetDefault("engine.default_timeout", eng.DefaultTimeout)
	v.SetDefault("engine.close_wait", eng.CloseWait)

	v.SetDefault("cloud.url", "http://localhost:8080")
	v.SetDefault("cloud.token", "")
	v.SetDefault("cloud.timeout", 30*time.Second)

	v.SetDefault("storage.path", "cloudsync.db")
	v.SetDefault("storage.asset_dir", "assets")
	v.SetDefault("metrics_addr", "")

	sch := scheduler.DefaultConfig()
	v.SetDefault("scheduler.enabled", sch.Enabled)
	v.SetDefault("scheduler.spec", sch.Spec)
	v.SetDefault("scheduler.mode", sch.Mode)
	v.SetDefault("scheduler.tables", sch.Tables)

	setLoggingDefaults(v)
}

func setServerDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("db_path", "cloud.db")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "cloudsync")
	v.SetDefault("jwt.token_ttl", 24*time.Hour)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("rate_window", time.Minute)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("lock_lease", 30*time.Second)
	setLoggingDefaults(v)
}

func setLoggingDefaults(v *viper.Viper) {
	l := logger.DefaultConfig()
	v.SetDefault("logging.level", l.Level)
	v.SetDefault("logging.format", l.Format)
	v.SetDefault("logging.file", l.File)
	v.SetDefault("logging.max_size_mb", l.MaxSizeMB)
	v.SetDefault("logging.max_backups", l.MaxBackups)
	v.SetDefault("logging.max_age_days", l.MaxAgeDays)
	v.SetDefault("logging.compress", l.Compress)
}

// NewViper returns a viper instance reading CLOUDSYNC_* environment overrides.
// Nested keys use underscores: engine.query_limit is CLOUDSYNC_ENGINE_QUERY_LIMIT.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadClient reads the client configuration. An empty file searches
// cloudsync.{yaml,toml,json} in the working directory and $HOME/.cloudsync,
// a missing file is not an error in that case.
func LoadClient(v *viper.Viper, file string) (*ClientConfig, error) {
	setClientDefaults(v)
	if err := readFile(v, file, "cloudsync"); err != nil {
		return nil, err
	}

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode client config: %w", err)
	}
	if len(cfg.Scheduler.Tables) == 0 {
		cfg.Scheduler.Tables = cfg.TableNames()
	}
	return &cfg, nil
}

// LoadServer reads the server configuration, see LoadClient for file lookup.
func LoadServer(v *viper.Viper, file string) (*ServerConfig, error) {
	setServerDefaults(v)
	if err := readFile(v, file, "cloudsync-server"); err != nil {
		return nil, err
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode server config: %w", err)
	}
	return &cfg, nil
}

func readFile(v *viper.Viper, file, name string) error {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", file, err)
		}
		return nil
	}

	v.SetConfigName(name)
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".cloudsync"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}
