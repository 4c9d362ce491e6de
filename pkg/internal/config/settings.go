package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings is built once at boot and handed to every component that needs it.
type Settings struct {
	Bind      string `mapstructure:"bind"`
	GrpcBind  string `mapstructure:"grpc_bind"`
	ServerURL string `mapstructure:"server_url"`
	ClientURL string `mapstructure:"client_url"`

	Database  Database  `mapstructure:"database"`
	Storage   Storage   `mapstructure:"storage"`
	Upload    Upload    `mapstructure:"upload"`
	RateLimit RateLimit `mapstructure:"rate_limit"`
	Cleanup   Cleanup   `mapstructure:"cleanup"`
	Admin     Admin     `mapstructure:"admin"`
	Debug     Debug     `mapstructure:"debug"`
}

type Database struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Prefix string `mapstructure:"prefix"`
}

type Storage struct {
	Driver    string `mapstructure:"driver"`
	Dir       string `mapstructure:"dir"`
	PublicURL string `mapstructure:"public_url"`
	S3        S3     `mapstructure:"s3"`
}

type S3 struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	Prefix    string `mapstructure:"prefix"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

type Upload struct {
	MaxSize  int64 `mapstructure:"max_size"`
	MaxWidth int   `mapstructure:"max_width"`
	Quality  int   `mapstructure:"quality"`
}

type RateLimit struct {
	Max    int           `mapstructure:"max"`
	Window time.Duration `mapstructure:"window"`
}

type Cleanup struct {
	Schedule string        `mapstructure:"schedule"`
	Grace    time.Duration `mapstructure:"grace"`
}

type Admin struct {
	Enabled bool `mapstructure:"enabled"`
}

type Debug struct {
	Database    bool `mapstructure:"database"`
	PrintRoutes bool `mapstructure:"print_routes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bind", "0.0.0.0:5000")
	v.SetDefault("grpc_bind", "0.0.0.0:7005")
	v.SetDefault("server_url", "http://localhost:5000")
	v.SetDefault("client_url", "http://localhost:3000")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=postgres dbname=alpixn_site port=5432 sslmode=disable")
	v.SetDefault("database.prefix", "site_")

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.dir", "uploads")
	v.SetDefault("storage.public_url", "")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.prefix", "")
	v.SetDefault("storage.s3.access_key", "")
	v.SetDefault("storage.s3.secret_key", "")

	v.SetDefault("upload.max_size", 5<<20)
	v.SetDefault("upload.max_width", 800)
	v.SetDefault("upload.quality", 80)

	v.SetDefault("rate_limit.max", 100)
	v.SetDefault("rate_limit.window", 15*time.Minute)

	v.SetDefault("cleanup.schedule", "@every 60m")
	v.SetDefault("cleanup.grace", time.Hour)

	v.SetDefault("admin.enabled", false)

	v.SetDefault("debug.database", false)
	v.SetDefault("debug.print_routes", false)
}

// Load reads settings.toml from the given directories (first hit wins), applies
// SITE_ prefixed environment overrides and fills every unset key with its default.
// A missing settings file is not an error.
func Load(paths ...string) (*Settings, error) {
	v := viper.New()
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	v.SetConfigName("settings")
	v.SetConfigType("toml")

	v.SetEnvPrefix("site")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read settings: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if settings.Storage.PublicURL == "" && settings.Storage.Driver == "local" {
		settings.Storage.PublicURL = strings.TrimSuffix(settings.ServerURL, "/") + "/uploads"
	}

	return &settings, nil
}
