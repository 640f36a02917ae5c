package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	DB      DBConfig      `toml:"db"`
	Storage StorageConfig `toml:"storage"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

// DBConfig selects the database driver. "sqlite" (the default) keeps
// everything in a single file; "postgres" uses the usual connection fields.
type DBConfig struct {
	Driver   string `toml:"driver"`
	Path     string `toml:"path"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
	SSLMode  string `toml:"sslmode"`
}

// StorageConfig selects the blob backend: "minio", "filesystem", or "memory".
type StorageConfig struct {
	Backend    string           `toml:"backend"`
	MinIO      MinIOConfig      `toml:"minio"`
	Filesystem FilesystemConfig `toml:"filesystem"`
}

type MinIOConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	UseSSL    bool   `toml:"use_ssl"`
}

type FilesystemConfig struct {
	Root string `toml:"root"`
}

// Load builds the configuration from defaults, then an optional TOML file
// (READRISER_CONFIG, falling back to ./readriser.toml when present), then
// environment variable overrides.
func Load() *Config {
	cfg := defaults()

	path := os.Getenv("READRISER_CONFIG")
	if path == "" {
		if _, err := os.Stat("readriser.toml"); err == nil {
			path = "readriser.toml"
		}
	}
	if path != "" {
		// a broken config file should not silently fall back to defaults
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			panic("failed decoding config file " + path + ": " + err.Error())
		}
	}

	applyEnv(cfg)
	return cfg
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		DB: DBConfig{
			Driver:   "sqlite",
			Path:     "readriser.db",
			Host:     "localhost",
			Port:     "5432",
			User:     "readriser",
			Password: "readriser_secret",
			Name:     "readriser",
			SSLMode:  "disable",
		},
		Storage: StorageConfig{
			Backend: "filesystem",
			MinIO: MinIOConfig{
				Endpoint:  "localhost:9000",
				AccessKey: "readriser",
				SecretKey: "readriser_secret",
				Bucket:    "readriser",
			},
			Filesystem: FilesystemConfig{Root: "data/blobs"},
		},
	}
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("SERVER_PORT", cfg.Server.Port)

	cfg.DB.Driver = getEnv("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.Path = getEnv("DB_PATH", cfg.DB.Path)
	cfg.DB.Host = getEnv("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = getEnv("DB_PORT", cfg.DB.Port)
	cfg.DB.User = getEnv("DB_USER", cfg.DB.User)
	cfg.DB.Password = getEnv("DB_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = getEnv("DB_NAME", cfg.DB.Name)
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", cfg.DB.SSLMode)

	cfg.Storage.Backend = getEnv("STORAGE_BACKEND", cfg.Storage.Backend)
	cfg.Storage.MinIO.Endpoint = getEnv("MINIO_ENDPOINT", cfg.Storage.MinIO.Endpoint)
	cfg.Storage.MinIO.AccessKey = getEnv("MINIO_ACCESS_KEY", cfg.Storage.MinIO.AccessKey)
	cfg.Storage.MinIO.SecretKey = getEnv("MINIO_SECRET_KEY", cfg.Storage.MinIO.SecretKey)
	cfg.Storage.MinIO.Bucket = getEnv("MINIO_BUCKET", cfg.Storage.MinIO.Bucket)
	cfg.Storage.MinIO.UseSSL = getEnvAsBool("MINIO_USE_SSL", cfg.Storage.MinIO.UseSSL)
	cfg.Storage.Filesystem.Root = getEnv("STORAGE_ROOT", cfg.Storage.Filesystem.Root)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
