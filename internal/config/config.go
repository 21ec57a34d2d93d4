package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort           = 3000
	defaultEnv            = "development"
	defaultDSN            = "root:password@tcp(127.0.0.1:3306)/blognoitro?charset=utf8mb4&parseTime=True&loc=Local"
	defaultRedisURL       = "redis://localhost:6379/0"
	defaultUploadMB       = 5
	defaultCloudUploadMB  = 10
	defaultAvatarTemplate = "https://api.dicebear.com/7.x/avataaars/svg?seed=%s&backgroundColor=ffeaa7,fab1a0,fd79a8,e17055,00b894,00cec9,6c5ce7,a29bfe"

	envPrefix = "BNT_"
)

// Load reads configuration from the YAML file at path, then applies
// BNT_* environment overrides and fills defaults. A missing file is not an
// error: env-only deployments are supported.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env + defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development") || c.Env == ""
}

// LogDir returns the directory for log files.
func (c *AppConfig) LogDir() string {
	if c.Paths.Logs != "" {
		return c.Paths.Logs
	}
	return filepath.Join(".", "logs")
}

// UploadDir returns the directory for locally stored uploads.
func (c *AppConfig) UploadDir() string {
	if c.Paths.Uploads != "" {
		return c.Paths.Uploads
	}
	return filepath.Join(".", "uploads")
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := envStr("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := envStr("DSN"); v != "" {
		cfg.DSN = v
	}
	if v := envStr("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := envStr("ENV"); v != "" {
		cfg.Env = v
	}
	if v := envStr("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := envStr("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		cfg.AllowedOrigins = origins
	}
	if v := envStr("UPLOAD_DIR"); v != "" {
		cfg.Paths.Uploads = v
	}
	if v := envStr("LOG_DIR"); v != "" {
		cfg.Paths.Logs = v
	}
	if v := envStr("S3_ENDPOINT"); v != "" {
		cfg.ObjectStorage.Enable = true
		cfg.ObjectStorage.Endpoint = v
	}
	if v := envStr("S3_ACCESS_KEY"); v != "" {
		cfg.ObjectStorage.AccessKey = v
	}
	if v := envStr("S3_SECRET_KEY"); v != "" {
		cfg.ObjectStorage.SecretKey = v
	}
	if v := envStr("S3_BUCKET"); v != "" {
		cfg.ObjectStorage.Bucket = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DSN == "" {
		cfg.DSN = defaultDSN
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = defaultRedisURL
	}
	if cfg.Upload.MaxSizeMB <= 0 {
		cfg.Upload.MaxSizeMB = defaultUploadMB
	}
	if cfg.Upload.CloudMaxSizeMB <= 0 {
		cfg.Upload.CloudMaxSizeMB = defaultCloudUploadMB
	}
	if cfg.Avatar.URLTemplate == "" {
		cfg.Avatar.URLTemplate = defaultAvatarTemplate
	}
}

func envStr(key string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + key))
}
