package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                 `yaml:"port"`
	DSN            string              `yaml:"dsn"` // MySQL DSN
	RedisURL       string              `yaml:"redis_url"`
	Env            string              `yaml:"env"` // "development" | "production"
	JWTSecret      string              `yaml:"jwt_secret"`
	AllowedOrigins []string            `yaml:"allowed_origins"`
	Paths          PathsConfig         `yaml:"paths"`
	Upload         UploadConfig        `yaml:"upload"`
	ObjectStorage  ObjectStorageConfig `yaml:"object_storage"`
	Avatar         AvatarConfig        `yaml:"avatar"`
}

type PathsConfig struct {
	Logs    string `yaml:"logs"`
	Uploads string `yaml:"uploads"`
}

type UploadConfig struct {
	MaxSizeMB      int `yaml:"max_size_mb"`
	CloudMaxSizeMB int `yaml:"cloud_max_size_mb"`
}

// ObjectStorageConfig configures the S3-compatible store behind /upload-cloud.
type ObjectStorageConfig struct {
	Enable    bool   `yaml:"enable"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
	PublicURL string `yaml:"public_url"` // optional CDN/custom domain
}

// AvatarConfig templates the external avatar generator.
type AvatarConfig struct {
	URLTemplate string `yaml:"url_template"` // %s is replaced with the seed
}
