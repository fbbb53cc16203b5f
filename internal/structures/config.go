package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// ProviderConfig holds the rendering provider account data. Version 0
// renders with SecondaryKey, versions 1-3 share PrimaryKey.
type ProviderConfig struct {
	Endpoint     string        `yaml:"endpoint" validate:"required|fullUrl"`
	Timeout      time.Duration `yaml:"timeout" validate:"required|min:1"`
	RetryCount   int           `yaml:"retryCount" validate:"min:0"`
	Mock         bool          `yaml:"mock"`
	PrimaryKey   string        `yaml:"primaryKey"`
	SecondaryKey string        `yaml:"secondaryKey"`
	TemplateIDs  TemplateIDs   `yaml:"templateIds"`
}

type TemplateIDs struct {
	V0 string `yaml:"v0"`
	V1 string `yaml:"v1"`
	V2 string `yaml:"v2"`
	V3 string `yaml:"v3"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type CorsConfig struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer"`
	Logger    LoggerConfig   `yaml:"logger"`
	Provider  ProviderConfig `yaml:"provider"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
	Cors      CorsConfig     `yaml:"cors"`
}
