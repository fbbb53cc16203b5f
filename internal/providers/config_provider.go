package providers

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"posterd/internal/structures"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultProviderEndpoint = "https://api.templated.io/v1/render"

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// .env never overrides variables already present in the environment
	if flags.EnvPath != "" {
		if err := godotenv.Load(flags.EnvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unable to load %s: %w", flags.EnvPath, err)
		}
	}

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8000)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "/tmp")
	v.SetDefault("provider.endpoint", DefaultProviderEndpoint)
	v.SetDefault("provider.timeout", 30*time.Second)
	v.SetDefault("provider.retryCount", 0)
	v.SetDefault("cache.ttl", 60*time.Second)

	v.BindEnv("provider.primaryKey", "TEMPLATED_API_KEY")
	v.BindEnv("provider.secondaryKey", "TEMPLATED_API_KEY2")
	v.BindEnv("provider.templateIds.v0", "TEMPLATED_TEMPLATE_ID0")
	v.BindEnv("provider.templateIds.v1", "TEMPLATED_TEMPLATE_ID1")
	v.BindEnv("provider.templateIds.v2", "TEMPLATED_TEMPLATE_ID2")
	v.BindEnv("provider.templateIds.v3", "TEMPLATED_TEMPLATE_ID3")
	v.BindEnv("provider.endpoint", "TEMPLATED_API_URL")
	v.BindEnv("provider.mock", "POSTERD_MOCK_PROVIDER")
	v.BindEnv("logger.level", "POSTERD_LOG_LEVEL")
	v.BindEnv("logger.dir", "POSTERD_LOG_DIR")
	v.BindEnv("webServer.port", "POSTERD_PORT")
	v.BindEnv("cache.enabled", "POSTERD_CACHE_ENABLED")
	v.BindEnv("cache.size", "POSTERD_CACHE_SIZE")
	v.BindEnv("metrics.enabled", "POSTERD_METRICS_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "PosterDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
