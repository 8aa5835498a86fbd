package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type ExecutorConfig struct {
	ExecutorID   string `mapstructure:"executor_id"`
	ExecutorName string `mapstructure:"executor_name"`
	Address      string `mapstructure:"address"`

	// PublicURL is the externally reachable base URL, used to build webhook
	// and resume callback URLs.
	PublicURL string `mapstructure:"public_url"`

	// InstanceID identifies this installation in attribution footers.
	InstanceID string `mapstructure:"instance_id"`

	// ResumeSigningSecret keys the HMAC signatures on resume URLs.
	ResumeSigningSecret string `mapstructure:"resume_signing_secret"`

	// CredentialsFile points at the JSON file holding decrypted integration
	// credentials keyed by credential id.
	CredentialsFile string `mapstructure:"credentials_file"`

	// RoutesFile points at the JSON file mapping webhook route ids to
	// trigger node configurations.
	RoutesFile string `mapstructure:"routes_file"`

	// NodesFile points at the JSON file holding workflow node
	// configurations, used to rebuild form labels on resume callbacks.
	NodesFile string `mapstructure:"nodes_file"`
}

type ConfigManager interface {
	GetConfig(ctx context.Context) (ExecutorConfig, error)
	SaveConfig(ctx context.Context, config ExecutorConfig) error
}

type configManager struct {
	viper *viper.Viper
}

func NewConfigManager() (ConfigManager, error) {
	v := viper.New()

	v.SetDefault("executor_name", "mailbridge-executor")
	v.SetDefault("address", ":8081")
	v.SetDefault("public_url", "http://localhost:8081")

	v.AutomaticEnv()
	v.SetEnvPrefix("MAILBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envMappings := map[string]string{
		"executor_id":           "MAILBRIDGE_EXECUTOR_ID",
		"executor_name":         "MAILBRIDGE_EXECUTOR_NAME",
		"address":               "MAILBRIDGE_ADDRESS",
		"public_url":            "MAILBRIDGE_PUBLIC_URL",
		"instance_id":           "MAILBRIDGE_INSTANCE_ID",
		"resume_signing_secret": "MAILBRIDGE_RESUME_SIGNING_SECRET",
		"credentials_file":      "MAILBRIDGE_CREDENTIALS_FILE",
		"routes_file":           "MAILBRIDGE_ROUTES_FILE",
		"nodes_file":            "MAILBRIDGE_NODES_FILE",
	}

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.mailbridge")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Debug().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	return &configManager{viper: v}, nil
}

func (m *configManager) GetConfig(ctx context.Context) (ExecutorConfig, error) {
	var config ExecutorConfig

	if err := m.viper.Unmarshal(&config); err != nil {
		return ExecutorConfig{}, fmt.Errorf("unable to decode config: %w", err)
	}

	return config, nil
}

func (m *configManager) SaveConfig(ctx context.Context, config ExecutorConfig) error {
	m.viper.Set("executor_id", config.ExecutorID)
	m.viper.Set("executor_name", config.ExecutorName)
	m.viper.Set("address", config.Address)
	m.viper.Set("public_url", config.PublicURL)
	m.viper.Set("instance_id", config.InstanceID)
	m.viper.Set("resume_signing_secret", config.ResumeSigningSecret)
	m.viper.Set("credentials_file", config.CredentialsFile)
	m.viper.Set("routes_file", config.RoutesFile)
	m.viper.Set("nodes_file", config.NodesFile)

	if err := m.viper.WriteConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return m.viper.SafeWriteConfig()
		}

		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
