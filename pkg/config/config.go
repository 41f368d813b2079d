package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Notifier NotifierConfig `mapstructure:"notifier"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Policy   PolicyConfig   `mapstructure:"policy"`
}

type ServerConfig struct {
	AdminPort   int    `mapstructure:"admin_port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	Host        string `mapstructure:"host"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

// NotifierConfig configures the operator-notification channel. The webhook
// URL receives alerts, the ack URL receives command acknowledgments; both
// calls are best-effort and time-bounded.
type NotifierConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	WebhookURL     string `mapstructure:"webhook_url"`
	AckURL         string `mapstructure:"ack_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// PolicyConfig holds the tunable parts of the risk rules. Defaults match
// the documented rule set; overriding them does not change rule order.
type PolicyConfig struct {
	TrustedUploadBypass     bool     `mapstructure:"trusted_upload_bypass"`
	AllowedUploadExtensions []string `mapstructure:"allowed_upload_extensions"`
	MaxUploadBytes          int64    `mapstructure:"max_upload_bytes"`
	LoginFloodThreshold     int      `mapstructure:"login_flood_threshold"`
	LoginFloodWindowSeconds int      `mapstructure:"login_flood_window_seconds"`
	AllowedHourStart        int      `mapstructure:"allowed_hour_start"`
	AllowedHourEnd          int      `mapstructure:"allowed_hour_end"`
}

var globalConfig Config

func Load(configPath string) error {
	viper.SetDefault("policy.trusted_upload_bypass", true)

	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}

	setDefaultValues()

	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := viper.Unmarshal(out, decodeHook); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	if globalConfig.Database.SSLMode == "" {
		globalConfig.Database.SSLMode = "disable"
	}
	if globalConfig.Notifier.TimeoutSeconds <= 0 {
		globalConfig.Notifier.TimeoutSeconds = 2
	}
	applyPolicyDefaults(&globalConfig.Policy)
}

func applyPolicyDefaults(p *PolicyConfig) {
	if len(p.AllowedUploadExtensions) == 0 {
		p.AllowedUploadExtensions = []string{"pdf", "docx", "jpg"}
	}
	if p.MaxUploadBytes <= 0 {
		p.MaxUploadBytes = 5 * 1024 * 1024
	}
	if p.LoginFloodThreshold <= 0 {
		p.LoginFloodThreshold = 5
	}
	if p.LoginFloodWindowSeconds <= 0 {
		p.LoginFloodWindowSeconds = 60
	}
	if p.AllowedHourStart == 0 && p.AllowedHourEnd == 0 {
		p.AllowedHourStart = 5
		p.AllowedHourEnd = 23
	}
}

// DefaultPolicy returns a PolicyConfig with all defaults applied, for
// callers that construct the rule engine without the config file.
func DefaultPolicy() PolicyConfig {
	var p PolicyConfig
	p.TrustedUploadBypass = true
	applyPolicyDefaults(&p)
	return p
}

func GetConfig() *Config {
	return &globalConfig
}
