// Initializing common application configuration
package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	App      AppConfig      `mapstructure:"app"`
	Channels ChannelsConfig `mapstructure:"channels"`
	Log      LogConfig      `mapstructure:"log"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type ServerConfig struct {
	AppVersion   string `json:"appVersion"`
	Host         string `json:"host" validate:"required"`
	Port         string `json:"port" validate:"required"`
	Timeout      time.Duration
	Idle_timeout time.Duration
	Env          string `json:"environment"`
	Mode         string `mapstructure:"mode"`
}

type AppConfig struct {
	LookaheadDays int           `mapstructure:"lookahead_days"`
	Throttle      time.Duration `mapstructure:"throttle"`
	AutoRun       bool          `mapstructure:"auto_run"`
	CountryCode   string        `mapstructure:"country_code"`
}

type ChannelsConfig struct {
	Mode     string         `mapstructure:"mode"`
	WhatsApp WhatsAppConfig `mapstructure:"whatsapp"`
	SMS      SMSConfig      `mapstructure:"sms"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
}

type WhatsAppConfig struct {
	BridgeURL string        `mapstructure:"bridge_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type SMSConfig struct {
	APIURL   string `mapstructure:"api_url"`
	Username string `mapstructure:"username"`
	APIKey   string `mapstructure:"api_key"`
	Sender   string `mapstructure:"sender"`
	Fallback bool   `mapstructure:"fallback"`
}

type WebhookConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Backend string `mapstructure:"backend"`
	File    string `mapstructure:"file"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`

	MaxRetries   int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	viperInstance.SetDefault("app.lookahead_days", 2)
	viperInstance.SetDefault("app.throttle", "500ms")
	viperInstance.SetDefault("app.country_code", "+56")
	viperInstance.SetDefault("channels.mode", "auto")
	viperInstance.SetDefault("log.backend", "file")
	viperInstance.SetDefault("log.file", "notification_log.json")

	err := viperInstance.ReadInConfig()

	if err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		log.Fatalf("unable to decode config into struct, %v", err)
		return nil, err
	}

	// credentials come from the environment, never from the yaml
	c.Channels.SMS.Username = GetEnv("SMS_USERNAME", c.Channels.SMS.Username)
	c.Channels.SMS.APIKey = GetEnv("SMS_API_KEY", c.Channels.SMS.APIKey)

	return &c, nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
