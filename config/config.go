package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger          `mapstructure:"logger"`
	DB        Database        `mapstructure:"database"`
	API       API             `mapstructure:"api"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Forwarder ForwarderConfig `mapstructure:"forwarder"`
	Session   SessionConfig   `mapstructure:"session"`
	Cache     Cache           `mapstructure:"cache"`
	Retention RetentionConfig `mapstructure:"retention"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port                int `mapstructure:"port"`
	MaxRequestPerSecond int `mapstructure:"max_request_per_second"`
}

type TelegramConfig struct {
	BotToken                  string  `mapstructure:"bot_token"`
	AlertChatID               string  `mapstructure:"alert_chat_id"`
	Channels                  []int64 `mapstructure:"channels"`
	ChannelLabels             map[string]string
	SubscriberChatIDs         []int64       `mapstructure:"subscriber_chat_ids"`
	PollTimeout               time.Duration `mapstructure:"poll_timeout"`
	MaxGlobalRequestPerSecond int           `mapstructure:"max_global_request_per_second"`
}

type ForwarderConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRequestPerMin int           `mapstructure:"max_request_per_min"`
	DedupeDuration   time.Duration `mapstructure:"dedupe_duration"`
}

// SessionConfig bounds processing to market hours. Messages outside the
// window are stored but never parsed or forwarded.
type SessionConfig struct {
	Timezone  string `mapstructure:"timezone"`
	OpenTime  string `mapstructure:"open_time"`
	CloseTime string `mapstructure:"close_time"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type RetentionConfig struct {
	CronSpec          string `mapstructure:"cron_spec"`
	RawMessageMaxDays int    `mapstructure:"raw_message_max_days"`
	LowConfMaxDays    int    `mapstructure:"low_conf_max_days"`
}

func Load() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Telegram.ChannelLabels = viper.GetStringMapString("telegram.channel_labels")

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("api.max_request_per_second", 10)
	viper.SetDefault("telegram.poll_timeout", 10*time.Second)
	viper.SetDefault("telegram.max_global_request_per_second", 30)
	viper.SetDefault("forwarder.timeout", 10*time.Second)
	viper.SetDefault("forwarder.max_request_per_min", 60)
	viper.SetDefault("forwarder.dedupe_duration", 15*time.Minute)
	viper.SetDefault("session.timezone", "Asia/Kolkata")
	viper.SetDefault("session.open_time", "09:15")
	viper.SetDefault("session.close_time", "15:30")
	viper.SetDefault("cache.default_expiration", 10*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 15*time.Minute)
	viper.SetDefault("retention.cron_spec", "0 2 * * *")
	viper.SetDefault("retention.raw_message_max_days", 30)
	viper.SetDefault("retention.low_conf_max_days", 7)
}
