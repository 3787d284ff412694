package utils

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Client  ClientConfig
	Payment PaymentConfig
}

type AppConfig struct {
	Name    string
	Debug   bool
	LogPath string
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ClientConfig struct {
	StatePath    string
	DownloadDir  string
	PollInterval time.Duration
	HandoffDelay time.Duration
	MetricsPort  string
}

type PaymentConfig struct {
	MaxSlipSizeMB int64
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "travel-booking")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("API_BASE_URL", "http://localhost:8000/api/")
	viper.SetDefault("API_TIMEOUT_SECONDS", 30)
	viper.SetDefault("STATE_PATH", ".travel-booking/state.json")
	viper.SetDefault("DOWNLOAD_DIR", "downloads/")
	viper.SetDefault("POLL_INTERVAL_SECONDS", 15)
	viper.SetDefault("HANDOFF_DELAY_MS", 1200)
	viper.SetDefault("METRICS_PORT", "")
	viper.SetDefault("MAX_SLIP_SIZE_MB", 5)

	// The .env file is optional for the client; env vars alone are enough.
	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		API: APIConfig{
			BaseURL: viper.GetString("API_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("API_TIMEOUT_SECONDS")) * time.Second,
		},
		Client: ClientConfig{
			StatePath:    viper.GetString("STATE_PATH"),
			DownloadDir:  viper.GetString("DOWNLOAD_DIR"),
			PollInterval: time.Duration(viper.GetInt("POLL_INTERVAL_SECONDS")) * time.Second,
			HandoffDelay: time.Duration(viper.GetInt("HANDOFF_DELAY_MS")) * time.Millisecond,
			MetricsPort:  viper.GetString("METRICS_PORT"),
		},
		Payment: PaymentConfig{
			MaxSlipSizeMB: viper.GetInt64("MAX_SLIP_SIZE_MB"),
		},
	}

	return config, nil
}
