package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

// OpenAIConfig holds settings for the content generation API.
type OpenAIConfig struct {
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		DSN string // "memory" or a SQLite file path
	}
	OpenAI       OpenAIConfig `mapstructure:"openai"`
	TrackingFile string       `mapstructure:"tracking_file"` // Ledger of previously imported IDs/labels
	APIURL       string       `mapstructure:"api_url"`       // Base URL the contentctl CLI posts against
}

// AppConfig is the global configuration instance.
var AppConfig Config

// LoadConfig loads configuration from file and environment variables.
func LoadConfig() {
	viper.SetConfigName("config")    // Name of config file (without extension)
	viper.SetConfigType("yaml")      // REQUIRED if the config file does not have the extension in the name
	viper.AddConfigPath("./config")  // Path to look for the config file in
	viper.AddConfigPath(".")         // Optionally look for config in the working directory
	viper.AddConfigPath("../config") // For running from locations like tests

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.dsn", "content.db")
	viper.SetDefault("openai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("openai.model", "gpt-4-turbo-preview")
	viper.SetDefault("openai.max_tokens", 4000)
	viper.SetDefault("tracking_file", ".import-tracking.json")
	viper.SetDefault("api_url", "http://localhost:8080")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration into AppConfig struct: %v", err)
	}

	// Environment variable overrides
	if port := os.Getenv("SERVER_PORT"); port != "" {
		AppConfig.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by environment variable SERVER_PORT: %s", port)
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		AppConfig.Database.DSN = dsn
		log.Println("INFO: [Config] Database DSN overridden by environment variable DATABASE_DSN.")
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		AppConfig.OpenAI.APIKey = key
		log.Println("INFO: [Config] Loaded OpenAI API key from environment variable OPENAI_API_KEY.")
	} else if AppConfig.OpenAI.APIKey == "" {
		log.Println("WARN: [Config] OpenAI API key is not set. The /api/generate endpoint and backfill will be unavailable.")
	}
	if apiURL := os.Getenv("API_URL"); apiURL != "" {
		AppConfig.APIURL = apiURL
		log.Printf("INFO: [Config] API URL overridden by environment variable API_URL: %s", apiURL)
	}

	log.Println("INFO: [Config] Configuration loading complete.")
}
