package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	DatabasePath string `json:"database_path"`
	APIPort      string `json:"api_port"`
	LogLevel     string `json:"log_level"`
	DataDir      string `json:"data_dir"`
	UploadDir    string `json:"upload_dir"` // empty means system temp directory
	CORSOrigins  string `json:"cors_origins"`
	RequireKey   bool   `json:"require_api_key"`

	// Keyword ranking parameters
	KeywordLang  string `json:"keyword_lang"`
	KeywordNgram int    `json:"keyword_ngram"`
	KeywordTopK  int    `json:"keyword_top_k"`

	// IMAP source (used by the fetch command)
	IMAPHost     string `json:"imap_host"`
	IMAPPort     int    `json:"imap_port"`
	IMAPUsername string `json:"imap_username"`
	IMAPPassword string `json:"imap_password"`
	IMAPFolder   string `json:"imap_folder"`
	IMAPUseSSL   bool   `json:"imap_use_ssl"`
}

// Default configuration values
const (
	DefaultDatabasePath = "data/staylens.db"
	DefaultAPIPort      = "8080"
	DefaultLogLevel     = "INFO"
	DefaultDataDir      = "data"
	DefaultCORSOrigins  = "*"
	DefaultKeywordLang  = "en"
	DefaultKeywordNgram = 2
	DefaultKeywordTopK  = 5
	DefaultIMAPPort     = 993
	DefaultIMAPFolder   = "INBOX"
)

// Load loads configuration from environment variables and config file
// Priority: Environment variables > Config file > Default values
func Load() (*Config, error) {
	cfg := &Config{
		DatabasePath: DefaultDatabasePath,
		APIPort:      DefaultAPIPort,
		LogLevel:     DefaultLogLevel,
		DataDir:      DefaultDataDir,
		CORSOrigins:  DefaultCORSOrigins,
		KeywordLang:  DefaultKeywordLang,
		KeywordNgram: DefaultKeywordNgram,
		KeywordTopK:  DefaultKeywordTopK,
		IMAPPort:     DefaultIMAPPort,
		IMAPFolder:   DefaultIMAPFolder,
		IMAPUseSSL:   true,
	}

	// Config file is optional
	cfg.loadFromFile()

	// Override with environment variables
	cfg.loadFromEnv()

	return cfg, nil
}

// loadFromFile loads configuration from config.json file
func (c *Config) loadFromFile() error {
	configPaths := []string{
		"config.json",
		filepath.Join(c.DataDir, "config.json"),
	}

	for _, path := range configPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		if err := json.Unmarshal(data, c); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if val := os.Getenv("STAYLENS_DATABASE_PATH"); val != "" {
		c.DatabasePath = val
	}
	if val := os.Getenv("STAYLENS_API_PORT"); val != "" {
		c.APIPort = val
	}
	if val := os.Getenv("STAYLENS_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("STAYLENS_DATA_DIR"); val != "" {
		c.DataDir = val
	}
	if val := os.Getenv("STAYLENS_UPLOAD_DIR"); val != "" {
		c.UploadDir = val
	}
	if val := os.Getenv("STAYLENS_CORS_ORIGINS"); val != "" {
		c.CORSOrigins = val
	}
	if val := os.Getenv("STAYLENS_REQUIRE_API_KEY"); val != "" {
		c.RequireKey = val == "true" || val == "1"
	}
	if val := os.Getenv("STAYLENS_KEYWORD_LANG"); val != "" {
		c.KeywordLang = val
	}
	if val := os.Getenv("STAYLENS_KEYWORD_NGRAM"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.KeywordNgram = n
		}
	}
	if val := os.Getenv("STAYLENS_KEYWORD_TOP_K"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.KeywordTopK = n
		}
	}
	if val := os.Getenv("STAYLENS_IMAP_HOST"); val != "" {
		c.IMAPHost = val
	}
	if val := os.Getenv("STAYLENS_IMAP_PORT"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.IMAPPort = n
		}
	}
	if val := os.Getenv("STAYLENS_IMAP_USERNAME"); val != "" {
		c.IMAPUsername = val
	}
	if val := os.Getenv("STAYLENS_IMAP_PASSWORD"); val != "" {
		c.IMAPPassword = val
	}
	if val := os.Getenv("STAYLENS_IMAP_FOLDER"); val != "" {
		c.IMAPFolder = val
	}
	if val := os.Getenv("STAYLENS_IMAP_USE_SSL"); val != "" {
		c.IMAPUseSSL = val == "true" || val == "1"
	}
}

// GetUploadDir returns the directory for spooled uploads
// If UploadDir is empty, the system temp directory is used
func (c *Config) GetUploadDir() string {
	if c.UploadDir != "" {
		return c.UploadDir
	}
	return os.TempDir()
}

// Save saves the current configuration to a file
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
