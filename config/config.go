package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Build modes supported by the converter. See services.Builder.
const (
	ModeEnriched = "enriched"
	ModeGrouped  = "grouped"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	SourcePath string
	SourceURL  string
	Mode       string

	CatalogName     string
	OutputPaths     []string
	CompactPath     string
	BackupDir       string
	BackupRetention int

	FingerprintPath string
	LogFilePath     string

	GroupColumn  string
	CSVDelimiter string

	HTTPAddr    string
	WatchPollMs int

	FetchRetries int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		SourcePath: getEnv("SOURCE_PATH", "input_file/catalog.xlsx"),
		SourceURL:  getEnv("SOURCE_URL", ""),
		Mode:       getEnv("CONVERT_MODE", ModeEnriched),

		CatalogName:     getEnv("CATALOG_NAME", "catalog"),
		OutputPaths:     getEnvList("OUTPUT_PATHS", "frontend/catalog.json"),
		CompactPath:     getEnv("COMPACT_OUTPUT_PATH", ""),
		BackupDir:       getEnv("BACKUP_DIR", "backups"),
		BackupRetention: getEnvInt("BACKUP_RETENTION", 5),

		FingerprintPath: getEnv("FINGERPRINT_PATH", "logs_and_hashes/.last_hash"),
		LogFilePath:     getEnv("LOG_FILE_PATH", "logs_and_hashes/converter.log"),

		GroupColumn:  getEnv("GROUP_COLUMN", "Полная группа"),
		CSVDelimiter: getEnv("CSV_DELIMITER", ","),

		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		WatchPollMs: getEnvInt("WATCH_POLL_MS", 60000),

		FetchRetries: getEnvInt("FETCH_RETRIES", 3),
	}
}

// CSVComma returns the configured CSV field delimiter as a rune. Semicolon
// exports are common for spreadsheets saved in a Russian locale.
func (c *Config) CSVComma() rune {
	for _, r := range c.CSVDelimiter {
		return r
	}
	return ','
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

// getEnvList splits a comma-separated env var into trimmed, non-empty items.
func getEnvList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
