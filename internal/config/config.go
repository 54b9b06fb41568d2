package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// AuthorizedUsers is the fixed allow-list of WhatsApp user IDs
	// (phone numbers without the @server suffix).
	AuthorizedUsers []string

	GeminiAPIKey string
	GeminiModel  string

	// StorageBackend selects where records and goals live: "sqlite"
	// (default) or "sheets".
	StorageBackend        string
	SQLitePath            string
	SheetsCredentialsFile string
	SpreadsheetID         string
	RecordsSheet          string
	GoalsSheet            string

	// BotPhone enables pair-code login instead of QR.
	BotPhone string

	ClassifyTimeout time.Duration
	StoreTimeout    time.Duration
	Verbose         bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults/environment variables")
	}

	return Config{
		AuthorizedUsers:       getenvList("AUTHORIZED_USERS"),
		GeminiAPIKey:          getenv("GEMINI_API_KEY", ""),
		GeminiModel:           getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		StorageBackend:        getenv("STORAGE_BACKEND", "sqlite"),
		SQLitePath:            getenv("SQLITE_PATH", "./data/onepercent.db"),
		SheetsCredentialsFile: getenv("SHEETS_CREDENTIALS_FILE", ""),
		SpreadsheetID:         getenv("SPREADSHEET_ID", ""),
		RecordsSheet:          getenv("RECORDS_SHEET", "Sheet1"),
		GoalsSheet:            getenv("GOALS_SHEET", "Goals"),
		BotPhone:              getenv("BOT_PHONE", ""),
		ClassifyTimeout:       getenvDuration("CLASSIFY_TIMEOUT_MS", 30*time.Second),
		StoreTimeout:          getenvDuration("STORE_TIMEOUT_MS", 20*time.Second),
		Verbose:               getenvBool("VERBOSE", false),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getenvList(key string) []string {
	var values []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if v := strings.TrimSpace(part); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
