package main

import (
	"os"
	"strconv"
)

// config is the environment-derived configuration; command flags default to
// these values.
type config struct {
	TitlesFile string // QUIZ_TITLES_FILE; empty uses the embedded list
	Attempts   int    // QUIZ_ATTEMPTS
	DBPath     string // QUIZ_DB; empty disables history
	DailySalt  string // QUIZ_DAILY_SALT
	LogLevel   string // LOG_LEVEL
	Port       string // PORT
	NoColor    bool   // NO_COLOR (any non-empty value)
}

func loadConfig() config {
	return config{
		TitlesFile: os.Getenv("QUIZ_TITLES_FILE"),
		Attempts:   envInt("QUIZ_ATTEMPTS", 1),
		DBPath:     os.Getenv("QUIZ_DB"),
		DailySalt:  getEnv("QUIZ_DAILY_SALT", "moviequiz"),
		LogLevel:   getEnv("LOG_LEVEL", "warn"),
		Port:       getEnv("PORT", "5175"),
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as an int, falling back to def when unset or malformed.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
