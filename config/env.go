package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultPort = "8080"

// LoadEnv reads a .env file if one is present. Missing files are not an
// error; deployed environments set real env vars instead.
func LoadEnv() {
	_ = godotenv.Load()
}

func Port() string {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		return defaultPort
	}
	return port
}

// MaxUploadSizeBytes limits report uploads. Default 10MB; override via
// MAX_UPLOAD_SIZE_MB.
func MaxUploadSizeBytes() int64 {
	raw := strings.TrimSpace(os.Getenv("MAX_UPLOAD_SIZE_MB"))
	if raw == "" {
		return 10 * 1024 * 1024
	}
	mb, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || mb <= 0 {
		return 10 * 1024 * 1024
	}
	return mb * 1024 * 1024
}

// DebugMode enables gin debug logging and verbose engine logs.
//
// Set via env:
// - RECON_DEBUG=true
func DebugMode() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("RECON_DEBUG")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
