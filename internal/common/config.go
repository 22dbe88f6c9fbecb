package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	OCR      OCRConfig
	Extract  ExtractConfig
	Patterns PatternsConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// StorageConfig holds upload and training-data storage configuration
type StorageConfig struct {
	UploadDir   string
	TrainingDir string
	SampleStore string // "file" | "sqlite"
	SampleDB    string // sqlite path, used when SampleStore == "sqlite"
}

// OCRConfig holds configuration for the external OCR collaborators
type OCRConfig struct {
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	Pdftoppm      string // binary name or absolute path; if empty -> "pdftoppm"
	TesseractLang string // default "eng+hin"
	TessdataDir   string
	DPI           int // rasterization DPI for scanned PDFs, default 300
	MaxPages      int // 0 = no limit
	Timeout       time.Duration
}

// ExtractConfig holds extraction engine thresholds
type ExtractConfig struct {
	ConfidenceThreshold float64 // fragments at or below this are dropped
}

// PatternsConfig holds pattern store persistence configuration
type PatternsConfig struct {
	OverridesPath string // persisted improved patterns (JSON)
	Watch         bool   // hot-reload overrides file via fsnotify
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8000"),
			ReadTimeout:     getEnvAsDuration("HTTP_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("HTTP_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
			TrainingDir: getEnv("TRAINING_DIR", "training_data"),
			SampleStore: getEnv("SAMPLE_STORE", "file"),
			SampleDB:    getEnv("SAMPLE_DB_PATH", "training_data/samples.db"),
		},
		OCR: OCRConfig{
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng+hin"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
			Timeout:       getEnvAsDuration("OCR_TIMEOUT", 2*time.Minute),
		},
		Extract: ExtractConfig{
			ConfidenceThreshold: getEnvAsFloat64("OCR_CONFIDENCE_THRESHOLD", 0.3),
		},
		Patterns: PatternsConfig{
			OverridesPath: getEnv("PATTERNS_PATH", "training_data/improved_patterns.json"),
			Watch:         getEnvAsBool("PATTERNS_WATCH", false),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Storage.UploadDir == "" {
		return NewAppError("CONFIG_ERROR", "UPLOAD_DIR is required", ErrInvalidInput)
	}
	if c.Storage.TrainingDir == "" {
		return NewAppError("CONFIG_ERROR", "TRAINING_DIR is required", ErrInvalidInput)
	}
	switch c.Storage.SampleStore {
	case "file", "sqlite":
	default:
		return NewAppError("CONFIG_ERROR", "SAMPLE_STORE must be file or sqlite", ErrInvalidInput)
	}
	if c.Extract.ConfidenceThreshold < 0 || c.Extract.ConfidenceThreshold >= 1 {
		return NewAppError("CONFIG_ERROR", "OCR_CONFIDENCE_THRESHOLD must be in [0,1)", ErrInvalidInput)
	}
	return nil
}
