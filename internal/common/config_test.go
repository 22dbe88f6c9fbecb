package common_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firdocs/fir-extract/internal/common"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := common.LoadConfig()

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "uploads", cfg.Storage.UploadDir)
	assert.Equal(t, "training_data", cfg.Storage.TrainingDir)
	assert.Equal(t, "file", cfg.Storage.SampleStore)
	assert.Equal(t, "tesseract", cfg.OCR.Tesseract)
	assert.Equal(t, "eng+hin", cfg.OCR.TesseractLang)
	assert.Equal(t, 300, cfg.OCR.DPI)
	assert.Equal(t, 0.3, cfg.Extract.ConfidenceThreshold)
	assert.Equal(t, "training_data/improved_patterns.json", cfg.Patterns.OverridesPath)
	assert.False(t, cfg.Patterns.Watch)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("SAMPLE_STORE", "sqlite")
	t.Setenv("OCR_DPI", "150")
	t.Setenv("OCR_CONFIDENCE_THRESHOLD", "0.5")
	t.Setenv("OCR_TIMEOUT", "90s")
	t.Setenv("PATTERNS_WATCH", "true")

	cfg := common.LoadConfig()

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Storage.SampleStore)
	assert.Equal(t, 150, cfg.OCR.DPI)
	assert.Equal(t, 0.5, cfg.Extract.ConfidenceThreshold)
	assert.Equal(t, 90*time.Second, cfg.OCR.Timeout)
	assert.True(t, cfg.Patterns.Watch)
}

func TestLoadConfig_BadValuesFallBack(t *testing.T) {
	t.Setenv("OCR_DPI", "lots")
	t.Setenv("OCR_CONFIDENCE_THRESHOLD", "high")
	t.Setenv("PATTERNS_WATCH", "sure")

	cfg := common.LoadConfig()

	assert.Equal(t, 300, cfg.OCR.DPI)
	assert.Equal(t, 0.3, cfg.Extract.ConfidenceThreshold)
	assert.False(t, cfg.Patterns.Watch)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*common.Config)
		wantErr bool
	}{
		{"defaults are valid", func(*common.Config) {}, false},
		{"missing addr", func(c *common.Config) { c.Server.Addr = "" }, true},
		{"missing upload dir", func(c *common.Config) { c.Storage.UploadDir = "" }, true},
		{"missing training dir", func(c *common.Config) { c.Storage.TrainingDir = "" }, true},
		{"unknown sample store", func(c *common.Config) { c.Storage.SampleStore = "redis" }, true},
		{"threshold out of range", func(c *common.Config) { c.Extract.ConfidenceThreshold = 1.0 }, true},
		{"negative threshold", func(c *common.Config) { c.Extract.ConfidenceThreshold = -0.1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := common.LoadConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
