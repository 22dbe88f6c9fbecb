package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/firdocs/fir-extract/internal/common"
	"github.com/firdocs/fir-extract/internal/entity"
)

// FSSampleRepository keeps one JSON file per sample under a training
// directory. Writes go to a temp file in the same directory followed by a
// rename, so a concurrent List never observes a partial sample.
type FSSampleRepository struct {
	dir    string
	logger *slog.Logger
}

func NewFSSampleRepository(dir string, logger *slog.Logger) (*FSSampleRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create training dir: %w", err)
	}
	return &FSSampleRepository{dir: dir, logger: logger}, nil
}

func (r *FSSampleRepository) Save(_ context.Context, sample *entity.TrainingSample) error {
	if err := validFileID(sample.FileID); err != nil {
		return err
	}
	b, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sample: %w", err)
	}

	dst := r.samplePath(sample.FileID)
	tmp, err := os.CreateTemp(r.dir, ".sample-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write sample: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync sample: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close sample: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("publish sample: %w", err)
	}
	r.logger.Info("samples.saved", "file_id", sample.FileID)
	return nil
}

func (r *FSSampleRepository) List(_ context.Context) ([]entity.TrainingSample, error) {
	matches, err := filepath.Glob(filepath.Join(r.dir, "sample_*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan training dir: %w", err)
	}
	samples := make([]entity.TrainingSample, 0, len(matches))
	for _, path := range matches {
		b, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warn("samples.read_failed", "path", path, "error", err)
			continue
		}
		var s entity.TrainingSample
		if err := json.Unmarshal(b, &s); err != nil {
			r.logger.Warn("samples.decode_failed", "path", path, "error", err)
			continue
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func (r *FSSampleRepository) samplePath(fileID string) string {
	return filepath.Join(r.dir, "sample_"+fileID+".json")
}

// validFileID rejects ids that would escape the training directory.
func validFileID(id string) error {
	if id == "" {
		return common.NewAppError("SAMPLE_ID", "file_id is required", common.ErrInvalidInput)
	}
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return common.NewAppError("SAMPLE_ID", "file_id contains path separators", common.ErrInvalidInput)
	}
	return nil
}
