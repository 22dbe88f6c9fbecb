package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/firdocs/fir-extract/internal/entity"
)

// SQLiteSampleRepository stores samples in a single sqlite table. Useful
// when many reviewers share one box and per-file storage gets unwieldy.
type SQLiteSampleRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLiteSampleRepository(path string, logger *slog.Logger) (*SQLiteSampleRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_journal_mode=WAL&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sample db: %w", err)
	}
	// Writes are serialized by sqlite anyway; keep the pool small.
	db.SetMaxOpenConns(4)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sample db: %w", err)
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS training_sample (
		file_id      TEXT PRIMARY KEY,
		ocr_data     TEXT NOT NULL,
		ground_truth TEXT NOT NULL,
		created_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sample schema: %w", err)
	}
	return &SQLiteSampleRepository{db: db, logger: logger}, nil
}

func (r *SQLiteSampleRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteSampleRepository) Save(ctx context.Context, sample *entity.TrainingSample) error {
	if err := validFileID(sample.FileID); err != nil {
		return err
	}
	gt, err := json.Marshal(sample.GroundTruth)
	if err != nil {
		return fmt.Errorf("marshal ground truth: %w", err)
	}
	ocr := sample.OCRData
	if len(ocr) == 0 {
		ocr = json.RawMessage("{}")
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO training_sample (file_id, ocr_data, ground_truth)
		VALUES (?, ?, ?)
		ON CONFLICT(file_id) DO UPDATE SET
			ocr_data = excluded.ocr_data,
			ground_truth = excluded.ground_truth`,
		sample.FileID, string(ocr), string(gt))
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	r.logger.Info("samples.saved", "file_id", sample.FileID, "backend", "sqlite")
	return nil
}

func (r *SQLiteSampleRepository) List(ctx context.Context) ([]entity.TrainingSample, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT file_id, ocr_data, ground_truth FROM training_sample`)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var samples []entity.TrainingSample
	for rows.Next() {
		var s entity.TrainingSample
		var ocr, gt string
		if err := rows.Scan(&s.FileID, &ocr, &gt); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		s.OCRData = json.RawMessage(ocr)
		if err := json.Unmarshal([]byte(gt), &s.GroundTruth); err != nil {
			r.logger.Warn("samples.decode_failed", "file_id", s.FileID, "error", err)
			continue
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}
	return samples, nil
}
