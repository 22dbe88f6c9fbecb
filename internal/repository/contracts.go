// Package repository persists training samples submitted by reviewers.
// Unlike the extraction path, persistence failures here are always surfaced
// to the caller: silently losing a correction would defeat the refinement
// loop.
package repository

import (
	"context"

	"github.com/firdocs/fir-extract/internal/entity"
)

// SampleRepository stores reviewer-corrected training samples keyed by
// file id. Save overwrites an existing id; List returns all samples in no
// guaranteed order.
type SampleRepository interface {
	Save(ctx context.Context, sample *entity.TrainingSample) error
	List(ctx context.Context) ([]entity.TrainingSample, error)
}
