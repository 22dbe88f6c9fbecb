// Package refine derives improved extraction rules from reviewer-corrected
// samples. This is pattern memorization, not model training: each tracked
// field gets a literal-alternation pattern built from the values reviewers
// actually confirmed, so a previously seen district or station matches
// verbatim on the next document.
package refine

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/firdocs/fir-extract/constants"
	"github.com/firdocs/fir-extract/internal/entity"
	"github.com/firdocs/fir-extract/internal/patterns"
	"github.com/firdocs/fir-extract/internal/repository"
)

// Caps on how many literal values a synthesized alternation carries.
const (
	maxDistricts        = 5
	maxPoliceStations   = 5
	maxComplainantNames = 3
)

// Result is the reported outcome of a refinement run. Insufficient data is
// a status, not an error.
type Result struct {
	Status      constants.RefineStatus `json:"status"`
	Message     string                 `json:"message"`
	SamplesUsed int                    `json:"samples_used"`
}

type Service struct {
	samples repository.SampleRepository
	store   *patterns.Store
	logger  *slog.Logger
}

func NewService(samples repository.SampleRepository, store *patterns.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{samples: samples, store: store, logger: logger}
}

// Refine loads all stored samples, synthesizes updated rules and publishes
// them to the pattern store and to durable storage.
func (s *Service) Refine(ctx context.Context) Result {
	samples, err := s.samples.List(ctx)
	if err != nil {
		s.logger.Error("refine.list_failed", "error", err)
		return Result{
			Status:  constants.RefineStatusError,
			Message: fmt.Sprintf("loading samples failed: %v", err),
		}
	}
	if len(samples) < constants.MinTrainingSamples {
		return Result{
			Status: constants.RefineStatusInsufficientData,
			Message: fmt.Sprintf("need at least %d samples, have %d",
				constants.MinTrainingSamples, len(samples)),
			SamplesUsed: len(samples),
		}
	}

	improved := SynthesizePatterns(samples)
	if err := s.store.SaveOverrides(improved); err != nil {
		s.logger.Error("refine.publish_failed", "error", err)
		return Result{
			Status:      constants.RefineStatusError,
			Message:     fmt.Sprintf("publishing patterns failed: %v", err),
			SamplesUsed: len(samples),
		}
	}

	s.logger.Info("refine.done", "samples_used", len(samples), "rules_updated", len(improved))
	return Result{
		Status: constants.RefineStatusSuccess,
		Message: fmt.Sprintf("patterns refined from %d samples, %d rules updated",
			len(samples), len(improved)),
		SamplesUsed: len(samples),
	}
}

// SynthesizePatterns builds the rule-name -> expression override set from
// ground-truth values. Values are regexp-escaped so they match literally;
// alternations keep first-seen order and are capped per field.
func SynthesizePatterns(samples []entity.TrainingSample) map[string]string {
	improved := make(map[string]string, 4)

	firNos := distinctValues(samples, 1, func(s *entity.TrainingSample) string {
		return s.GroundTruth.FIR.FIRNo
	})
	if len(firNos) > 0 {
		// FIR numbers are uniform 4-digit runs; loosen the label match
		// rather than memorize the literals.
		improved[patterns.RuleFIRNo] = `(?i)FIR\s*No\.?\s*:?\s*(\d{4})`
	}

	if districts := distinctValues(samples, maxDistricts, func(s *entity.TrainingSample) string {
		return s.GroundTruth.FIR.District
	}); len(districts) > 0 {
		improved[patterns.RuleDistrict] = `(?i)(?:District|जिला).*?:\s*(` + alternation(districts) + `)`
	}

	if stations := distinctValues(samples, maxPoliceStations, func(s *entity.TrainingSample) string {
		return s.GroundTruth.FIR.PoliceStation
	}); len(stations) > 0 {
		improved[patterns.RulePoliceStation] = `(?i)(?:P\.S\.|Police Station|थाने).*?:\s*(` + alternation(stations) + `)`
	}

	if names := distinctValues(samples, maxComplainantNames, func(s *entity.TrainingSample) string {
		return s.GroundTruth.ComplainantInformant.Name
	}); len(names) > 0 {
		// Known names first, then a generic word-sequence fallback so an
		// unseen name still extracts. The explicit class instead of \w keeps
		// Devanagari names matching (\w is ASCII-only here).
		improved[patterns.RuleComplainantName] = `(?i)(?:Name|नाव).*?:\s*(` + alternation(names) + `|[\p{L}\p{N}_]+(?:\s+[\p{L}\p{N}_]+)*)`
	}

	return improved
}

// distinctValues collects distinct non-empty ground-truth values across
// samples in first-seen order, capped at max.
func distinctValues(samples []entity.TrainingSample, max int, get func(*entity.TrainingSample) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range samples {
		v := strings.TrimSpace(get(&samples[i]))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == max {
			break
		}
	}
	return out
}

func alternation(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = regexp.QuoteMeta(v)
	}
	return strings.Join(escaped, "|")
}
