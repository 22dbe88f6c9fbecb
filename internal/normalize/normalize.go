// Package normalize cleans raw OCR fragments before field extraction: it
// drops low-confidence detections, strips noise characters, repairs known
// OCR misreads and collapses whitespace. Fragment order is preserved because
// extraction relies on positional adjacency.
package normalize

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/firdocs/fir-extract/internal/entity"
)

// DefaultConfidenceThreshold drops fragments at or below this confidence.
const DefaultConfidenceThreshold = 0.3

var (
	// Keep letters and digits in any script (Hindi included), plus the
	// punctuation that carries meaning on FIR forms.
	reNoise = regexp.MustCompile(`[^\p{L}\p{N}_\s.,:/()-]`)
	reSpace = regexp.MustCompile(`\s+`)
)

type Normalizer struct {
	threshold float64
	logger    *slog.Logger
}

func New(threshold float64, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Normalizer{threshold: threshold, logger: logger}
}

// Normalize filters and cleans fragments. Fragments with confidence at or
// below the threshold, or whose text cleans down to nothing, are dropped.
// Output order equals input order; empty input yields empty output.
func (n *Normalizer) Normalize(fragments []entity.Fragment) []entity.Fragment {
	out := make([]entity.Fragment, 0, len(fragments))
	dropped := 0
	for _, f := range fragments {
		if f.Confidence <= n.threshold {
			dropped++
			continue
		}
		text := strings.TrimSpace(f.Text)
		if len([]rune(text)) < 2 {
			dropped++
			continue
		}
		text = CleanText(text)
		if text == "" {
			dropped++
			continue
		}
		out = append(out, entity.Fragment{
			Text:       text,
			Confidence: f.Confidence,
			BBox:       f.BBox,
		})
	}
	if dropped > 0 {
		n.logger.Debug("normalize.dropped", "in", len(fragments), "out", len(out), "dropped", dropped)
	}
	return out
}

// CleanText strips noise characters, applies the misread table and collapses
// whitespace runs. Cleaning already-clean text is a no-op.
func CleanText(text string) string {
	text = reNoise.ReplaceAllString(text, "")
	for _, c := range corrections {
		text = strings.ReplaceAll(text, c.From, c.To)
	}
	return strings.TrimSpace(reSpace.ReplaceAllString(text, " "))
}

// FullText joins fragment texts with single spaces into one search buffer.
func FullText(fragments []entity.Fragment) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, " ")
}
