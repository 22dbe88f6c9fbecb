package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firdocs/fir-extract/internal/entity"
	"github.com/firdocs/fir-extract/internal/normalize"
)

func frag(text string, conf float64) entity.Fragment {
	return entity.Fragment{Text: text, Confidence: conf}
}

func TestNormalize_ConfidenceFilter(t *testing.T) {
	n := normalize.New(0.3, nil)

	tests := []struct {
		name string
		conf float64
		kept bool
	}{
		{"below threshold dropped", 0.2, false},
		{"at threshold dropped", 0.3, false}, // drop is exclusive-keep: conf must exceed the threshold
		{"just above threshold kept", 0.31, true},
		{"high confidence kept", 0.95, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := n.Normalize([]entity.Fragment{frag("District Office", tt.conf)})
			if tt.kept {
				require.Len(t, out, 1)
				assert.Equal(t, "District Office", out[0].Text)
			} else {
				assert.Empty(t, out)
			}
		})
	}
}

func TestNormalize_DropsShortAndEmptyText(t *testing.T) {
	n := normalize.New(0.3, nil)

	out := n.Normalize([]entity.Fragment{
		frag("A", 0.9),
		frag("  ", 0.9),
		frag("?!", 0.9), // cleans down to nothing
		frag("Pune", 0.9),
	})
	require.Len(t, out, 1)
	assert.Equal(t, "Pune", out[0].Text)
}

func TestNormalize_StripsNoiseAndCollapsesWhitespace(t *testing.T) {
	n := normalize.New(0.3, nil)

	out := n.Normalize([]entity.Fragment{frag("F@IR#  No.  :   2021!", 0.9)})
	require.Len(t, out, 1)
	assert.Equal(t, "FIR No. : 2021", out[0].Text)
}

func TestNormalize_AppliesCorrections(t *testing.T) {
	n := normalize.New(0.3, nil)

	out := n.Normalize([]entity.Fragment{frag("HAN, caleit", 0.9)})
	require.Len(t, out, 1)
	assert.Equal(t, "Hanuman Colony", out[0].Text)
}

func TestCleanText_Idempotent(t *testing.T) {
	inputs := []string{
		"HAN, caleit",
		"FIR No. : 2021",
		"District : Pune Year 2021",
		"staTst Road",
	}
	for _, in := range inputs {
		once := normalize.CleanText(in)
		twice := normalize.CleanText(once)
		assert.Equal(t, once, twice, "cleaning %q twice changed the text", in)
	}
}

func TestNormalize_PreservesOrderAndBBox(t *testing.T) {
	n := normalize.New(0.3, nil)

	box := []entity.Point{{0, 0}, {10, 0}, {10, 5}, {0, 5}}
	out := n.Normalize([]entity.Fragment{
		{Text: "first", Confidence: 0.9, BBox: box},
		frag("noise", 0.1),
		frag("second", 0.8),
	})
	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Text)
	assert.Equal(t, box, out[0].BBox)
	assert.Equal(t, "second", out[1].Text)
}

func TestNormalize_EmptyInput(t *testing.T) {
	n := normalize.New(0.3, nil)
	assert.Empty(t, n.Normalize(nil))
	assert.Empty(t, n.Normalize([]entity.Fragment{}))
}

func TestFullText(t *testing.T) {
	assert.Equal(t, "", normalize.FullText(nil))
	assert.Equal(t, "a b", normalize.FullText([]entity.Fragment{frag("a", 1), frag("b", 1)}))
}
