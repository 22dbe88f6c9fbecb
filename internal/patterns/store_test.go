package patterns_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firdocs/fir-extract/internal/patterns"
)

func TestNewStore_BaselineRules(t *testing.T) {
	s := patterns.NewStore("", nil)

	r, ok := s.Get(patterns.RuleFIRNo)
	require.True(t, ok)
	assert.Equal(t, patterns.RuleFIRNo, r.Name)
	assert.NotEmpty(t, r.Expr)

	names := s.Names()
	assert.Contains(t, names, patterns.RuleDistrict)
	assert.Contains(t, names, patterns.RuleContents)
	assert.True(t, len(names) > 20)
}

func TestStore_MergeReplacesRule(t *testing.T) {
	s := patterns.NewStore("", nil)

	require.NoError(t, s.Merge(map[string]string{
		patterns.RuleFIRNo: `(?i)FIR\s*No\.?\s*:?\s*(\d{4})`,
	}))

	r, ok := s.Get(patterns.RuleFIRNo)
	require.True(t, ok)
	assert.Equal(t, `(?i)FIR\s*No\.?\s*:?\s*(\d{4})`, r.Expr)
}

func TestStore_MergeKeepsValidationOfReplacedRule(t *testing.T) {
	s := patterns.NewStore("", nil)

	require.NoError(t, s.Merge(map[string]string{
		patterns.RuleDistrict: `(?i)Zilla\s+(.+?)(?:\s*Year|\s*$)`,
	}))

	r, ok := s.Get(patterns.RuleDistrict)
	require.True(t, ok)

	// Baseline district validation rejects captures of fewer than 3 runes.
	_, accepted := r.Find("Zilla Al")
	assert.False(t, accepted)

	v, accepted := r.Find("Zilla Pune")
	require.True(t, accepted)
	assert.Equal(t, "Pune", v)
}

func TestStore_MergeRejectsInvalidExpression(t *testing.T) {
	s := patterns.NewStore("", nil)
	before, ok := s.Get(patterns.RuleFIRNo)
	require.True(t, ok)

	err := s.Merge(map[string]string{
		patterns.RuleFIRNo:    `(\d{4})`,
		patterns.RuleDistrict: `([unclosed`,
	})
	require.Error(t, err)

	// Whole merge is rejected: even the valid entry must not land.
	after, ok := s.Get(patterns.RuleFIRNo)
	require.True(t, ok)
	assert.Equal(t, before.Expr, after.Expr)
}

func TestStore_SnapshotStableAcrossMerge(t *testing.T) {
	s := patterns.NewStore("", nil)

	old, ok := s.Get(patterns.RuleMobile)
	require.True(t, ok)

	require.NoError(t, s.Merge(map[string]string{
		patterns.RuleMobile: `Mobile\s*:?\s*(\d{10})`,
	}))

	// The rule handed out before the merge keeps working unchanged.
	v, accepted := old.Find("call 9876543210 now")
	require.True(t, accepted)
	assert.Equal(t, "9876543210", v)
}

func TestStore_ConcurrentMergesAllLand(t *testing.T) {
	s := patterns.NewStore("", nil)

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("extra_rule_%d", i)
			assert.NoError(t, s.Merge(map[string]string{name: `(\d+)`}))
		}(i)
	}
	wg.Wait()

	// No merge may be lost to a concurrent one.
	for i := 0; i < writers; i++ {
		_, ok := s.Get(fmt.Sprintf("extra_rule_%d", i))
		assert.True(t, ok, "rule %d missing after concurrent merges", i)
	}
}

func TestStore_SaveOverridesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns", "improved_patterns.json")
	s := patterns.NewStore(path, nil)

	overrides := map[string]string{
		patterns.RuleFIRNo:    `(?i)FIR\s*No\.?\s*:?\s*(\d{4})`,
		patterns.RuleDistrict: `(?i)(?:District|जिला).*?:\s*(Pune|Mumbai)`,
	}
	require.NoError(t, s.SaveOverrides(overrides))

	_, err := os.Stat(path)
	require.NoError(t, err)

	reopened := patterns.NewStore(path, nil)
	r, ok := reopened.Get(patterns.RuleFIRNo)
	require.True(t, ok)
	assert.Equal(t, overrides[patterns.RuleFIRNo], r.Expr)

	r, ok = reopened.Get(patterns.RuleDistrict)
	require.True(t, ok)
	assert.Equal(t, overrides[patterns.RuleDistrict], r.Expr)
}

func TestNewStore_MissingOverridesFileUsesBaseline(t *testing.T) {
	s := patterns.NewStore(filepath.Join(t.TempDir(), "nope.json"), nil)
	_, ok := s.Get(patterns.RuleFIRNo)
	assert.True(t, ok)
}

func TestNewStore_CorruptOverridesFileUsesBaseline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := patterns.NewStore(path, nil)
	_, ok := s.Get(patterns.RuleFIRNo)
	assert.True(t, ok)
}

func TestStore_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "improved_patterns.json")
	s := patterns.NewStore(path, nil)

	require.NoError(t, os.WriteFile(path,
		[]byte(`{"fir_no": "(?i)Case\\s*(\\d{4})"}`), 0o644))
	require.NoError(t, s.Reload())

	r, ok := s.Get(patterns.RuleFIRNo)
	require.True(t, ok)
	assert.Equal(t, `(?i)Case\s*(\d{4})`, r.Expr)
}

func TestValidationApply(t *testing.T) {
	tests := []struct {
		name  string
		check patterns.Validation
		in    string
		want  string
		ok    bool
	}{
		{"zero validation trims only", patterns.Validation{}, "  Pune  ", "Pune", true},
		{"length in bounds", patterns.Validation{MinLen: 2, MaxLen: 50}, "Pune", "Pune", true},
		{"length at lower bound rejected", patterns.Validation{MinLen: 2, MaxLen: 50}, "Al", "", false},
		{"length at upper bound rejected", patterns.Validation{MinLen: 0, MaxLen: 4}, "Pune", "", false},
		{"numeric in range", patterns.Validation{MinNum: 2000, MaxNum: 2030}, "2021", "2021", true},
		{"numeric below range", patterns.Validation{MinNum: 2000, MaxNum: 2030}, "1850", "", false},
		{"numeric above range", patterns.Validation{MinNum: 2000, MaxNum: 2030}, "2045", "", false},
		{"numeric bounds inclusive", patterns.Validation{MinNum: 2000, MaxNum: 2030}, "2030", "2030", true},
		{"non-numeric rejected by numeric check", patterns.Validation{MinNum: 100, MaxNum: 511}, "abc", "", false},
		{"punctuation stripped before length check", patterns.Validation{MinLen: 2, MaxLen: 50, StripPunct: true}, " Pune. ", "Pune", true},
		{"devanagari survives punct strip", patterns.Validation{MinLen: 2, MaxLen: 50, StripPunct: true}, "पुणे:", "पुणे", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.check.Apply(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
