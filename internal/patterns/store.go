package patterns

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
)

type snapshot struct {
	rules map[string]Rule
}

// Store is the process-wide rule set. Readers get a consistent immutable
// snapshot; Merge builds a new rule map and publishes it atomically, so an
// in-flight extraction never observes a partially updated set.
type Store struct {
	path   string // persisted overrides (JSON name -> expression)
	logger *slog.Logger

	mu   sync.Mutex // serializes writers; readers only touch snap
	snap atomic.Pointer[snapshot]
}

// NewStore loads the baseline bank and merges any previously persisted
// overrides from path. A missing overrides file is normal; an unreadable one
// is logged and ignored so the baseline still serves.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{path: path, logger: logger}
	s.snap.Store(&snapshot{rules: baseline()})

	if path == "" {
		return s
	}
	overrides, err := readOverrides(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("patterns.load_overrides_failed", "path", path, "error", err)
		}
		return s
	}
	if err := s.Merge(overrides); err != nil {
		logger.Warn("patterns.merge_overrides_failed", "path", path, "error", err)
		return s
	}
	logger.Info("patterns.overrides_loaded", "path", path, "count", len(overrides))
	return s
}

// Get returns the current rule for name.
func (s *Store) Get(name string) (Rule, bool) {
	r, ok := s.snap.Load().rules[name]
	return r, ok
}

// Names returns the current rule names, sorted.
func (s *Store) Names() []string {
	rules := s.snap.Load().rules
	out := make([]string, 0, len(rules))
	for name := range rules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Merge compiles the given name -> expression overrides and publishes a new
// snapshot containing them. An override keeps the validation of the rule it
// replaces (field semantics survive a pattern swap); a new name gets a zero
// validation. Any compile failure rejects the whole merge.
func (s *Store) Merge(overrides map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mergeLocked(overrides)
}

func (s *Store) mergeLocked(overrides map[string]string) error {
	cur := s.snap.Load().rules
	next := make(map[string]Rule, len(cur)+len(overrides))
	for name, r := range cur {
		next[name] = r
	}
	for name, expr := range overrides {
		scope := ScopeDocument
		var check Validation
		if old, ok := cur[name]; ok {
			scope = old.Scope
			check = old.Check
		}
		r, err := Compile(name, expr, scope, check)
		if err != nil {
			return fmt.Errorf("compile rule %q: %w", name, err)
		}
		next[name] = r
	}
	s.snap.Store(&snapshot{rules: next})
	return nil
}

// SaveOverrides persists the override set to the store path with an atomic
// rename, then merges it into the live snapshot. Held under the writer lock
// so a concurrent Reload cannot interleave with the publish.
func (s *Store) SaveOverrides(overrides map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mergeLocked(overrides); err != nil {
		return err
	}
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create patterns dir: %w", err)
	}
	b, err := json.MarshalIndent(overrides, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal overrides: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".patterns-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write overrides: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync overrides: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close overrides: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("publish overrides: %w", err)
	}
	s.logger.Info("patterns.overrides_saved", "path", s.path, "count", len(overrides))
	return nil
}

// Reload re-reads the persisted overrides and merges them. Used by the
// watcher when another process rewrote the file.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	overrides, err := readOverrides(s.path)
	if err != nil {
		return err
	}
	if err := s.mergeLocked(overrides); err != nil {
		return err
	}
	s.logger.Info("patterns.reloaded", "path", s.path, "count", len(overrides))
	return nil
}

func readOverrides(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var overrides map[string]string
	if err := json.Unmarshal(b, &overrides); err != nil {
		return nil, fmt.Errorf("decode overrides: %w", err)
	}
	return overrides, nil
}
